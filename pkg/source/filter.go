package source

import "strings"

// DefaultExcludeKeywords lists product terms ad networks and marketplaces commonly reject.
var DefaultExcludeKeywords = []string{
	"replica", "counterfeit", "knockoff",
	"vape", "e-cigarette", "cbd",
	"weapon", "firearm", "ammunition",
	"prescription", "weight loss pill",
}

// Filter drops candidates outside the tracked categories or matching excluded keywords.
type Filter struct {
	exclude    []string
	categories map[string]bool
}

// NewFilter creates a filter with the default exclusions plus extras.
// An empty categories list accepts every category.
func NewFilter(excludeKeywords, categories []string) *Filter {
	exclude := make([]string, 0, len(DefaultExcludeKeywords)+len(excludeKeywords))
	for _, kw := range append(append([]string{}, DefaultExcludeKeywords...), excludeKeywords...) {
		exclude = append(exclude, strings.ToLower(kw))
	}

	cats := make(map[string]bool, len(categories))
	for _, c := range categories {
		cats[strings.ToLower(c)] = true
	}

	return &Filter{exclude: exclude, categories: cats}
}

// Allows reports whether a candidate should be kept.
func (f *Filter) Allows(c Candidate) bool {
	if f == nil {
		return true
	}
	if len(f.categories) > 0 && !f.categories[strings.ToLower(c.Category)] {
		return false
	}

	lower := strings.ToLower(c.Name + " " + c.Description)
	for _, ex := range f.exclude {
		if strings.Contains(lower, ex) {
			return false
		}
	}
	return true
}

// Apply returns the candidates the filter allows.
func (f *Filter) Apply(candidates []Candidate) []Candidate {
	var kept []Candidate
	for _, c := range candidates {
		if f.Allows(c) {
			kept = append(kept, c)
		}
	}
	return kept
}
