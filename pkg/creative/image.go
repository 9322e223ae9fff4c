package creative

import "fmt"

var demographics = map[string]string{
	"Electronics":         "tech-savvy young professionals",
	"Home & Garden":       "modern homeowners",
	"Beauty":              "style-conscious women aged 25-45",
	"Fashion Accessories": "fashion-forward millennials",
	"Sports":              "active fitness enthusiasts",
	"Toys":                "parents with young children",
	"Kitchen":             "home cooking enthusiasts",
	"Fitness":             "health-conscious adults",
	"Pet":                 "devoted pet owners",
	"Baby":                "new parents",
}

var settings = map[string]string{
	"Electronics":         "a modern minimalist home office",
	"Home & Garden":       "a beautifully decorated living space",
	"Beauty":              "a bright, clean bathroom vanity",
	"Fashion Accessories": "an urban street setting",
	"Sports":              "an outdoor fitness environment",
	"Toys":                "a bright, cheerful playroom",
	"Kitchen":             "a modern, well-lit kitchen",
	"Fitness":             "a home gym or outdoor workout space",
	"Pet":                 "a cozy home environment",
	"Baby":                "a warm, safe nursery",
}

// DemographicFor returns the default audience for a category.
func DemographicFor(category string) string {
	if d, ok := demographics[category]; ok {
		return d
	}
	return "modern consumers"
}

// SettingFor returns the default lifestyle setting for a category.
func SettingFor(category string) string {
	if s, ok := settings[category]; ok {
		return s
	}
	return "a clean, modern environment"
}

// LifestyleScene parameterizes one lifestyle photography prompt.
type LifestyleScene struct {
	ProductName        string
	ProductDescription string
	TargetDemographic  string
	Setting            string
}

// LifestylePrompt renders an image-model prompt for a lifestyle product shot.
func LifestylePrompt(s LifestyleScene) string {
	return fmt.Sprintf("Professional product photography of %s, %s, being used by %s in %s. Lifestyle photography style, soft natural lighting, shallow depth of field, high-end e-commerce aesthetic. No text overlays.",
		s.ProductName, s.ProductDescription, s.TargetDemographic, s.Setting)
}

// LifestylePrompts returns three prompts: category setting, studio, aspirational.
func LifestylePrompts(b Brief) []string {
	audience := b.TargetDemographic
	if audience == "" {
		audience = DemographicFor(b.Category)
	}
	desc := b.description(b.ProductName)

	scenes := []string{
		SettingFor(b.Category),
		"a bright, naturally lit studio",
		"an aspirational lifestyle setting",
	}

	prompts := make([]string, 0, len(scenes))
	for _, setting := range scenes {
		prompts = append(prompts, LifestylePrompt(LifestyleScene{
			ProductName:        b.ProductName,
			ProductDescription: desc,
			TargetDemographic:  audience,
			Setting:            setting,
		}))
	}
	return prompts
}

// Composition describes the overlay elements of an ad image.
type Composition struct {
	PriceBadge   string `json:"price_badge"`
	UrgencyText  string `json:"urgency_text"`
	CallToAction string `json:"call_to_action"`
	Typography   string `json:"typography"`
}

// CompositionSpec returns the overlay specification for an ad image at price.
func CompositionSpec(p float64) Composition {
	return Composition{
		PriceBadge:   "Only " + price(p),
		UrgencyText:  "Limited Stock",
		CallToAction: "Shop Now",
		Typography:   "Inter or Poppins",
	}
}

// Format is an output image size for a placement.
type Format struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Placement string `json:"placement"`
}

// OutputFormats lists the image sizes produced for each creative.
func OutputFormats() []Format {
	return []Format{
		{Name: "square", Width: 1080, Height: 1080, Placement: "Instagram/Facebook feed"},
		{Name: "story", Width: 1080, Height: 1920, Placement: "Stories/Reels"},
		{Name: "link", Width: 1200, Height: 628, Placement: "Facebook link ads"},
	}
}
