package score

// Default classification thresholds on the overall score.
const (
	DefaultHotThreshold      = 70
	DefaultAlertThreshold    = 85
	DefaultCreativeThreshold = 60
)

// Thresholds are the overall-score cut-offs used to classify products.
// Each is independent of the others and of the scoring weights.
type Thresholds struct {
	Hot      int `yaml:"hot" json:"hot"`
	Alert    int `yaml:"alert" json:"alert"`
	Creative int `yaml:"creative" json:"creative"`
}

// DefaultThresholds returns the stock classification policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Hot:      DefaultHotThreshold,
		Alert:    DefaultAlertThreshold,
		Creative: DefaultCreativeThreshold,
	}
}

// IsHot reports whether overall qualifies as a hot product.
func (t Thresholds) IsHot(overall int) bool { return overall >= t.Hot }

// ShouldAlert reports whether overall should notify subscribers.
func (t Thresholds) ShouldAlert(overall int) bool { return overall >= t.Alert }

// ShouldGenerateCreatives reports whether overall qualifies for ad creative generation.
func (t Thresholds) ShouldGenerateCreatives(overall int) bool { return overall >= t.Creative }

// IsHotProduct applies the default hot threshold.
func IsHotProduct(overall int) bool { return DefaultThresholds().IsHot(overall) }

// ShouldTriggerAlert applies the default alert threshold.
func ShouldTriggerAlert(overall int) bool { return DefaultThresholds().ShouldAlert(overall) }

// ShouldGenerateAdCreatives applies the default creative threshold.
func ShouldGenerateAdCreatives(overall int) bool {
	return DefaultThresholds().ShouldGenerateCreatives(overall)
}

// Input carries every raw signal the scorer consumes.
type Input struct {
	Trend       TrendInput       `json:"trend"`
	Competition CompetitionInput `json:"competition"`
	Margin      MarginInput      `json:"margin"`
}

// Result is one scoring run. It is a value: a new run produces a new Result.
type Result struct {
	TrendScore         int  `json:"trend_score"`
	CompetitionScore   int  `json:"competition_score"`
	MarginScore        int  `json:"margin_score"`
	OverallScore       int  `json:"overall_score"`
	IsHotProduct       bool `json:"is_hot_product"`
	ShouldTriggerAlert bool `json:"should_trigger_alert"`
}

// Overall combines the three component scores, each clamped first.
func Overall(trend, competition, margin int) int {
	return toScore(Clamp(float64(trend))*0.35 +
		Clamp(float64(competition))*0.30 +
		Clamp(float64(margin))*0.35)
}

// Calculate runs every calculator and classifies the outcome with t.
func Calculate(in Input, t Thresholds) Result {
	trend := Trend(in.Trend)
	competition := Competition(in.Competition)
	margin := Margin(in.Margin)
	overall := Overall(trend, competition, margin)

	return Result{
		TrendScore:         trend,
		CompetitionScore:   competition,
		MarginScore:        margin,
		OverallScore:       overall,
		IsHotProduct:       t.IsHot(overall),
		ShouldTriggerAlert: t.ShouldAlert(overall),
	}
}
