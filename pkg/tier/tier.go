package tier

// Tier is a subscription entitlement level.
type Tier string

const (
	Free    Tier = "FREE"
	Starter Tier = "STARTER"
	Pro     Tier = "PRO"
	Agency  Tier = "AGENCY"
)

// Unlimited marks a numeric limit with no cap.
const Unlimited = -1

// Ordered lists the tiers from narrowest to broadest entitlement.
func Ordered() []Tier { return []Tier{Free, Starter, Pro, Agency} }

// ParseTier maps an exact tier name onto a Tier. Anything else, including a
// differently cased name, is treated as Free.
func ParseTier(s string) Tier {
	t := Tier(s)
	for _, known := range Ordered() {
		if t == known {
			return t
		}
	}
	return Free
}

// Feature names a field of Limits.
type Feature string

const (
	ProductsPerDay    Feature = "productsPerDay"
	DetailViewsPerDay Feature = "detailViewsPerDay"
	ShowScores        Feature = "showScores"
	AdCopyAccess      Feature = "adCopyAccess"
	ImageAccess       Feature = "imageAccess"
	VideoScriptAccess Feature = "videoScriptAccess"
	APIAccess         Feature = "apiAccess"
	EmailAlerts       Feature = "emailAlerts"
	ScoreHistory      Feature = "scoreHistory"
)

// Limits is the entitlement record for one tier. Numeric limits use Unlimited for no cap.
type Limits struct {
	ProductsPerDay    int  `yaml:"products_per_day" json:"products_per_day"`
	DetailViewsPerDay int  `yaml:"detail_views_per_day" json:"detail_views_per_day"`
	ShowScores        bool `yaml:"show_scores" json:"show_scores"`
	AdCopyAccess      bool `yaml:"ad_copy_access" json:"ad_copy_access"`
	ImageAccess       bool `yaml:"image_access" json:"image_access"`
	VideoScriptAccess bool `yaml:"video_script_access" json:"video_script_access"`
	APIAccess         bool `yaml:"api_access" json:"api_access"`
	EmailAlerts       bool `yaml:"email_alerts" json:"email_alerts"`
	ScoreHistory      bool `yaml:"score_history" json:"score_history"`
}

// Allows reports whether the limits grant feature. Numeric limits grant it when non-zero.
func (l Limits) Allows(f Feature) bool {
	switch f {
	case ProductsPerDay:
		return l.ProductsPerDay != 0
	case DetailViewsPerDay:
		return l.DetailViewsPerDay != 0
	case ShowScores:
		return l.ShowScores
	case AdCopyAccess:
		return l.AdCopyAccess
	case ImageAccess:
		return l.ImageAccess
	case VideoScriptAccess:
		return l.VideoScriptAccess
	case APIAccess:
		return l.APIAccess
	case EmailAlerts:
		return l.EmailAlerts
	case ScoreHistory:
		return l.ScoreHistory
	}
	return false
}

// DefaultLimits returns the built-in tier table.
func DefaultLimits() map[Tier]Limits {
	return map[Tier]Limits{
		Free: {
			ProductsPerDay:    10,
			DetailViewsPerDay: 5,
			AdCopyAccess:      true,
		},
		Starter: {
			ProductsPerDay:    50,
			DetailViewsPerDay: 50,
			ShowScores:        true,
			AdCopyAccess:      true,
			ImageAccess:       true,
		},
		Pro: {
			ProductsPerDay:    Unlimited,
			DetailViewsPerDay: Unlimited,
			ShowScores:        true,
			AdCopyAccess:      true,
			ImageAccess:       true,
			VideoScriptAccess: true,
			EmailAlerts:       true,
			ScoreHistory:      true,
		},
		Agency: {
			ProductsPerDay:    Unlimited,
			DetailViewsPerDay: Unlimited,
			ShowScores:        true,
			AdCopyAccess:      true,
			ImageAccess:       true,
			VideoScriptAccess: true,
			APIAccess:         true,
			EmailAlerts:       true,
			ScoreHistory:      true,
		},
	}
}
