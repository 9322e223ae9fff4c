package creative

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Ad network field limits, in characters.
const (
	MaxHeadline    = 40
	MaxPrimaryText = 125
	MaxDescription = 30
)

// Brief is the product information the generators template over.
// Every field except ProductName, Category and Price is optional.
type Brief struct {
	ProductName       string   `json:"product_name"`
	Description       string   `json:"description,omitempty"`
	Category          string   `json:"category"`
	TargetDemographic string   `json:"target_demographic,omitempty"`
	KeyFeatures       []string `json:"key_features,omitempty"`
	PainPoints        []string `json:"pain_points,omitempty"`
	Price             float64  `json:"price"`
	OriginalPrice     float64  `json:"original_price,omitempty"`
}

func (b Brief) feature(i int, fallback string) string { return pick(b.KeyFeatures, i, fallback) }

func (b Brief) painPoint(i int, fallback string) string { return pick(b.PainPoints, i, fallback) }

func (b Brief) description(fallback string) string {
	if b.Description == "" {
		return fallback
	}
	return b.Description
}

// Type classifies a persisted creative.
type Type string

const (
	TypeAdCopy      Type = "AD_COPY"
	TypeStaticImage Type = "STATIC_IMAGE"
	TypeCarousel    Type = "CAROUSEL"
	TypeVideoScript Type = "VIDEO_SCRIPT"
)

// Platform is the ad network a creative targets.
type Platform string

const (
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformTikTok    Platform = "TIKTOK"
)

// AdCreative is one generated creative attached to a product.
type AdCreative struct {
	ID           string       `json:"id" db:"id"`
	ProductID    string       `json:"product_id" db:"product_id"`
	Type         Type         `json:"type" db:"type"`
	Platform     Platform     `json:"platform" db:"platform"`
	Framework    Framework    `json:"framework,omitempty" db:"framework"`
	Headline     string       `json:"headline,omitempty" db:"headline"`
	PrimaryText  string       `json:"primary_text,omitempty" db:"primary_text"`
	Description  string       `json:"description,omitempty" db:"description"`
	CallToAction string       `json:"call_to_action,omitempty" db:"call_to_action"`
	ImagePrompt  string       `json:"image_prompt,omitempty" db:"image_prompt"`
	VideoScript  *VideoScript `json:"video_script,omitempty" db:"-"`
	GeneratedAt  time.Time    `json:"generated_at" db:"generated_at"`

	VideoScriptJSON string `json:"-" db:"video_script"`
}

// CreativeType exposes the creative's type to tier filtering.
func (c AdCreative) CreativeType() Type { return c.Type }

// Truncate cuts s to at most n characters. Characters are Unicode code points,
// so multi-byte product names are never split mid-character.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func pick(list []string, i int, fallback string) string {
	if i < len(list) && list[i] != "" {
		return list[i]
	}
	return fallback
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func firstWords(s string, n int) string {
	words := strings.Split(s, " ")
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
