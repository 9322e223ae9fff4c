package creative

import (
	"fmt"
	"math"
	"strings"
)

// Framework names the copywriting structure behind a variation.
type Framework string

const (
	FrameworkAIDA           Framework = "AIDA"
	FrameworkPAS            Framework = "PAS"
	FrameworkFeatureBenefit Framework = "FEATURE_BENEFIT"
)

// CallToActions is the fixed CTA vocabulary offered with every copy package.
var CallToActions = []string{"Shop Now", "Learn More", "Order Now", "Get Yours", "Buy Now"}

// AdCopyVariation is one complete piece of ad copy.
type AdCopyVariation struct {
	Headline     string    `json:"headline"`
	PrimaryText  string    `json:"primary_text"`
	Description  string    `json:"description"`
	CallToAction string    `json:"call_to_action"`
	Framework    Framework `json:"framework"`
}

// AdCopy is the full copy package for a product.
type AdCopy struct {
	Headlines     []string          `json:"headlines"`
	PrimaryTexts  []string          `json:"primary_texts"`
	Descriptions  []string          `json:"descriptions"`
	CallToActions []string          `json:"call_to_actions"`
	Variations    []AdCopyVariation `json:"variations"`
}

func variation(f Framework, headline, primary, description, cta string) AdCopyVariation {
	return AdCopyVariation{
		Headline:     Truncate(headline, MaxHeadline),
		PrimaryText:  Truncate(primary, MaxPrimaryText),
		Description:  Truncate(description, MaxDescription),
		CallToAction: cta,
		Framework:    f,
	}
}

// DiscountPercent returns the rounded discount implied by the original price, or 0.
func (b Brief) DiscountPercent() int {
	if b.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((1 - b.Price/b.OriginalPrice) * 100))
}

// AIDA writes Attention-Interest-Desire-Action copy.
func AIDA(b Brief) AdCopyVariation {
	headline := "Discover " + b.ProductName
	if pct := b.DiscountPercent(); pct > 0 {
		headline = fmt.Sprintf("%d%% OFF – %s", pct, b.ProductName)
	}

	primary := fmt.Sprintf("%s. %s. Join thousands of happy customers who made the switch. Limited time offer - don't miss out!",
		b.feature(0, "Finally, a solution that works"),
		b.description(fmt.Sprintf("The %s you've been waiting for", b.ProductName)))

	description := fmt.Sprintf("Premium %s at an unbeatable price", strings.ToLower(b.Category))

	return variation(FrameworkAIDA, headline, primary, description, "Shop Now")
}

// PAS writes Problem-Agitate-Solution copy around the primary pain point.
func PAS(b Brief) AdCopyVariation {
	pain := b.painPoint(0, "everyday frustrations")

	headline := "Stop " + firstWords(pain, 3)

	primary := fmt.Sprintf("Tired of %s? You're not alone. That's why we created %s. %s. See the difference for yourself.",
		pain, b.ProductName, b.feature(0, "It works"))

	return variation(FrameworkPAS, headline, primary, "The solution you've been looking for", "Learn More")
}

// FeatureBenefit pairs the leading feature with the benefit it delivers.
func FeatureBenefit(b Brief) AdCopyVariation {
	feature := b.feature(0, "premium quality")
	benefit := b.feature(1, "saves you time")

	headline := fmt.Sprintf("%s - %s", b.ProductName, feature)

	primary := fmt.Sprintf("%s means %s. %s. Order now and see why customers love it.",
		capitalize(feature), benefit,
		b.description(fmt.Sprintf("Experience the %s difference", b.ProductName)))

	return variation(FrameworkFeatureBenefit, headline, primary, "Free shipping on orders over $50", "Order Now")
}

// Headlines returns five headline options.
func Headlines(b Brief) []string {
	return truncateAll(MaxHeadline,
		b.ProductName+" - Must Have",
		"New: "+b.ProductName,
		fmt.Sprintf("Get Your %s Today", b.ProductName),
		b.Category+" Essential",
		"Limited Stock: "+b.ProductName,
	)
}

// PrimaryTexts returns three primary text options.
func PrimaryTexts(b Brief) []string {
	return truncateAll(MaxPrimaryText,
		b.description(b.ProductName)+". Order now and get free shipping!",
		fmt.Sprintf("Join thousands who love %s. See why it's trending.", b.ProductName),
		b.feature(0, "Premium quality")+" at an amazing price. Limited time offer!",
	)
}

// Descriptions returns three description options.
func Descriptions(Brief) []string {
	return truncateAll(MaxDescription,
		"Free shipping available",
		"30-day money back guarantee",
		"As seen on social media",
	)
}

// GenerateAll builds the complete copy package: option lists plus one variation per framework.
func GenerateAll(b Brief) AdCopy {
	ctas := make([]string, len(CallToActions))
	copy(ctas, CallToActions)

	return AdCopy{
		Headlines:     Headlines(b),
		PrimaryTexts:  PrimaryTexts(b),
		Descriptions:  Descriptions(b),
		CallToActions: ctas,
		Variations:    []AdCopyVariation{AIDA(b), PAS(b), FeatureBenefit(b)},
	}
}

func truncateAll(n int, items ...string) []string {
	for i, s := range items {
		items[i] = Truncate(s, n)
	}
	return items
}
