package score

// CompetitionInput holds raw saturation counts per channel.
type CompetitionInput struct {
	AdLibraryCount    float64 `json:"ad_library_count"`
	ShopifyStoreCount float64 `json:"shopify_store_count"`
	AmazonSellerCount float64 `json:"amazon_seller_count"`
}

// Competition returns an inverted saturation score: 100 means an empty market.
func Competition(in CompetitionInput) int {
	saturation := AdLibrarySaturation(in.AdLibraryCount)*0.4 +
		ShopifySaturation(in.ShopifyStoreCount)*0.3 +
		AmazonSaturation(in.AmazonSellerCount)*0.3

	return toScore(100 - saturation)
}

// AdLibrarySaturation maps active ads onto 0-100 (50+ ads saturate).
func AdLibrarySaturation(count float64) float64 { return ramp(count, 0, 50) }

// ShopifySaturation maps competing storefronts onto 0-100 (20+ stores saturate).
func ShopifySaturation(count float64) float64 { return ramp(count, 0, 20) }

// AmazonSaturation maps marketplace sellers onto 0-100. A lone seller is negligible,
// so the ramp starts at 1 and saturates at 50.
func AmazonSaturation(count float64) float64 { return ramp(count, 1, 50) }
