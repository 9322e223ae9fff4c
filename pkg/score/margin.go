package score

// MinViableMargin is the gross margin percentage below which a product scores 0.
const MinViableMargin = 30.0

// MarginInput holds pricing data. ShippingWeight is in grams; 0 means unknown.
type MarginInput struct {
	CostPrice            float64 `json:"cost_price"`
	SuggestedRetailPrice float64 `json:"suggested_retail_price"`
	ShippingWeight       float64 `json:"shipping_weight"`
}

// Margin scores profitability: 30% gross margin maps to 0, 50% to 50, 70%+ to 100.
func Margin(in MarginInput) int {
	if in.SuggestedRetailPrice <= 0 {
		return 0
	}

	shipping := EstimateShipping(in.ShippingWeight)
	margin := GrossMarginPercent(in.CostPrice, in.SuggestedRetailPrice, shipping)
	if margin < MinViableMargin {
		return 0
	}

	return toScore((margin - MinViableMargin) * 2.5)
}

// EstimateShipping returns a flat shipping cost for a weight in grams.
func EstimateShipping(weight float64) float64 {
	switch {
	case weight <= 0:
		return 5
	case weight < 500:
		return 3
	case weight <= 2000:
		return 7
	default:
		return 15
	}
}

// GrossMarginPercent returns (retail - cost - shipping) / retail as a percentage.
func GrossMarginPercent(cost, retail, shipping float64) float64 {
	if retail <= 0 {
		return 0
	}
	return (retail - cost - shipping) / retail * 100
}

// SuggestedRetailPrice returns the price that yields targetMargin percent gross margin
// after cost and estimated shipping. A target of 100% or more has no finite price and yields 0.
func SuggestedRetailPrice(cost, targetMargin, weight float64) float64 {
	if targetMargin >= 100 {
		return 0
	}
	total := cost + EstimateShipping(weight)
	return total / (1 - targetMargin/100)
}
