package score

// TrendInput holds the three growth signals, each expected on a 0-100 scale.
type TrendInput struct {
	GoogleTrendsGrowth float64 `json:"google_trends_growth"`
	SalesVelocity      float64 `json:"sales_velocity"`
	SocialMomentum     float64 `json:"social_momentum"`
}

// Trend blends the growth signals into a 0-100 trend score.
func Trend(in TrendInput) int {
	growth := Clamp(in.GoogleTrendsGrowth)
	velocity := Clamp(in.SalesVelocity)
	momentum := Clamp(in.SocialMomentum)

	return toScore(growth*0.4 + velocity*0.3 + momentum*0.3)
}

// GoogleTrendsGrowth converts two search-interest readings (now and 30 days ago)
// into a 0-100 growth signal. Any interest after a zero baseline counts as maximal.
func GoogleTrendsGrowth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Clamp((current - previous) / previous * 100)
}

// SalesVelocity converts week-over-week order counts into a 0-100 velocity signal.
func SalesVelocity(currentWeekOrders, previousWeekOrders float64) float64 {
	if previousWeekOrders == 0 {
		if currentWeekOrders > 0 {
			return 100
		}
		return 0
	}
	return Clamp((currentWeekOrders/previousWeekOrders - 1) * 100)
}

// SocialMomentum scores social engagement against the category average.
// Matching the average scores 50, double the average or more scores 100.
func SocialMomentum(redditUpvotes, pinterestSaves, categoryAverage float64) float64 {
	engagement := redditUpvotes + pinterestSaves
	if categoryAverage == 0 {
		if engagement > 0 {
			return 50
		}
		return 0
	}
	return Clamp(engagement / categoryAverage * 50)
}
