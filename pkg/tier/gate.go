package tier

import "github.com/elonfeng/prodradar/pkg/creative"

// ScoreHider is a record whose score fields can be cleared while every other
// field passes through unchanged.
type ScoreHider[T any] interface {
	WithoutScores() T
}

// Typed is a record carrying a creative type.
type Typed interface {
	CreativeType() creative.Type
}

// FilterProducts keeps the first ProductsPerDay items in their existing order.
func FilterProducts[T any](p *Policy, items []T, t Tier) []T {
	limit := p.ProductsLimit(t)
	if limit == Unlimited || limit >= len(items) {
		return items
	}
	if limit < 0 {
		limit = 0
	}
	return items[:limit]
}

// HideScores returns copies with scores cleared when t may not see scores,
// otherwise items unchanged.
func HideScores[T ScoreHider[T]](p *Policy, items []T, t Tier) []T {
	if p.CanAccess(t, ShowScores) {
		return items
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithoutScores()
	}
	return out
}

// FilterCreatives drops creatives t is not entitled to. Video scripts need video
// access, image and carousel creatives need image or ad copy access, and anything
// else is ad copy.
func FilterCreatives[T Typed](p *Policy, items []T, t Tier) []T {
	l := p.Limits(t)
	out := make([]T, 0, len(items))
	for _, item := range items {
		var keep bool
		switch item.CreativeType() {
		case creative.TypeVideoScript:
			keep = l.VideoScriptAccess
		case creative.TypeStaticImage, creative.TypeCarousel:
			keep = l.ImageAccess || l.AdCopyAccess
		default:
			keep = l.AdCopyAccess
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
