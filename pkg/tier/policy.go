package tier

// Policy is the read-only tier table. Build it once at startup and share the
// pointer; nothing mutates it afterwards, so concurrent reads need no locking.
type Policy struct {
	limits map[Tier]Limits
}

// NewPolicy builds a policy from the built-in table with overrides applied on top.
// Overrides for unknown tiers are ignored.
func NewPolicy(overrides map[Tier]Limits) *Policy {
	limits := DefaultLimits()
	for t, l := range overrides {
		if _, ok := limits[t]; ok {
			limits[t] = l
		}
	}
	return &Policy{limits: limits}
}

// DefaultPolicy is NewPolicy without overrides.
func DefaultPolicy() *Policy { return NewPolicy(nil) }

// Limits returns the limits for t, falling back to Free for unknown tiers.
func (p *Policy) Limits(t Tier) Limits {
	if l, ok := p.limits[t]; ok {
		return l
	}
	return p.limits[Free]
}

// CanAccess reports whether t is granted feature.
func (p *Policy) CanAccess(t Tier, f Feature) bool { return p.Limits(t).Allows(f) }

// ProductsLimit returns the daily product list cap for t.
func (p *Policy) ProductsLimit(t Tier) int { return p.Limits(t).ProductsPerDay }

// DetailViewsLimit returns the daily detail view cap for t.
func (p *Policy) DetailViewsLimit(t Tier) int { return p.Limits(t).DetailViewsPerDay }

// Table returns a copy of every tier's limits in entitlement order.
func (p *Policy) Table() []TierLimits {
	out := make([]TierLimits, 0, len(Ordered()))
	for _, t := range Ordered() {
		out = append(out, TierLimits{Tier: t, Limits: p.Limits(t)})
	}
	return out
}

// TierLimits pairs a tier with its limits.
type TierLimits struct {
	Tier   Tier   `json:"tier"`
	Limits Limits `json:"limits"`
}

// MinimumTierForFeature returns the narrowest tier granting f, or Agency if none does.
func (p *Policy) MinimumTierForFeature(f Feature) Tier {
	for _, t := range Ordered() {
		if p.CanAccess(t, f) {
			return t
		}
	}
	return Agency
}
