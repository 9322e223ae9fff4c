package tier

import (
	"fmt"
	"testing"

	"github.com/elonfeng/prodradar/pkg/creative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	assert.Equal(t, Pro, ParseTier("PRO"))
	assert.Equal(t, Agency, ParseTier("AGENCY"))
	assert.Equal(t, Free, ParseTier("pro"))
	assert.Equal(t, Free, ParseTier(" STARTER "))
	assert.Equal(t, Free, ParseTier("ENTERPRISE"))
	assert.Equal(t, Free, ParseTier(""))
}

func TestLimits(t *testing.T) {
	p := DefaultPolicy()

	free := p.Limits(Free)
	assert.Equal(t, 10, free.ProductsPerDay)
	assert.Equal(t, 5, free.DetailViewsPerDay)
	assert.False(t, free.ShowScores)
	assert.True(t, free.AdCopyAccess)

	assert.Equal(t, free, p.Limits(Tier("PLATINUM")))
	assert.Equal(t, Unlimited, p.ProductsLimit(Pro))
	assert.Equal(t, 50, p.DetailViewsLimit(Starter))
}

func TestCanAccess(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		tier    Tier
		feature Feature
		want    bool
	}{
		{Free, ShowScores, false},
		{Free, AdCopyAccess, true},
		{Free, ProductsPerDay, true},
		{Starter, ImageAccess, true},
		{Starter, VideoScriptAccess, false},
		{Pro, VideoScriptAccess, true},
		{Pro, APIAccess, false},
		{Pro, DetailViewsPerDay, true},
		{Agency, APIAccess, true},
		{Agency, Feature("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.tier, tt.feature), func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanAccess(tt.tier, tt.feature))
		})
	}
}

func TestMinimumTierForFeature(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, Free, p.MinimumTierForFeature(AdCopyAccess))
	assert.Equal(t, Starter, p.MinimumTierForFeature(ShowScores))
	assert.Equal(t, Starter, p.MinimumTierForFeature(ImageAccess))
	assert.Equal(t, Pro, p.MinimumTierForFeature(VideoScriptAccess))
	assert.Equal(t, Pro, p.MinimumTierForFeature(ScoreHistory))
	assert.Equal(t, Agency, p.MinimumTierForFeature(APIAccess))
	assert.Equal(t, Agency, p.MinimumTierForFeature(Feature("teleport")))
}

func TestNewPolicyOverrides(t *testing.T) {
	custom := DefaultLimits()[Free]
	custom.ProductsPerDay = 3
	p := NewPolicy(map[Tier]Limits{Free: custom, Tier("GOLD"): {APIAccess: true}})

	assert.Equal(t, 3, p.ProductsLimit(Free))
	assert.Equal(t, 50, p.ProductsLimit(Starter))
	assert.Equal(t, Agency, p.MinimumTierForFeature(APIAccess))
	assert.Equal(t, 10, DefaultPolicy().ProductsLimit(Free), "defaults are not shared")

	table := p.Table()
	require.Len(t, table, 4)
	assert.Equal(t, Free, table[0].Tier)
	assert.Equal(t, Agency, table[3].Tier)
}

type row struct {
	name  string
	score *int
}

func (r row) WithoutScores() row {
	r.score = nil
	return r
}

type item struct{ kind creative.Type }

func (i item) CreativeType() creative.Type { return i.kind }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		v := i
		out[i] = row{name: fmt.Sprintf("p%02d", i), score: &v}
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	p := DefaultPolicy()
	list := rows(15)

	free := FilterProducts(p, list, Free)
	require.Len(t, free, 10)
	for i, r := range free {
		assert.Equal(t, list[i].name, r.name)
	}

	assert.Len(t, FilterProducts(p, list, Pro), 15)
	assert.Len(t, FilterProducts(p, list, Starter), 15)
	assert.Len(t, FilterProducts(p, rows(3), Free), 3)
	assert.Len(t, FilterProducts(p, list, Tier("bogus")), 10)
}

func TestHideScores(t *testing.T) {
	p := DefaultPolicy()
	list := rows(4)

	hidden := HideScores(p, list, Free)
	require.Len(t, hidden, 4)
	for i, r := range hidden {
		assert.Nil(t, r.score)
		assert.Equal(t, list[i].name, r.name)
		assert.NotNil(t, list[i].score, "input is not mutated")
	}

	shown := HideScores(p, list, Pro)
	for i, r := range shown {
		assert.Equal(t, list[i].score, r.score)
	}
}

func TestFilterCreatives(t *testing.T) {
	p := DefaultPolicy()
	all := []item{
		{creative.TypeAdCopy},
		{creative.TypeStaticImage},
		{creative.TypeCarousel},
		{creative.TypeVideoScript},
	}

	starter := FilterCreatives(p, all, Starter)
	assert.Equal(t, []item{{creative.TypeAdCopy}, {creative.TypeStaticImage}, {creative.TypeCarousel}}, starter)

	free := FilterCreatives(p, all, Free)
	assert.NotContains(t, free, item{creative.TypeVideoScript})
	assert.Len(t, free, 3)

	assert.Len(t, FilterCreatives(p, all, Pro), 4)

	noCopy := NewPolicy(map[Tier]Limits{Free: {ProductsPerDay: 1}})
	assert.Empty(t, FilterCreatives(noCopy, all, Free))
}

func TestFilterCreativesOnAdCreatives(t *testing.T) {
	p := DefaultPolicy()
	built := creative.Build(creative.Brief{ProductName: "Lamp", Category: "Home", Price: 20})

	for _, c := range FilterCreatives(p, built, Starter) {
		assert.NotEqual(t, creative.TypeVideoScript, c.Type)
	}
	assert.Len(t, FilterCreatives(p, built, Agency), len(built))
}
