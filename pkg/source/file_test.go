package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/elonfeng/prodradar/pkg/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileCollect(t *testing.T) {
	dir := t.TempDir()
	good := `[
		{"source": "ALIEXPRESS", "external_id": "1005", "name": "Portable Blender", "category": "Kitchen",
		 "cost_price": 8, "suggested_retail_price": 29.99, "key_features": ["USB rechargeable"],
		 "orders_this_week": 40, "orders_last_week": 20},
		{"external_id": "m-1", "name": "Pet Hair Remover", "category": "Pets"},
		{"external_id": "", "name": "No identity"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(good), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("{not json"), 0o644))

	f := NewFile([]string{filepath.Join(dir, "*.json")}, zap.NewNop().Sugar())
	got, err := f.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, product.SourceAliExpress, got[0].Source)
	assert.Equal(t, []string{"USB rechargeable"}, got[0].KeyFeatures)
	assert.Equal(t, 40.0, got[0].OrdersThisWeek)
	assert.Equal(t, product.SourceManual, got[1].Source)
}
