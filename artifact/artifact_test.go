package artifact

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/store"
)

func TestReadCatalogCSV(t *testing.T) {
	catalog, err := ReadCatalogCSV("../testdata/catalog.csv")
	require.NoError(t, err)
	assert.Len(t, catalog, 13, "duplicate row after cleaning is dropped")

	first := catalog[0]
	assert.Equal(t, "S001", first.ServiceID)
	assert.Equal(t, "e-commerce", first.BusinessType)
	assert.Equal(t, core.PriceLow, first.PriceTier)
	assert.Equal(t, "delhi", first.Location)
	assert.Equal(t, "english", first.Language)
}

func TestReadCatalogCSV_Missing(t *testing.T) {
	_, err := ReadCatalogCSV("../testdata/nope.csv")
	assert.True(t, core.IsMissingArtifact(err))
}

func TestParseCatalogCSV(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr func(error) bool
	}{
		{
			name: "extra columns ignored",
			in:   "Service_ID,Service_Name,Description,Target_Business_Type,Price_Category,Location_Area,Language_Support,Match_Quality\nS1,A, d ,Clinic,High,Pune,English,good\n",
			want: 1,
		},
		{
			name:    "missing column",
			in:      "Service_ID,Service_Name\nS1,A\n",
			wantErr: core.IsSchemaMismatch,
		},
		{
			name:    "empty input",
			in:      "",
			wantErr: core.IsMissingArtifact,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCatalogCSV(strings.NewReader(tt.in))
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			assert.Equal(t, "d", got[0].Description)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	catalog, err := ReadCatalogCSV("../testdata/catalog.csv")
	require.NoError(t, err)
	b := Build(catalog)

	s := store.NewMemoryStore()
	require.NoError(t, Save(ctx, s, b))

	loaded, err := Load(ctx, s, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, b.Catalog, loaded.Catalog)
	assert.Equal(t, b.Matrix.Fingerprint, loaded.Matrix.Fingerprint)
	assert.Equal(t, b.Encoders.Schema().Fingerprint(), loaded.Encoders.Schema().Fingerprint())
	assert.Equal(t, b.Encoders.EncodeUser(&core.UserPreference{Description: "online marketing"}),
		loaded.Encoders.EncodeUser(&core.UserPreference{Description: "online marketing"}))
}

func TestLoad_MissingArtifact(t *testing.T) {
	ctx := context.Background()
	catalog, err := ReadCatalogCSV("../testdata/catalog.csv")
	require.NoError(t, err)

	s := store.NewMemoryStore()
	require.NoError(t, Save(ctx, s, Build(catalog)))
	require.NoError(t, s.Delete(ctx, KeyEncoders))

	_, err = Load(ctx, s, nil)
	require.Error(t, err)
	assert.True(t, core.IsMissingArtifact(err))
	assert.Contains(t, err.Error(), KeyEncoders)
}

func TestLoad_SchemaMismatch(t *testing.T) {
	ctx := context.Background()
	catalog, err := ReadCatalogCSV("../testdata/catalog.csv")
	require.NoError(t, err)

	full := Build(catalog)
	partial := Build(catalog[:5])

	s := store.NewMemoryStore()
	require.NoError(t, Save(ctx, s, full))
	// matrix from a different fit
	other := store.NewMemoryStore()
	require.NoError(t, Save(ctx, other, partial))
	m, err := other.Get(ctx, KeyMatrix)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyMatrix, m))

	_, err = Load(ctx, s, nil)
	assert.True(t, core.IsSchemaMismatch(err), "got %v", err)
}

func TestBundle_Validate(t *testing.T) {
	var b *Bundle
	assert.True(t, core.IsMissingArtifact(b.Validate()))
	assert.True(t, core.IsMissingArtifact((&Bundle{Catalog: []core.ServiceRecord{}}).Validate()))
}
