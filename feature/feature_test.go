package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
)

func testCatalog() []core.ServiceRecord {
	return []core.ServiceRecord{
		{ServiceID: "S1", Name: "Shop Ads", Description: "Digital marketing for online stores", BusinessType: "e-commerce", PriceTier: "low", Location: "delhi", Language: "english"},
		{ServiceID: "S2", Name: "Remote Books", Description: "Bookkeeping and accounting for online stores", BusinessType: "e-commerce", PriceTier: "medium", Location: "remote", Language: "both"},
		{ServiceID: "S3", Name: "Clinic Care", Description: "Patient appointment software", BusinessType: "clinic", PriceTier: "premium", Location: "mumbai", Language: "regional"},
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "punctuation splits", in: "E-commerce, SEO & ads!", want: []string{"commerce", "seo", "ads"}},
		{name: "single chars dropped", in: "a b cd", want: []string{"cd"}},
		{name: "digits and underscore", in: "24x7 web_dev", want: []string{"24x7", "web_dev"}},
		{name: "empty", in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestAnalyze_RemovesStopWords(t *testing.T) {
	assert.Equal(t, []string{"marketing", "online", "stores"}, Analyze("Marketing for the online stores"))
}

func TestFitOneHot(t *testing.T) {
	enc := FitOneHot("location", []string{" Delhi", "mumbai", "delhi", "", "Remote"})
	assert.Equal(t, []string{"delhi", "mumbai", "remote"}, enc.Categories)
	assert.Equal(t, []float64{0, 1, 0}, enc.Encode("MUMBAI"))
	assert.Equal(t, []float64{0, 0, 0}, enc.Encode("chennai"))
	assert.Equal(t, []float64{0, 0, 0}, enc.Encode(""))
}

func TestFitTFIDF(t *testing.T) {
	v := FitTFIDF([]string{"online store", "online marketing", ""}, 0)
	require.Equal(t, []string{"marketing", "online", "store"}, v.Vocabulary)

	// n=3: df(online)=2, df(store)=1
	assert.InDelta(t, math.Log(4.0/3.0)+1, v.IDF[1], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, v.IDF[2], 1e-12)

	vec := v.Transform("online online store")
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-12)
	assert.Zero(t, vec[0])
	assert.InDelta(t, 2*v.IDF[1]/v.IDF[2], vec[1]/vec[2], 1e-12)

	assert.Equal(t, []float64{0, 0, 0}, v.Transform("unseen words only"))
}

func TestFitTFIDF_MaxFeatures(t *testing.T) {
	v := FitTFIDF([]string{"zeta zeta alpha beta", "zeta beta gamma"}, 2)
	// zeta=3, beta=2 survive; final vocabulary sorted
	assert.Equal(t, []string{"beta", "zeta"}, v.Vocabulary)

	tie := FitTFIDF([]string{"delta charlie bravo"}, 2)
	assert.Equal(t, []string{"bravo", "charlie"}, tie.Vocabulary)
}

func TestManualFeatures(t *testing.T) {
	tests := []struct {
		name string
		got  ManualFeatures
		want ManualFeatures
	}{
		{
			name: "service both language remote",
			got:  ServiceManual(&core.ServiceRecord{PriceTier: "high", Language: "Both", Location: "remote"}),
			want: ManualFeatures{PriceScore: 0.75, English: true, Hindi: true, Remote: true},
		},
		{
			name: "service unknown tier",
			got:  ServiceManual(&core.ServiceRecord{PriceTier: "gold", Language: "regional"}),
			want: ManualFeatures{PriceScore: 0.5, Regional: true},
		},
		{
			name: "user both language",
			got:  UserManual(&core.UserPreference{PriceTier: "Low", Languages: []string{"BOTH"}, Location: "Remote"}),
			want: ManualFeatures{PriceScore: 0.25, English: true, Hindi: true, Remote: true},
		},
		{
			name: "user empty",
			got:  UserManual(&core.UserPreference{}),
			want: ManualFeatures{PriceScore: 0.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFit_Layout(t *testing.T) {
	catalog := testCatalog()
	enc, m := Fit(catalog)
	require.NoError(t, enc.Validate())

	schema := enc.Schema()
	assert.Equal(t, len(schema.Columns), schema.Width())
	assert.Equal(t, 2, schema.BusinessWidth)
	assert.Equal(t, 3, schema.LocationWidth)
	assert.Equal(t, "price_score", schema.Columns[0])
	assert.Equal(t, "business_type=clinic", schema.Columns[ManualWidth])
	assert.Equal(t, "location=delhi", schema.Columns[ManualWidth+2])

	require.NoError(t, m.Validate(schema, len(catalog)))
	row := m.Row(1)
	assert.Equal(t, []float64{0.5, 1, 1, 0, 1}, row[:ManualWidth])
	assert.Equal(t, []float64{0, 1}, row[ManualWidth:ManualWidth+2])
	assert.Equal(t, []float64{0, 0, 1}, row[ManualWidth+2:ManualWidth+5])

	var norm float64
	for _, x := range row[ManualWidth+5:] {
		norm += x * x
	}
	assert.InDelta(t, core.TextBoost, math.Sqrt(norm), 1e-9)
}

func TestEncodeUser_Deterministic(t *testing.T) {
	enc, _ := Fit(testCatalog())
	pref := &core.UserPreference{BusinessType: "E-commerce", PriceTier: "low", Languages: []string{"english"}, Location: "delhi", Description: "online marketing"}

	a := enc.EncodeUser(pref)
	b := enc.EncodeUser(pref)
	assert.Equal(t, a, b)
	assert.Len(t, a, enc.Width())

	empty := enc.EncodeUser(nil)
	for i, x := range empty {
		if i == 0 {
			assert.Equal(t, 0.5, x)
			continue
		}
		assert.Zero(t, x, "column %d", i)
	}
}

func TestMatrix_Validate(t *testing.T) {
	catalog := testCatalog()
	enc, m := Fit(catalog)
	schema := enc.Schema()

	other, _ := Fit(catalog[:2])
	assert.True(t, core.IsSchemaMismatch(m.Validate(other.Schema(), 3)))
	assert.True(t, core.IsSchemaMismatch(m.Validate(schema, 2)))

	var missing *Matrix
	assert.True(t, core.IsMissingArtifact(missing.Validate(schema, 3)))

	broken := *m
	broken.Rows = append([][]float64{{1}}, m.Rows[1:]...)
	assert.True(t, core.IsSchemaMismatch(broken.Validate(schema, 3)))

	assert.True(t, core.IsMissingArtifact((&Encoders{}).Validate()))
}

func TestSchema_Fingerprint(t *testing.T) {
	enc, _ := Fit(testCatalog())
	a, b := enc.Schema(), enc.Schema()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	b.IDF = append([]float64(nil), a.IDF...)
	b.IDF[0] += 1e-9
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	x := &Schema{Version: SchemaVersion, Columns: []string{"ab", "c"}}
	y := &Schema{Version: SchemaVersion, Columns: []string{"a", "bc"}}
	assert.NotEqual(t, x.Fingerprint(), y.Fingerprint())
}
