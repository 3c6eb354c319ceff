package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
)

func TestProgram_Evaluate(t *testing.T) {
	svc := &core.ServiceRecord{ServiceID: "S1", BusinessType: "clinic", PriceTier: "high", Location: "mumbai", Language: "hindi"}
	rctx := core.NewRecommendContext(&core.UserPreference{PriceTier: "premium", Languages: []string{"Hindi"}}, 5)
	rctx.Params["region"] = "west"

	tests := []struct {
		expr string
		want bool
	}{
		{expr: `service.location != "mumbai"`, want: false},
		{expr: `service.price_ordinal <= pref.price_ordinal`, want: true},
		{expr: `"hindi" in pref.languages && !service.is_remote`, want: true},
		{expr: `params.region == "west"`, want: true},
		{expr: `service.business_type.startsWith("cli")`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			p, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := p.Evaluate(svc, rctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(`service.location ==`)
	assert.Error(t, err)

	_, err = Compile(`1 + 2`)
	assert.Error(t, err)
}

func TestProgram_NonBoolAtRuntime(t *testing.T) {
	p, err := Compile(`service.location`)
	require.NoError(t, err)
	_, err = p.Evaluate(&core.ServiceRecord{Location: "delhi"}, nil)
	assert.Error(t, err)
}
