package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localscope/localscope-cli/internal/config"
	"github.com/localscope/localscope-cli/internal/neighborhood"
	"github.com/localscope/localscope-cli/internal/viability"
)

func TestEvaluateJSON(t *testing.T) {
	eval := viability.NewEvaluator(neighborhood.DefaultTable())

	res, err := evaluateJSON(eval, strings.NewReader(`{"neighborhood":"Narnia","category":"Librería","radius":500}`))
	require.NoError(t, err)
	assert.Equal(t, 61, res.OverallScore)
	assert.Equal(t, neighborhood.DefaultKey, res.Neighborhood)
}

func TestEvaluateJSON_Errors(t *testing.T) {
	eval := viability.NewEvaluator(neighborhood.DefaultTable())

	_, err := evaluateJSON(eval, strings.NewReader(`{`))
	assert.Error(t, err)

	_, err = evaluateJSON(eval, strings.NewReader(`{"neighborhood":"Recoleta"}`))
	assert.Error(t, err)
}

func TestInitEvaluator_DefaultTable(t *testing.T) {
	c := &config.Config{}
	c.Scoring.Weights = viability.DefaultWeights()
	c.Scoring.Locale = "es"

	eval, err := initEvaluator(c)
	require.NoError(t, err)
	assert.Equal(t, neighborhood.DefaultTable().Len(), eval.Table().Len())
	assert.Equal(t, viability.DefaultWeights(), eval.Weights())
}

func TestInitEvaluator_MissingDataFile(t *testing.T) {
	c := &config.Config{}
	c.Neighborhood.DataPath = "testdata/missing.yaml"

	_, err := initEvaluator(c)
	assert.Error(t, err)
}

func TestInitResolver_Fallback(t *testing.T) {
	c := &config.Config{}
	c.Neighborhood.FallbackName = "Palermo"

	r, err := initResolver(c, nil)
	require.NoError(t, err)

	name, ok := r.Resolve(context.Background(), -34.6, -58.4)
	assert.Equal(t, "Palermo", name)
	assert.False(t, ok)
}
