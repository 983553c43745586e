package main

import (
	"strings"
	"testing"

	"github.com/atgiannako/neuroner"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const report = "processed 20 tokens with 4 phrases; found: 4 phrases; " +
	"correct: 3.\n" +
	"accuracy:  95.00%; precision:  75.00%; recall:  75.00%; FB1:  75.00\n" +
	"              PER: precision: 100.00%; recall: 100.00%; FB1: 100.00  3\n" +
	"              LOC: precision:   0.00%; recall:   0.00%; FB1:   0.00  1\n"

func TestFormatEvaluation(t *testing.T) {
	evaluation, err := neuroner.ParseCONLLOutput(strings.NewReader(report))
	require.NoError(t, err)

	compact, err := FormatEvaluation(evaluation, false)
	assert.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")

	indented, err := FormatEvaluation(evaluation, true)
	assert.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"LOC\": {")

	decoded := make(map[string]map[string]float64)
	require.NoError(t, json.Unmarshal(compact, &decoded))
	assert.Len(t, decoded, 3)
	assert.Equal(t, 95.0, decoded["all"]["accuracy"])
	assert.Equal(t, 4.0, decoded["all"]["support"])
	assert.Equal(t, 100.0, decoded["PER"]["f1"])
	// Accuracy is only reported for the summary row.
	assert.NotContains(t, decoded["PER"], "accuracy")
}
