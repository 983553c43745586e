package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atgiannako/neuroner/resources"
	"github.com/atgiannako/neuroner/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceEmbedding(t *testing.T) types.Parameters {
	params := types.Parameters{
		EmbeddingPath:      t.TempDir(),
		EmbeddingType:      "glove",
		Language:           "en",
		EmbeddingDimension: 2,
	}
	require.NoError(t, resources.WriteEmbeddingFiles(params,
		types.TokenIndex{"the": 0, "cat": 1},
		types.Vectors{{0, 1}, {1, 0}}))
	return params
}

func TestDownloadEmbeddings(t *testing.T) {
	params := sourceEmbedding(t)
	dest := t.TempDir()

	localParams, tokens, err := DownloadEmbeddings(params, dest,
		resources.RESOURCE_REQUIRED)
	assert.NoError(t, err)
	assert.Equal(t, 2, tokens)
	assert.Equal(t, dest, localParams.EmbeddingPath)
	_, statErr := os.Stat(filepath.Join(dest, "glove", "en",
		"word_embeddings_2.p"))
	assert.NoError(t, statErr)

	// The fastText model is optional when asked for.
	_, _, err = DownloadEmbeddings(params, dest, resources.RESOURCE_MODEL)
	assert.NoError(t, err)
}

func TestDownloadEmbeddingsMissing(t *testing.T) {
	params := sourceEmbedding(t)
	params.Language = "fr"
	_, _, err := DownloadEmbeddings(params, t.TempDir(),
		resources.RESOURCE_REQUIRED)
	assert.Error(t, err)
}
