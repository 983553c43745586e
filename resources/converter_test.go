package resources

import (
	"strings"
	"testing"

	"github.com/atgiannako/neuroner/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gloveText = `the 0.1 0.2 0.3
run 1 2 3
New York -1 -2 -3
run 9 9 9
`

func TestReadTextEmbeddings(t *testing.T) {
	index, vectors, duplicates, err := ReadTextEmbeddings(
		strings.NewReader(gloveText), 3)
	require.NoError(t, err)
	assert.Equal(t, types.TokenIndex{"the": 0, "run": 1, "New York": 2},
		index)
	assert.Equal(t, types.Vector{-1, -2, -3}, vectors[2])
	require.Len(t, duplicates, 1)
	assert.Equal(t, DuplicateEntry{Token: "run", KeptRow: 1, Line: 4},
		duplicates[0])
}

func TestReadTextEmbeddingsWord2VecHeader(t *testing.T) {
	index, vectors, _, err := ReadTextEmbeddings(
		strings.NewReader("2 2\nfoo 1 2\nbar 3 4\n"), 2)
	require.NoError(t, err)
	assert.Len(t, index, 2)
	assert.Equal(t, types.Vectors{{1, 2}, {3, 4}}, vectors)
}

func TestReadTextEmbeddingsBadRows(t *testing.T) {
	_, _, _, err := ReadTextEmbeddings(strings.NewReader("foo 1 2\n"), 3)
	assert.ErrorContains(t, err, "line 1")

	_, _, _, err = ReadTextEmbeddings(strings.NewReader("foo 1 x 2\n"), 3)
	assert.ErrorContains(t, err, "line 1, value 1")
}

func TestConvertTextEmbeddings(t *testing.T) {
	params := fixtureParameters("/not/used")
	dir := t.TempDir()
	rows, err := ConvertTextEmbeddings(strings.NewReader(gloveText), params,
		dir)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	params.EmbeddingPath = dir
	embeddings, err := LoadPretrainedTokenEmbeddings(params)
	require.NoError(t, err)
	assert.Equal(t, types.Vector{1, 2, 3}, embeddings["run"])
	assert.Equal(t, types.Vector{0.1, 0.2, 0.3}, embeddings["the"])
	assert.True(t, embeddings.Contains("New York"))
}

func TestConvertTextEmbeddingsRemote(t *testing.T) {
	params := fixtureParameters("s3://bucket/embeddings")
	_, err := ConvertTextEmbeddings(strings.NewReader(gloveText), params, "")
	assert.Error(t, err)
}
