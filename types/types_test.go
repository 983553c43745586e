package types

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validParameters = `embedding_path: /data/embeddings
embedding_type: glove
language: en
embedding_dimension: 100
check_for_lowercase: true
check_for_digits_replaced_with_zeros: false
`

func TestVectorsRoundTrip(t *testing.T) {
	vectors := Vectors{
		{0.5, -1.25, 3},
		{0, 1, 2},
	}
	bin, err := vectors.ToBin()
	require.NoError(t, err)
	assert.Equal(t, VectorHeaderSize+2*3*FloatSize, len(*bin))

	decoded, err := VectorsFromBin(bin)
	require.NoError(t, err)
	assert.Equal(t, vectors, decoded)
}

func TestVectorsToBinRaggedRows(t *testing.T) {
	vectors := Vectors{{1, 2}, {3}}
	_, err := vectors.ToBin()
	assert.Error(t, err)
}

func TestVectorsFromBinCorrupt(t *testing.T) {
	short := []byte{1, 0, 0}
	_, err := VectorsFromBin(&short)
	assert.ErrorIs(t, err, ErrCorruptVectors)

	vectors := Vectors{{1, 2}}
	bin, err := vectors.ToBin()
	require.NoError(t, err)
	truncated := (*bin)[:len(*bin)-1]
	_, err = VectorsFromBin(&truncated)
	assert.ErrorIs(t, err, ErrCorruptVectors)
}

func TestParseParameters(t *testing.T) {
	params, err := ParseParameters(strings.NewReader(validParameters))
	require.NoError(t, err)
	assert.Equal(t, Parameters{
		EmbeddingPath:                   "/data/embeddings",
		EmbeddingType:                   "glove",
		Language:                        "en",
		EmbeddingDimension:              100,
		CheckForLowercase:               true,
		CheckForDigitsReplacedWithZeros: false,
	}, *params)
}

func TestParseParametersMissingKey(t *testing.T) {
	doc := strings.Replace(validParameters,
		"check_for_digits_replaced_with_zeros: false\n", "", 1)
	_, err := ParseParameters(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrInvalidParameters)
	assert.Contains(t, err.Error(), "check_for_digits_replaced_with_zeros")
}

func TestParseParametersUnknownKey(t *testing.T) {
	_, err := ParseParameters(strings.NewReader(validParameters +
		"embedding_dim: 100\n"))
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestParseParametersEmpty(t *testing.T) {
	_, err := ParseParameters(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestNewParametersValidation(t *testing.T) {
	_, err := NewParameters("", "glove", "en", 100, false, false)
	assert.ErrorIs(t, err, ErrInvalidParameters)
	_, err = NewParameters("/data", "glove", "en", 0, false, false)
	assert.ErrorIs(t, err, ErrInvalidParameters)
	params, err := NewParameters("/data", "glove", "en", 50, true, true)
	assert.NoError(t, err)
	assert.Equal(t, 50, params.EmbeddingDimension)
}

func TestLoadParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parameters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validParameters), 0644))
	params, err := LoadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, "glove", params.EmbeddingType)

	_, err = LoadParameters(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
