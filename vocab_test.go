package neuroner

import (
	"testing"

	"github.com/atgiannako/neuroner/resources"
	"github.com/atgiannako/neuroner/types"
	"github.com/stretchr/testify/assert"
)

type VocabTest struct {
	Token     string
	Lowercase bool
	Digits    bool
	Expected  bool
}

var vocabTests = []VocabTest{
	{"the", false, false, true},
	{"The", false, false, false},
	{"The", true, false, true},
	{"run0", false, false, true},
	{"run7", false, false, false},
	{"run7", false, true, true},
	{"Run1", true, false, false},
	{"Run1", false, true, false},
	{"Run1", true, true, true},
	{"boston", true, true, false},
	{"", true, true, false},
}

func TestIsTokenInPretrainedEmbeddings(t *testing.T) {
	vocab := NewTokenSet("the", "run0", "2000")
	for _, test := range vocabTests {
		params := types.Parameters{
			CheckForLowercase:               test.Lowercase,
			CheckForDigitsReplacedWithZeros: test.Digits,
		}
		assert.Equal(t, test.Expected,
			IsTokenInPretrainedEmbeddings(test.Token, vocab, params),
			"%q lowercase=%v digits=%v", test.Token, test.Lowercase,
			test.Digits)
	}
}

func TestIsTokenInPretrainedEmbeddingsVocabularies(t *testing.T) {
	params := types.Parameters{
		CheckForLowercase:               true,
		CheckForDigitsReplacedWithZeros: true,
	}
	index := types.TokenIndex{"paris": 0, "0000": 1}
	assert.True(t, IsTokenInPretrainedEmbeddings("Paris", index, params))
	assert.True(t, IsTokenInPretrainedEmbeddings("1999", index, params))
	assert.False(t, IsTokenInPretrainedEmbeddings("London", index, params))

	embeddings := resources.Embeddings{"london": types.Vector{0.5, 0.25}}
	assert.True(t, IsTokenInPretrainedEmbeddings("LONDON", embeddings,
		params))
	assert.False(t, IsTokenInPretrainedEmbeddings("Paris", embeddings,
		params))
}

func TestReplaceDigitsWithZeros(t *testing.T) {
	assert.Equal(t, "run0", ReplaceDigitsWithZeros("run7"))
	assert.Equal(t, "00-00-0000", ReplaceDigitsWithZeros("12-31-1999"))
	assert.Equal(t, "no digits", ReplaceDigitsWithZeros("no digits"))
	// Arabic-Indic and fullwidth digits.
	assert.Equal(t, "00", ReplaceDigitsWithZeros("٣７"))
}

func TestTokenSet(t *testing.T) {
	set := NewTokenSet("a", "b", "a")
	assert.Len(t, set, 2)
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))
	assert.False(t, NewTokenSet().Contains(""))
}
