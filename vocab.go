package neuroner

import (
	"strings"
	"unicode"

	"github.com/atgiannako/neuroner/types"
)

// Vocabulary is a set of known tokens.
type Vocabulary interface {
	Contains(token string) bool
}

// TokenSet is a Vocabulary backed by a map.
type TokenSet map[string]struct{}

// NewTokenSet builds a TokenSet from a list of tokens.
func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func (set TokenSet) Contains(token string) bool {
	_, ok := set[token]
	return ok
}

// ReplaceDigitsWithZeros maps every decimal digit in `s`, in any script, to
// `0`.
func ReplaceDigitsWithZeros(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '0'
		}
		return r
	}, s)
}

// IsTokenInPretrainedEmbeddings
// Reports whether `token` is in `vocab` as is, or, when the parameters
// enable it, lowercased, with digits replaced by zeros, or both.
func IsTokenInPretrainedEmbeddings(token string, vocab Vocabulary,
	params types.Parameters) bool {
	if vocab.Contains(token) {
		return true
	}
	if params.CheckForLowercase && vocab.Contains(strings.ToLower(token)) {
		return true
	}
	if params.CheckForDigitsReplacedWithZeros &&
		vocab.Contains(ReplaceDigitsWithZeros(token)) {
		return true
	}
	return params.CheckForLowercase && params.CheckForDigitsReplacedWithZeros &&
		vocab.Contains(ReplaceDigitsWithZeros(strings.ToLower(token)))
}
