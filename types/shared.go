package types

// Vector is a single word embedding.
type Vector []float32

// Vectors is a table of embeddings, one row per vocabulary index.
type Vectors []Vector

// TokenIndex maps a vocabulary token to its row in a Vectors table.
type TokenIndex map[string]int

const (
	// VectorHeaderSize is the byte size of the `rows`, `dim` header that
	// prefixes a serialized Vectors table.
	VectorHeaderSize = 8
	// FloatSize is the byte size of one serialized vector component.
	FloatSize = 4
)

// Contains reports whether `token` is in the index.
func (index TokenIndex) Contains(token string) bool {
	_, ok := index[token]
	return ok
}
