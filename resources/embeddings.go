package resources

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atgiannako/neuroner/types"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
)

// Embeddings maps a vocabulary token to its vector.
type Embeddings map[string]types.Vector

// Contains reports whether `token` has a vector.
func (embeddings Embeddings) Contains(token string) bool {
	_, ok := embeddings[token]
	return ok
}

func isRemote(root string) bool {
	return isS3Uri(root) || isValidUrl(root)
}

// joinLocation joins path elements onto a local directory or a remote uri.
func joinLocation(root string, elems ...string) string {
	if isRemote(root) {
		return strings.TrimRight(root, "/") + "/" + strings.Join(elems, "/")
	}
	return filepath.Join(append([]string{root}, elems...)...)
}

// GetEmbeddingDir
// Returns `embedding_path/embedding_type/language`, the directory holding
// every file of one embedding.
func GetEmbeddingDir(params types.Parameters) string {
	return joinLocation(params.EmbeddingPath, params.EmbeddingType,
		params.Language)
}

func GetVocabFileName(params types.Parameters) string {
	return "vocab_word_embeddings_" +
		strconv.Itoa(params.EmbeddingDimension) + ".p"
}

func GetEmbeddingFileName(params types.Parameters) string {
	return "word_embeddings_" + strconv.Itoa(params.EmbeddingDimension) + ".p"
}

func GetFastTextFileName(params types.Parameters) string {
	return "wiki." + params.Language + ".bin"
}

// GetVocabFilePath
// Returns the path of the vocabulary index file for `params`.
func GetVocabFilePath(params types.Parameters) string {
	return joinLocation(GetEmbeddingDir(params), GetVocabFileName(params))
}

// GetEmbeddingFilePath
// Returns the path of the vector table file for `params`.
func GetEmbeddingFilePath(params types.Parameters) string {
	return joinLocation(GetEmbeddingDir(params), GetEmbeddingFileName(params))
}

// GetEmbeddingFilePathFastText
// Returns the path of the fastText subword model binary for `params`.
func GetEmbeddingFilePathFastText(params types.Parameters) string {
	return joinLocation(GetEmbeddingDir(params), GetFastTextFileName(params))
}

// LoadTokensFromPretrainedTokenEmbeddings
// Reads the vocabulary index, a JSON object of token to vector row.
func LoadTokensFromPretrainedTokenEmbeddings(params types.Parameters) (
	types.TokenIndex, error) {
	path := GetVocabFilePath(params)
	indexBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading vocabulary %s: %w", path, err)
	}
	index := make(types.TokenIndex)
	if err := json.Unmarshal(indexBytes, &index); err != nil {
		return nil, fmt.Errorf("cannot unmarshal vocabulary %s: %w", path,
			err)
	}
	return index, nil
}

// LoadVectors
// Maps the vector table at `path` and decodes it.
func LoadVectors(path string) (types.Vectors, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening vectors %s: %w", path, err)
	}
	entry := ResourceEntry{file: handle}
	defer entry.Close()
	data, err := readMmap(handle)
	if err != nil {
		return nil, fmt.Errorf("error trying to mmap file %s: %w", path, err)
	}
	entry.Data = data
	vectors, err := types.VectorsFromBin(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("Loaded %s... %d vectors of dimension %d, %s.", path,
		len(vectors), vectors.Dim(), humanize.Bytes(uint64(len(*data))))
	return vectors, nil
}

// LoadPretrainedTokenEmbeddings
// Loads the vocabulary index and vector table named by `params` and
// composes them into a token to vector mapping.
func LoadPretrainedTokenEmbeddings(params types.Parameters) (Embeddings,
	error) {
	index, err := LoadTokensFromPretrainedTokenEmbeddings(params)
	if err != nil {
		return nil, err
	}
	vectors, err := LoadVectors(GetEmbeddingFilePath(params))
	if err != nil {
		return nil, err
	}
	if len(vectors) > 0 && vectors.Dim() != params.EmbeddingDimension {
		return nil, fmt.Errorf("%w: %s has dimension %d, expected %d",
			types.ErrCorruptVectors, GetEmbeddingFilePath(params),
			vectors.Dim(), params.EmbeddingDimension)
	}
	embeddings := make(Embeddings, len(index))
	for token, row := range index {
		if row < 0 || row >= len(vectors) {
			return nil, fmt.Errorf("%w: token %q points at row %d of %d",
				types.ErrCorruptVectors, token, row, len(vectors))
		}
		embeddings[token] = vectors[row]
	}
	return embeddings, nil
}

// LoadFastTextEmbeddings
// Maps the fastText subword model binary named by `params`. The caller owns
// the returned entry and must Close it.
func LoadFastTextEmbeddings(params types.Parameters) (*ResourceEntry,
	error) {
	path := GetEmbeddingFilePathFastText(params)
	handle, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening fastText model %s: %w", path,
			err)
	}
	data, err := readMmap(handle)
	if err != nil {
		handle.Close()
		return nil, fmt.Errorf("error trying to mmap file %s: %w", path, err)
	}
	return &ResourceEntry{file: handle, Data: data}, nil
}
