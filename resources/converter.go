package resources

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atgiannako/neuroner/types"
	"github.com/goccy/go-json"
)

// Text embedding lines can be several kilobytes wide.
const MAX_LINE_SZ = 16 * 1024 * 1024

// DuplicateEntry records a token seen again after its first row.
type DuplicateEntry struct {
	Token   string
	KeptRow int
	Line    int
}

// isWord2VecHeader reports whether `fields` is a `rows dim` header line.
func isWord2VecHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	_, rowsErr := strconv.Atoi(fields[0])
	_, dimErr := strconv.Atoi(fields[1])
	return rowsErr == nil && dimErr == nil
}

// ReadTextEmbeddings
// Parses GloVe or word2vec text vectors: one `token v1 ... vD` row per
// line, where D is `dim`. A leading word2vec `rows dim` header is skipped.
// Tokens that contain spaces are kept whole, since the vector is always the
// last D fields. Later rows for a token already seen are dropped.
func ReadTextEmbeddings(r io.Reader, dim int) (types.TokenIndex,
	types.Vectors, []DuplicateEntry, error) {
	index := make(types.TokenIndex)
	vectors := make(types.Vectors, 0)
	duplicates := make([]DuplicateEntry, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MAX_LINE_SZ)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if lineIdx == 1 && isWord2VecHeader(fields) {
			continue
		}
		if len(fields) < dim+1 {
			return nil, nil, nil, errors.New(fmt.Sprintf(
				"line %d: %d fields, expected a token and %d values",
				lineIdx, len(fields), dim))
		}
		token := strings.Join(fields[:len(fields)-dim], " ")
		if row, ok := index[token]; ok {
			duplicates = append(duplicates, DuplicateEntry{
				Token:   token,
				KeptRow: row,
				Line:    lineIdx,
			})
			continue
		}
		vector := make(types.Vector, dim)
		for col, field := range fields[len(fields)-dim:] {
			value, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("line %d, value %d: %w",
					lineIdx, col, err)
			}
			vector[col] = float32(value)
		}
		index[token] = len(vectors)
		vectors = append(vectors, vector)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, err
	}
	return index, vectors, duplicates, nil
}

// WriteEmbeddingFiles
// Writes the vocabulary index and vector table for `params` under its
// embedding directory, creating the directory if needed.
func WriteEmbeddingFiles(params types.Parameters, index types.TokenIndex,
	vectors types.Vectors) error {
	dir := GetEmbeddingDir(params)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	indexBytes, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("cannot marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(GetVocabFilePath(params), indexBytes,
		0644); err != nil {
		return err
	}
	vectorBytes, err := vectors.ToBin()
	if err != nil {
		return fmt.Errorf("cannot serialize vectors: %w", err)
	}
	return os.WriteFile(GetEmbeddingFilePath(params), *vectorBytes, 0644)
}

// ConvertTextEmbeddings
// Converts a text embedding file into the vocabulary index and vector table
// that LoadPretrainedTokenEmbeddings reads. When `dir` is non-empty it
// replaces `params.EmbeddingPath` as the output root. Returns the number of
// vectors written.
func ConvertTextEmbeddings(r io.Reader, params types.Parameters,
	dir string) (int, error) {
	if dir != "" {
		params.EmbeddingPath = dir
	}
	if isRemote(params.EmbeddingPath) {
		return 0, errors.New(fmt.Sprintf(
			"cannot write embeddings to remote location `%s`",
			params.EmbeddingPath))
	}
	index, vectors, duplicates, err := ReadTextEmbeddings(r,
		params.EmbeddingDimension)
	if err != nil {
		return 0, err
	}
	for _, dupe := range duplicates {
		log.Printf("Duplicate token %q on line %d, keeping row %d",
			dupe.Token, dupe.Line, dupe.KeptRow)
	}
	if err := WriteEmbeddingFiles(params, index, vectors); err != nil {
		return 0, err
	}
	log.Printf("Wrote %d vectors to %s", len(vectors),
		filepath.Clean(GetEmbeddingDir(params)))
	return len(vectors), nil
}
