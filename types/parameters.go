package types

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParameters is wrapped by every validation failure reported by
// NewParameters, ParseParameters and LoadParameters.
var ErrInvalidParameters = errors.New("invalid parameters")

// Parameters is the configuration record that locates a pretrained
// embedding and controls how tokens are matched against its vocabulary.
type Parameters struct {
	EmbeddingPath                   string `yaml:"embedding_path"`
	EmbeddingType                   string `yaml:"embedding_type"`
	Language                        string `yaml:"language"`
	EmbeddingDimension              int    `yaml:"embedding_dimension"`
	CheckForLowercase               bool   `yaml:"check_for_lowercase"`
	CheckForDigitsReplacedWithZeros bool   `yaml:"check_for_digits_replaced_with_zeros"`
}

// parametersFile mirrors Parameters with pointer fields, so that a key
// missing from the file can be told apart from a zero value.
type parametersFile struct {
	EmbeddingPath                   *string `yaml:"embedding_path"`
	EmbeddingType                   *string `yaml:"embedding_type"`
	Language                        *string `yaml:"language"`
	EmbeddingDimension              *int    `yaml:"embedding_dimension"`
	CheckForLowercase               *bool   `yaml:"check_for_lowercase"`
	CheckForDigitsReplacedWithZeros *bool   `yaml:"check_for_digits_replaced_with_zeros"`
}

// NewParameters
// Builds a validated Parameters record.
func NewParameters(embeddingPath, embeddingType, language string,
	embeddingDimension int, checkForLowercase,
	checkForDigitsReplacedWithZeros bool) (*Parameters, error) {
	params := &Parameters{
		EmbeddingPath:                   embeddingPath,
		EmbeddingType:                   embeddingType,
		Language:                        language,
		EmbeddingDimension:              embeddingDimension,
		CheckForLowercase:               checkForLowercase,
		CheckForDigitsReplacedWithZeros: checkForDigitsReplacedWithZeros,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate
// Checks that the location fields are set and the dimension is positive.
func (params Parameters) Validate() error {
	problems := make([]string, 0)
	if params.EmbeddingPath == "" {
		problems = append(problems, "`embedding_path` is empty")
	}
	if params.EmbeddingType == "" {
		problems = append(problems, "`embedding_type` is empty")
	}
	if params.Language == "" {
		problems = append(problems, "`language` is empty")
	}
	if params.EmbeddingDimension <= 0 {
		problems = append(problems, fmt.Sprintf(
			"`embedding_dimension` must be positive, got %d",
			params.EmbeddingDimension))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParameters,
			strings.Join(problems, "; "))
	}
	return nil
}

// ParseParameters
// Decodes a YAML parameters document. Every one of the six keys must be
// present, and unknown keys are rejected.
func ParseParameters(r io.Reader) (*Parameters, error) {
	var raw parametersFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidParameters)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	missing := make([]string, 0)
	if raw.EmbeddingPath == nil {
		missing = append(missing, "embedding_path")
	}
	if raw.EmbeddingType == nil {
		missing = append(missing, "embedding_type")
	}
	if raw.Language == nil {
		missing = append(missing, "language")
	}
	if raw.EmbeddingDimension == nil {
		missing = append(missing, "embedding_dimension")
	}
	if raw.CheckForLowercase == nil {
		missing = append(missing, "check_for_lowercase")
	}
	if raw.CheckForDigitsReplacedWithZeros == nil {
		missing = append(missing, "check_for_digits_replaced_with_zeros")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidParameters,
			strings.Join(missing, ", "))
	}

	return NewParameters(*raw.EmbeddingPath, *raw.EmbeddingType,
		*raw.Language, *raw.EmbeddingDimension, *raw.CheckForLowercase,
		*raw.CheckForDigitsReplacedWithZeros)
}

// LoadParameters
// Reads and validates the YAML parameters file at `path`.
func LoadParameters(path string) (*Parameters, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer handle.Close()
	params, err := ParseParameters(handle)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}
