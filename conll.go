package neuroner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// DocStartMarker marks a document boundary line in CONLL files.
const DocStartMarker = "-DOCSTART-"

// ErrLabelCountMismatch signals that a LabelConverter returned a sequence
// whose length differs from the sentence it was given. It indicates a bug
// in the converter, not bad input.
var ErrLabelCountMismatch = errors.New("converted label count does not " +
	"match sentence length")

// IsSentenceBoundary reports whether a split CONLL line separates
// sentences: it is empty, or its first field contains `-DOCSTART-`.
func IsSentenceBoundary(fields []string) bool {
	return len(fields) == 0 || len(fields[0]) == 0 ||
		strings.Contains(fields[0], DocStartMarker)
}

// sentenceBuffer accumulates the token lines of one sentence until a
// boundary or the end of input flushes it.
type sentenceBuffer struct {
	splitLines [][]string
	labels     []string
}

func (buffer *sentenceBuffer) add(fields []string) {
	buffer.splitLines = append(buffer.splitLines, fields)
	buffer.labels = append(buffer.labels, fields[len(fields)-1])
}

// flush converts the buffered labels and writes the sentence with the last
// column replaced. It reports whether a sentence was written.
func (buffer *sentenceBuffer) flush(w *bufio.Writer,
	convert LabelConverter) (bool, error) {
	if len(buffer.labels) == 0 {
		return false, nil
	}
	newLabels := convert(buffer.labels)
	if len(newLabels) != len(buffer.splitLines) {
		return false, fmt.Errorf("%w: %d labels for %d lines",
			ErrLabelCountMismatch, len(newLabels), len(buffer.splitLines))
	}
	for idx, fields := range buffer.splitLines {
		fields[len(fields)-1] = newLabels[idx]
		if _, err := w.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
			return false, err
		}
	}
	buffer.splitLines = buffer.splitLines[:0]
	buffer.labels = buffer.labels[:0]
	return true, nil
}

// ConvertCONLL
// Streams a space-separated CONLL document from `r` to `w` one sentence at
// a time, rewriting each sentence's last column with `convert`. Boundary
// lines are copied through verbatim. Returns the number of sentences
// converted.
func ConvertCONLL(r io.Reader, w io.Writer, convert LabelConverter) (
	sentences int, err error) {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	buffer := sentenceBuffer{}

	flush := func() error {
		written, flushErr := buffer.flush(writer, convert)
		if written {
			sentences++
		}
		return flushErr
	}

	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return sentences, readErr
		}
		if len(line) == 0 && readErr == io.EOF {
			break
		}
		fields := strings.Split(strings.TrimSpace(line), " ")
		if IsSentenceBoundary(fields) {
			if flushErr := flush(); flushErr != nil {
				return sentences, flushErr
			}
			if _, writeErr := writer.WriteString(line); writeErr != nil {
				return sentences, writeErr
			}
		} else {
			buffer.add(fields)
		}
		if readErr == io.EOF {
			break
		}
	}
	if flushErr := flush(); flushErr != nil {
		return sentences, flushErr
	}
	return sentences, writer.Flush()
}

// convertCONLLFile opens both files for the duration of one conversion and
// closes them on every exit path.
func convertCONLLFile(inputPath, outputPath string,
	convert LabelConverter, scheme string) (err error) {
	log.Printf("Converting CONLL %s to %s scheme... ", inputPath, scheme)
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", inputPath, err)
	}
	defer inputFile.Close()

	outputFile, err := os.OpenFile(outputPath,
		os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("error opening %s for write: %w", outputPath, err)
	}
	defer func() {
		if closeErr := outputFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", outputPath, closeErr)
		}
	}()

	sentences, err := ConvertCONLL(inputFile, outputFile, convert)
	if err != nil {
		return fmt.Errorf("error converting %s: %w", inputPath, err)
	}
	log.Printf("Converted %s... %d sentences, done.", inputPath, sentences)
	return nil
}

// ConvertCONLLFromBIOToBIOES
// Rewrites the CONLL file at `inputPath` into `outputPath` with every
// sentence's labels converted from BIO to BIOES. An interrupted run leaves a
// partial output file that must be regenerated.
func ConvertCONLLFromBIOToBIOES(inputPath, outputPath string) error {
	return convertCONLLFile(inputPath, outputPath, BIOToBIOES, "BIOES")
}

// ConvertCONLLFromBIOESToBIO
// Inverse of ConvertCONLLFromBIOToBIOES.
func ConvertCONLLFromBIOESToBIO(inputPath, outputPath string) error {
	return convertCONLLFile(inputPath, outputPath, BIOESToBIO, "BIO")
}
