package neuroner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jdkato/prose/v2"
)

// TaggedSentence is one sentence of pre-tagged text: parallel token,
// part-of-speech tag and BIO entity label columns.
type TaggedSentence struct {
	Tokens []string
	Tags   []string
	Labels []string
}

// PretagText
// Segments raw text into sentences and tokens and assigns each token a
// part-of-speech tag and a BIO entity label using prose's models.
func PretagText(text string) ([]TaggedSentence, error) {
	text = ReplaceUnicodeWhitespacesWithASCIIWhitespace(text)
	tagged := make([]TaggedSentence, 0)
	if text == "" {
		return tagged, nil
	}
	doc, err := prose.NewDocument(
		text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTokenization(false),
	)
	if err != nil {
		return nil, err
	}
	for _, sentence := range doc.Sentences() {
		sentenceDoc, sentenceErr := prose.NewDocument(
			sentence.Text,
			prose.WithSegmentation(false),
		)
		if sentenceErr != nil {
			return nil, sentenceErr
		}
		tokens := sentenceDoc.Tokens()
		if len(tokens) == 0 {
			continue
		}
		current := TaggedSentence{
			Tokens: make([]string, 0, len(tokens)),
			Tags:   make([]string, 0, len(tokens)),
			Labels: make([]string, 0, len(tokens)),
		}
		for _, token := range tokens {
			// Columns are space-separated, so a token may not carry one.
			tokenText := strings.ReplaceAll(token.Text, " ", "_")
			if tokenText == "" {
				continue
			}
			label := token.Label
			if label == "" {
				label = Outside
			}
			tag := token.Tag
			if tag == "" {
				tag = "-"
			}
			current.Tokens = append(current.Tokens, tokenText)
			current.Tags = append(current.Tags, tag)
			current.Labels = append(current.Labels, label)
		}
		if len(current.Tokens) > 0 {
			tagged = append(tagged, current)
		}
	}
	return tagged, nil
}

// WriteCONLL
// Writes sentences as `token tag label` lines separated by blank lines.
// When `convert` is non-nil it is applied to each sentence's labels first.
func WriteCONLL(w io.Writer, sentences []TaggedSentence,
	convert LabelConverter) error {
	writer := bufio.NewWriter(w)
	for idx, sentence := range sentences {
		labels := sentence.Labels
		if convert != nil {
			labels = convert(labels)
		}
		if len(labels) != len(sentence.Tokens) ||
			len(sentence.Tags) != len(sentence.Tokens) {
			return fmt.Errorf("%w: sentence %d has %d tokens, %d tags, "+
				"%d labels", ErrLabelCountMismatch, idx,
				len(sentence.Tokens), len(sentence.Tags), len(labels))
		}
		if idx > 0 {
			if _, err := writer.WriteString("\n"); err != nil {
				return err
			}
		}
		for tokenIdx, token := range sentence.Tokens {
			if _, err := fmt.Fprintf(writer, "%s %s %s\n", token,
				sentence.Tags[tokenIdx], labels[tokenIdx]); err != nil {
				return err
			}
		}
	}
	return writer.Flush()
}
