package neuroner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// SummaryCategory is the Evaluation key of the all-categories row.
const SummaryCategory = "all"

// Metrics are the scores of one row of an evaluation report. Accuracy is
// only reported on the summary row.
type Metrics struct {
	Accuracy  float64 `json:"accuracy,omitempty"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluation maps `all` and each entity type to its metrics.
type Evaluation map[string]*Metrics

var reportCleaner = strings.NewReplacer("%", "", ";", "", ":", "")

// reportFields cleans and splits one report line.
func reportFields(line string) []string {
	return strings.Fields(reportCleaner.Replace(line))
}

func parseFloatField(fields []string, idx int, lineIdx int) (float64,
	error) {
	value, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return 0, fmt.Errorf("line %d, field %d: %w", lineIdx, idx, err)
	}
	return value, nil
}

// ParseCONLLOutput
// Parses a conlleval text report. Line 0 is a header, line 1 the summary
// `accuracy A precision P recall R FB1 F`, and every later line a category
// row `TYPE precision P recall R FB1 F SUPPORT`. Any line that does not fit
// this layout fails the whole parse.
func ParseCONLLOutput(r io.Reader) (Evaluation, error) {
	lines := make([][]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, reportFields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, errors.New(fmt.Sprintf(
			"evaluation report has %d lines, expected at least 2",
			len(lines)))
	}

	summary := lines[1]
	if len(summary) < 8 {
		return nil, errors.New(fmt.Sprintf(
			"line 1: summary has %d fields, expected 8", len(summary)))
	}
	all := &Metrics{}
	var err error
	if all.Accuracy, err = parseFloatField(summary, 1, 1); err != nil {
		return nil, err
	}
	if all.Precision, err = parseFloatField(summary, 3, 1); err != nil {
		return nil, err
	}
	if all.Recall, err = parseFloatField(summary, 5, 1); err != nil {
		return nil, err
	}
	if all.F1, err = parseFloatField(summary, 7, 1); err != nil {
		return nil, err
	}

	evaluation := Evaluation{SummaryCategory: all}
	totalSupport := 0
	for lineIdx := 2; lineIdx < len(lines); lineIdx++ {
		fields := lines[lineIdx]
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 8 {
			return nil, errors.New(fmt.Sprintf(
				"line %d: category row has %d fields, expected 8",
				lineIdx, len(fields)))
		}
		category := strings.ReplaceAll(RemoveBIOFromLabelName(fields[0]),
			"_", "-")
		metrics := &Metrics{}
		if metrics.Precision, err = parseFloatField(fields, 2,
			lineIdx); err != nil {
			return nil, err
		}
		if metrics.Recall, err = parseFloatField(fields, 4,
			lineIdx); err != nil {
			return nil, err
		}
		if metrics.F1, err = parseFloatField(fields, 6, lineIdx); err != nil {
			return nil, err
		}
		if metrics.Support, err = strconv.Atoi(fields[7]); err != nil {
			return nil, fmt.Errorf("line %d, field 7: %w", lineIdx, err)
		}
		totalSupport += metrics.Support
		evaluation[category] = metrics
	}
	all.Support = totalSupport
	return evaluation, nil
}

// GetParsedCONLLOutput
// Reads and parses the conlleval report at `path`.
func GetParsedCONLLOutput(path string) (Evaluation, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer handle.Close()
	evaluation, err := ParseCONLLOutput(handle)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return evaluation, nil
}
