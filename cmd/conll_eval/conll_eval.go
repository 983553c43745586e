package main

import (
	"flag"
	"log"
	"os"

	"github.com/atgiannako/neuroner"
	"github.com/goccy/go-json"
)

// FormatEvaluation renders an evaluation as JSON keyed by category.
func FormatEvaluation(evaluation neuroner.Evaluation,
	indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(evaluation, "", "  ")
	}
	return json.Marshal(evaluation)
}

func main() {
	inputPath := flag.String("input", "",
		"conlleval text report to parse")
	indent := flag.Bool("indent", false, "indent the JSON output")
	flag.Parse()
	if *inputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -input")
	}

	evaluation, err := neuroner.GetParsedCONLLOutput(*inputPath)
	if err != nil {
		log.Fatal(err)
	}
	output, err := FormatEvaluation(evaluation, *indent)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(append(output, '\n')); err != nil {
		log.Fatal(err)
	}
	all := evaluation[neuroner.SummaryCategory]
	log.Printf("Parsed %s... %d categories, F1 %0.2f", *inputPath,
		len(evaluation)-1, all.F1)
}
