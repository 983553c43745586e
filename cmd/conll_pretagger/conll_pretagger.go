package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atgiannako/neuroner"
)

// PretagFile
// Tags the raw text at `inputPath` and writes it to `outputPath` as CONLL,
// in BIOES when `bioes` is set and BIO otherwise. Returns the number of
// sentences written.
func PretagFile(inputPath, outputPath string, bioes bool) (n int,
	err error) {
	text, err := os.ReadFile(inputPath)
	if err != nil {
		return 0, err
	}
	sentences, err := neuroner.PretagText(string(text))
	if err != nil {
		return 0, fmt.Errorf("error tagging %s: %w", inputPath, err)
	}
	outputFile, err := os.OpenFile(outputPath,
		os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return 0, fmt.Errorf("error opening %s for write: %w", outputPath,
			err)
	}
	defer func() {
		if closeErr := outputFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	var convert neuroner.LabelConverter
	if bioes {
		convert = neuroner.BIOToBIOES
	}
	if err = neuroner.WriteCONLL(outputFile, sentences, convert); err != nil {
		return 0, err
	}
	entities := 0
	allLabels := make([]string, 0)
	for _, sentence := range sentences {
		entities += len(neuroner.BIOSpans(sentence.Labels))
		allLabels = append(allLabels, sentence.Labels...)
	}
	log.Printf("Tagged %d entities of types %v in %s", entities,
		neuroner.EntityTypes(allLabels), inputPath)
	return len(sentences), nil
}

func main() {
	inputPath := flag.String("input", "", "raw text file to tag")
	outputPath := flag.String("output", "", "CONLL output file")
	bioes := flag.Bool("bioes", false, "write BIOES labels instead of BIO")
	flag.Parse()
	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -input and -output")
	}

	begin := time.Now()
	sentences, err := PretagFile(*inputPath, *outputPath, *bioes)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Tagged %s... %d sentences in %0.2fs", *inputPath, sentences,
		time.Now().Sub(begin).Seconds())
}
