package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atgiannako/neuroner/resources"
	"github.com/atgiannako/neuroner/types"
)

// ConvertEmbeddingFile
// Converts the text embedding at `inputPath` into the files named by
// `params`, rooted at `destPath` when it is non-empty. With `verify` set the
// written files are loaded back through an EmbeddingCache and the token
// count is checked. Returns the number of vectors written.
func ConvertEmbeddingFile(params types.Parameters, inputPath string,
	destPath string, verify bool) (int, error) {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer inputFile.Close()
	written, err := resources.ConvertTextEmbeddings(inputFile, params,
		destPath)
	if err != nil {
		return 0, fmt.Errorf("error converting %s: %w", inputPath, err)
	}
	if !verify {
		return written, nil
	}
	if destPath != "" {
		params.EmbeddingPath = destPath
	}
	cache, err := resources.NewEmbeddingCache(1)
	if err != nil {
		return written, err
	}
	embeddings, err := cache.Get(params)
	if err != nil {
		return written, err
	}
	if len(embeddings) != written {
		return written, errors.New(fmt.Sprintf(
			"wrote %d vectors but loaded %d tokens", written,
			len(embeddings)))
	}
	return written, nil
}

func main() {
	configPath := flag.String("config", "",
		"parameters file naming the embedding to write")
	inputPath := flag.String("input", "",
		"GloVe or word2vec text embedding file")
	destPath := flag.String("dest", "",
		"output root, overriding embedding_path from -config")
	verify := flag.Bool("verify", false,
		"load the converted files back and check them")
	flag.Parse()
	if *configPath == "" || *inputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -config and -input")
	}

	params, err := types.LoadParameters(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	begin := time.Now()
	written, err := ConvertEmbeddingFile(*params, *inputPath, *destPath,
		*verify)
	if err != nil {
		log.Fatal(err)
	}
	duration := time.Now().Sub(begin).Seconds()
	log.Printf("%d vectors in %0.2fs, %0.2f vectors/s", written, duration,
		float64(written)/duration)
}
