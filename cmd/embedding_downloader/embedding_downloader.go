package main

import (
	"flag"
	"log"

	"github.com/atgiannako/neuroner/resources"
	"github.com/atgiannako/neuroner/types"
)

// DownloadEmbeddings
// Resolves the embedding files named by `params` into `destPath` and checks
// that the vocabulary index and vector table load. Returns the re-rooted
// parameters and the vocabulary size.
func DownloadEmbeddings(params types.Parameters, destPath string,
	rsrcLvl resources.ResourceFlag) (*types.Parameters, int, error) {
	localParams, rsrcs, rsrcErr := resources.ResolveEmbeddingResources(
		params, destPath, rsrcLvl)
	if rsrcErr != nil {
		return nil, 0, rsrcErr
	}
	defer rsrcs.Cleanup()
	embeddings, loadErr := resources.LoadPretrainedTokenEmbeddings(
		*localParams)
	if loadErr != nil {
		return nil, 0, loadErr
	}
	return localParams, len(embeddings), nil
}

func main() {
	configPath := flag.String("config", "",
		"parameters file naming the embedding to fetch")
	destPath := flag.String("dest", "./",
		"where to download the embedding to")
	withModel := flag.Bool("model", false,
		"also fetch the fastText subword model")
	flag.Parse()
	if *configPath == "" {
		flag.Usage()
		log.Fatal("Must provide -config")
	}

	params, err := types.LoadParameters(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	rsrcLvl := resources.RESOURCE_REQUIRED
	if *withModel {
		rsrcLvl = resources.RESOURCE_MODEL
	}
	localParams, tokens, err := DownloadEmbeddings(*params, *destPath,
		rsrcLvl)
	if err != nil {
		log.Fatalf("Error downloading embedding resources: %s", err)
	}
	log.Printf("Resolved %s... %d tokens of dimension %d.",
		resources.GetEmbeddingDir(*localParams), tokens,
		localParams.EmbeddingDimension)
}
