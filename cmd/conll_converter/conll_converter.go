package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/atgiannako/neuroner"
	"github.com/yargevad/filepathx"
)

// FileConverter rewrites the CONLL file at inputPath into outputPath.
type FileConverter func(inputPath, outputPath string) error

var converters = map[string]FileConverter{
	"bioes": neuroner.ConvertCONLLFromBIOToBIOES,
	"bio":   neuroner.ConvertCONLLFromBIOESToBIO,
}

type PathInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// GlobTexts
// Given a directory path, recursively finds all `.txt` files, returning a
// slice of PathInfo sorted by path.
func GlobTexts(dirPath string) (pathInfos []PathInfo, err error) {
	textPaths, err := filepathx.Glob(dirPath + "/**/*.txt")
	if err != nil {
		return nil, err
	}
	numMatches := len(textPaths)
	if numMatches == 0 {
		return nil, errors.New(fmt.Sprintf(
			"%s does not contain any .txt files", dirPath))
	}
	pathInfos = make([]PathInfo, 0, numMatches)
	for _, currPath := range textPaths {
		stat, statErr := os.Stat(currPath)
		if statErr != nil {
			return nil, statErr
		}
		if stat.IsDir() {
			continue
		}
		pathInfos = append(pathInfos, PathInfo{
			Path:    currPath,
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
		})
	}
	sort.Slice(pathInfos, func(i, j int) bool {
		return pathInfos[i].Path < pathInfos[j].Path
	})
	return pathInfos, nil
}

// IsUpToDate reports whether `outputPath` exists and is newer than the
// source it was converted from.
func IsUpToDate(source PathInfo, outputPath string) bool {
	outStat, outErr := os.Stat(outputPath)
	return outErr == nil && source.ModTime.Before(outStat.ModTime())
}

// ConvertTree
// Converts every `.txt` file under `inputDir` into the same relative path
// under `outputDir`. Outputs newer than their source are skipped unless
// `force` is set. Returns the number of files converted.
func ConvertTree(inputDir, outputDir string, convert FileConverter,
	force bool) (int, error) {
	pathInfos, err := GlobTexts(inputDir)
	if err != nil {
		return 0, err
	}
	converted := 0
	for _, pathInfo := range pathInfos {
		relPath, relErr := filepath.Rel(inputDir, pathInfo.Path)
		if relErr != nil {
			return converted, relErr
		}
		outputPath := filepath.Join(outputDir, relPath)
		if !force && IsUpToDate(pathInfo, outputPath) {
			log.Printf("Skipping %s... %s is newer.", pathInfo.Path,
				outputPath)
			continue
		}
		if mkdirErr := os.MkdirAll(filepath.Dir(outputPath),
			0755); mkdirErr != nil {
			return converted, mkdirErr
		}
		if convErr := convert(pathInfo.Path, outputPath); convErr != nil {
			return converted, convErr
		}
		converted++
	}
	return converted, nil
}

func main() {
	inputPath := flag.String("input", "",
		"CONLL file, or directory of .txt CONLL files, to convert")
	outputPath := flag.String("output", "",
		"output file, or output directory when -input is a directory")
	toScheme := flag.String("to", "bioes",
		"target tagging scheme [bioes, bio]")
	force := flag.Bool("force", false,
		"reconvert files even if their output is newer")
	flag.Parse()
	if *inputPath == "" || *outputPath == "" {
		flag.Usage()
		log.Fatal("Must provide -input and -output")
	}
	convert, ok := converters[*toScheme]
	if !ok {
		flag.Usage()
		log.Fatalf("Invalid -to scheme `%s`", *toScheme)
	}

	inputStat, statErr := os.Stat(*inputPath)
	if statErr != nil {
		log.Fatal(statErr)
	}
	begin := time.Now()
	if inputStat.IsDir() {
		converted, convErr := ConvertTree(*inputPath, *outputPath, convert,
			*force)
		if convErr != nil {
			log.Fatal(convErr)
		}
		log.Printf("%d files in %0.2fs", converted,
			time.Now().Sub(begin).Seconds())
		return
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath),
		0755); mkdirErr != nil {
		log.Fatal(mkdirErr)
	}
	if convErr := convert(*inputPath, *outputPath); convErr != nil {
		log.Fatal(convErr)
	}
	log.Printf("Done in %0.2fs", time.Now().Sub(begin).Seconds())
}
