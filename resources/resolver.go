package resources

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/atgiannako/neuroner/types"
	"github.com/dustin/go-humanize"
)

type ResourceFlag uint8

// WriteCounter counts the number of bytes written to it, and every 10 seconds,
// it prints a message reporting the number of bytes written so far.
type WriteCounter struct {
	Total    uint64
	Last     time.Time
	Reported bool
	Path     string
	Size     uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	if time.Now().Sub(wc.Last).Seconds() > 10 {
		wc.Reported = true
		wc.Last = time.Now()
		log.Printf("Downloading %s... %s / %s completed.",
			wc.Path, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size))
	}
	return n, nil
}

// Enumeration of resource flags that indicate what the resolver should do
// with the resource. A resource is resolved when its flag is at or below
// the requested level.
const (
	RESOURCE_REQUIRED ResourceFlag = 1 << iota
	RESOURCE_OPTIONAL
	RESOURCE_MODEL
)

type ResourceEntryDefs map[string]ResourceFlag

// ResourceEntry is a resolved file and its mapped contents.
type ResourceEntry struct {
	file *os.File
	Data *[]byte
}

// Close unmaps the entry's data and closes its file.
func (entry *ResourceEntry) Close() error {
	unmapErr := releaseMmap(entry.Data)
	entry.Data = nil
	if entry.file != nil {
		if closeErr := entry.file.Close(); closeErr != nil {
			return closeErr
		}
		entry.file = nil
	}
	return unmapErr
}

type Resources map[string]ResourceEntry

func (rsrcs *Resources) Cleanup() {
	for name, rsrc := range *rsrcs {
		if err := rsrc.Close(); err != nil {
			log.Printf("Error releasing %s: %v", name, err)
		}
		delete(*rsrcs, name)
	}
}

// GetResourceEntries
// Returns the embedding files named by `params`, flagged as required or
// model resources.
func GetResourceEntries(params types.Parameters) ResourceEntryDefs {
	return ResourceEntryDefs{
		GetVocabFileName(params):     RESOURCE_REQUIRED,
		GetEmbeddingFileName(params): RESOURCE_REQUIRED,
		GetFastTextFileName(params):  RESOURCE_MODEL,
	}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// Fetch
// Given a base URI and a resource name, determines if the resource is on
// S3, on a remote HTTP server, or local. Local resources are opened as file
// handles; remote resources are streamed.
func Fetch(uri string, rsrc string) (io.ReadCloser, error) {
	if isS3Uri(uri) {
		return FetchS3(uri, rsrc)
	} else if isValidUrl(uri) {
		return FetchHTTP(uri, rsrc, authToken())
	}
	handle, fileErr := os.Open(filepath.Join(uri, rsrc))
	if fileErr != nil {
		return nil, fmt.Errorf("error opening %s/%s: %w", uri, rsrc,
			fileErr)
	}
	return handle, nil
}

// Size
// Given a base URI and a resource name, determine the size of the resource.
func Size(uri string, rsrc string) (uint, error) {
	if isS3Uri(uri) {
		return SizeS3(uri, rsrc)
	} else if isValidUrl(uri) {
		return SizeHTTP(uri, rsrc, authToken())
	}
	fsz, err := os.Stat(filepath.Join(uri, rsrc))
	if err != nil {
		return 0, err
	}
	return uint(fsz.Size()), nil
}

// AddEntry
// Add a resource to the Resources map, opening it as a mmap.Map.
func (rsrcs *Resources) AddEntry(name string, file *os.File) error {
	fileMmap, mmapErr := readMmap(file)
	if mmapErr != nil {
		return errors.New(
			fmt.Sprintf("error trying to mmap file: %s",
				mmapErr))
	}
	(*rsrcs)[name] = ResourceEntry{file, fileMmap}
	return nil
}

// download copies `uri`/`file` into `targetPath`, reporting progress.
func download(uri string, file string, targetPath string,
	rsrcSize uint) (*os.File, error) {
	rsrcReader, rsrcErr := Fetch(uri, file)
	if rsrcErr != nil {
		return nil, errors.New(fmt.Sprintf(
			"cannot retrieve `%s` from `%s`: %s", file, uri, rsrcErr))
	}
	defer rsrcReader.Close()
	rsrcFile, rsrcFileErr := os.OpenFile(targetPath,
		os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if rsrcFileErr != nil {
		return nil, errors.New(fmt.Sprintf(
			"error opening '%s' for write: %s", targetPath, rsrcFileErr))
	}
	counter := &WriteCounter{
		Last: time.Now(),
		Path: fmt.Sprintf("%s/%s", uri, file),
		Size: uint64(rsrcSize),
	}
	bytesDownloaded, ioErr := io.Copy(rsrcFile,
		io.TeeReader(rsrcReader, counter))
	if ioErr != nil {
		rsrcFile.Close()
		return nil, errors.New(fmt.Sprintf("error downloading '%s': %s",
			file, ioErr))
	}
	if _, seekErr := rsrcFile.Seek(0, 0); seekErr != nil {
		rsrcFile.Close()
		return nil, seekErr
	}
	log.Printf("Downloaded %s/%s... %s completed.", uri, file,
		humanize.Bytes(uint64(bytesDownloaded)))
	return rsrcFile, nil
}

// ResolveResources resolves every resource in `defs` at or below `rsrcLvl`
// from `uri` into `dir`. Files already in `dir` with the right size are
// reused, others are fetched. Missing optional or model resources are
// skipped; a missing required resource is an error.
func ResolveResources(uri string, dir string, defs ResourceEntryDefs,
	rsrcLvl ResourceFlag) (*Resources, error) {
	foundResources := make(Resources, 0)
	if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
		return &foundResources, mkdirErr
	}

	files := make([]string, 0, len(defs))
	for file := range defs {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		flag := defs[file]
		if flag > rsrcLvl {
			continue
		}
		log.Printf("Resolving %s/%s... ", uri, file)
		targetPath := filepath.Join(dir, file)
		var rsrcFile *os.File
		rsrcSize, rsrcSizeErr := Size(uri, file)
		if rsrcSizeErr != nil {
			if flag&RESOURCE_REQUIRED != 0 {
				log.Printf("%s/%s not found, required!", uri, file)
				foundResources.Cleanup()
				return &foundResources, errors.New(fmt.Sprintf(
					"cannot retrieve required `%s` from `%s`: %s",
					file, uri, rsrcSizeErr))
			}
			log.Printf("Resolved %s/%s... not there, not required.",
				uri, file)
			continue
		} else if targetStat, targetStatErr := os.Stat(
			targetPath); targetStatErr == nil &&
			uint(targetStat.Size()) == rsrcSize {
			log.Printf("Skipping %s/%s... already exists, "+
				"and of the correct size.", uri, file)
			openFile, skipFileErr := os.Open(targetPath)
			if skipFileErr != nil {
				foundResources.Cleanup()
				return &foundResources, errors.New(fmt.Sprintf(
					"error opening '%s': %s", file, skipFileErr))
			}
			rsrcFile = openFile
		} else {
			downloaded, downloadErr := download(uri, file, targetPath,
				rsrcSize)
			if downloadErr != nil {
				foundResources.Cleanup()
				return &foundResources, downloadErr
			}
			rsrcFile = downloaded
		}
		if mmapErr := foundResources.AddEntry(file, rsrcFile); mmapErr != nil {
			rsrcFile.Close()
			foundResources.Cleanup()
			return &foundResources, mmapErr
		}
	}
	return &foundResources, nil
}

// ResolveEmbeddingResources
// Makes the embedding files named by `params` available under `dir`,
// fetching them from `params.EmbeddingPath` when needed. Returns parameters
// re-rooted at `dir`, so the loaders in this package read the local copies,
// along with the mapped resources.
func ResolveEmbeddingResources(params types.Parameters, dir string,
	rsrcLvl ResourceFlag) (*types.Parameters, *Resources, error) {
	localParams := params
	localParams.EmbeddingPath = dir
	rsrcs, err := ResolveResources(GetEmbeddingDir(params),
		GetEmbeddingDir(localParams), GetResourceEntries(params), rsrcLvl)
	if err != nil {
		return nil, nil, err
	}
	return &localParams, rsrcs, nil
}
