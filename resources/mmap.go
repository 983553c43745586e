//go:build !wasip1 && !js

package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

func readMmap(file *os.File) (*[]byte, error) {
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	mmapBytes := (*[]byte)(&fileMmap)
	return mmapBytes, mmapErr
}

func releaseMmap(data *[]byte) error {
	if data == nil || len(*data) == 0 {
		return nil
	}
	fileMmap := mmap.MMap(*data)
	return fileMmap.Unmap()
}
