package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrCorruptVectors is returned when a serialized vector table does not
// match its header.
var ErrCorruptVectors = errors.New("corrupt vector table")

// Dim returns the width of the table, or 0 if it is empty.
func (vectors Vectors) Dim() int {
	if len(vectors) == 0 {
		return 0
	}
	return len(vectors[0])
}

// ToBin serializes the table as little-endian `uint32 rows`, `uint32 dim`,
// followed by rows*dim float32 values. Every row must have the same width.
func (vectors Vectors) ToBin() (*[]byte, error) {
	dim := vectors.Dim()
	if uint64(len(vectors)) > math.MaxUint32 || uint64(dim) > math.MaxUint32 {
		return nil, fmt.Errorf("integer overflow: table of %d x %d "+
			"does not fit an unsigned 32-bit header", len(vectors), dim)
	}
	buf := bytes.NewBuffer(make([]byte, 0,
		VectorHeaderSize+len(vectors)*dim*FloatSize))
	header := [2]uint32{uint32(len(vectors)), uint32(dim)}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	for idx := range vectors {
		if len(vectors[idx]) != dim {
			return nil, fmt.Errorf("row %d has %d values, expected %d",
				idx, len(vectors[idx]), dim)
		}
		if err := binary.Write(buf, binary.LittleEndian,
			[]float32(vectors[idx])); err != nil {
			return nil, err
		}
	}
	byt := buf.Bytes()
	return &byt, nil
}

// VectorsFromBin decodes a table written by ToBin. The rows are copied out
// of bin, so bin may be unmapped afterwards.
func VectorsFromBin(bin *[]byte) (Vectors, error) {
	if bin == nil || len(*bin) < VectorHeaderSize {
		return nil, fmt.Errorf("%w: missing header", ErrCorruptVectors)
	}
	data := *bin
	rows := int(binary.LittleEndian.Uint32(data[0:4]))
	dim := int(binary.LittleEndian.Uint32(data[4:8]))
	expected := VectorHeaderSize + rows*dim*FloatSize
	if len(data) != expected {
		return nil, fmt.Errorf("%w: header declares %d x %d (%d bytes), "+
			"found %d bytes", ErrCorruptVectors, rows, dim, expected,
			len(data))
	}
	vectors := make(Vectors, rows)
	offset := VectorHeaderSize
	for row := 0; row < rows; row++ {
		vector := make(Vector, dim)
		for col := 0; col < dim; col++ {
			bits := binary.LittleEndian.Uint32(data[offset : offset+FloatSize])
			vector[col] = math.Float32frombits(bits)
			offset += FloatSize
		}
		vectors[row] = vector
	}
	return vectors, nil
}
