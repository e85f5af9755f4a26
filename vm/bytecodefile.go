package vm

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// lmxMagic is the 5-byte header original_source/vm.c's vm_save/vm_load
// write and check before trusting the rest of the file.
var lmxMagic = [5]byte{'L', 'I', 'M', 'E', '!'}

// SaveImage persists an Image in the .lmx format: magic, then code_size
// and data_size as fixed 32-bit little-endian words (the original used
// native size_t here, which breaks across 32/64-bit builds -- this is
// the one deliberate portability fix over the original layout), then the
// code and data bytes.
func SaveImage(path string, img Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteImage(f, img)
}

func WriteImage(w io.Writer, img Image) error {
	if _, err := w.Write(lmxMagic[:]); err != nil {
		return err
	}
	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:4], uint32(len(img.Code)))
	binary.LittleEndian.PutUint32(sizes[4:8], uint32(len(img.Data)))
	if _, err := w.Write(sizes[:]); err != nil {
		return err
	}
	if _, err := w.Write(img.Code); err != nil {
		return err
	}
	if _, err := w.Write(img.Data); err != nil {
		return err
	}
	return nil
}

func LoadImage(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()
	return ReadImage(f)
}

func ReadImage(r io.Reader) (Image, error) {
	var header [13]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Image{}, fmt.Errorf("%w: %v", errBadBytecodeFile, err)
	}
	if [5]byte(header[0:5]) != lmxMagic {
		return Image{}, fmt.Errorf("%w: bad magic", errBadBytecodeFile)
	}
	codeSize := binary.LittleEndian.Uint32(header[5:9])
	dataSize := binary.LittleEndian.Uint32(header[9:13])

	code := make([]byte, codeSize)
	if _, err := io.ReadFull(r, code); err != nil {
		return Image{}, fmt.Errorf("%w: short code segment: %v", errBadBytecodeFile, err)
	}
	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return Image{}, fmt.Errorf("%w: short data segment: %v", errBadBytecodeFile, err)
	}
	return Image{Code: code, Data: data}, nil
}
