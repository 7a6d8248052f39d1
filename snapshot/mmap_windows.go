//go:build windows

package snapshot

import (
	"fmt"
	"os"

	"golang.org/x/exp/mmap"
)

// Windows has no simple writable-mmap primitive in the libraries this repo
// depends on; the read path still memory-maps via golang.org/x/exp/mmap,
// and the write path falls back to a buffered write (still whole-content,
// still non-atomic-path, matching spec §4.7).
func mmapReadOnly(f *os.File, size int) ([]byte, func() error, error) {
	r, err := mmap.Open(f.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: mmap %q: %w", f.Name(), err)
	}
	data := make([]byte, size)
	if _, err := r.ReadAt(data, 0); err != nil {
		r.Close()
		return nil, nil, fmt.Errorf("snapshot: read %q: %w", f.Name(), err)
	}
	return data, r.Close, nil
}

func mmapWriteAndClose(f *os.File, data []byte) error {
	if _, err := f.WriteAt(data, 0); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", f.Name(), err)
	}
	return f.Sync()
}
