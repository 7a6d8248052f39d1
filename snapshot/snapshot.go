// Package snapshot is the file-abstraction boundary described in spec §4.3:
// it offers a read-only memory-map of an existing file and a write-sized
// memory-map for producing a new one, and nothing else. Callers (the hnsw
// package) own the byte layout; this package only owns getting bytes to and
// from disk.
package snapshot

import (
	"fmt"
	"os"
)

// ReadFile memory-maps path read-only and returns its full contents plus a
// closer that must be called once the caller is done with the returned
// slice (the slice is only valid until Close runs).
func ReadFile(path string) (data []byte, closeFn func() error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: open %q: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: stat %q: %w", path, err)
	}
	if fi.Size() == 0 {
		return nil, func() error { return nil }, nil
	}

	return mmapReadOnly(f, int(fi.Size()))
}

// WriteFile creates (or truncates) path to len(data), memory-maps it
// writable, copies data into the mapping, and tears the mapping down. The
// teardown flushes the write. This is whole-content atomic but not
// atomic-path: a reader opening path mid-write can observe a partial file
// (spec §4.7 calls this out as a known, accepted gap).
func WriteFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("snapshot: create %q: %w", path, err)
	}
	defer f.Close()

	if err := f.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("snapshot: truncate %q: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}

	return mmapWriteAndClose(f, data)
}
