//go:build !windows

package snapshot

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func mmapReadOnly(f *os.File, size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("snapshot: mmap %q: %w", f.Name(), err)
	}
	closeFn := func() error { return unix.Munmap(data) }
	return data, closeFn, nil
}

func mmapWriteAndClose(f *os.File, data []byte) error {
	mapped, err := unix.Mmap(int(f.Fd()), 0, len(data), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("snapshot: mmap %q for write: %w", f.Name(), err)
	}
	copy(mapped, data)
	// Unmapping flushes the dirty pages back to the file.
	return unix.Munmap(mapped)
}
