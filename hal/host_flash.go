//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostFlashDefaultPath      = "smoothie.flash"
	hostFlashDefaultSizeBytes = 2 * 1024 * 1024
	hostFlashWriteBlockBytes  = 256
	hostFlashEraseBlockBytes  = 4096
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// hostFlash is a file-backed flash image with NOR semantics: erase fills a
// block with 0xFF and writes may only clear bits.
type hostFlash struct {
	mu      sync.Mutex
	f       *os.File
	size    int64
	erased  [hostFlashEraseBlockBytes]byte
	scratch []byte
}

func newHostFlash() *hostFlash {
	path := os.Getenv("SMOOTHIE_FLASH_PATH")
	if path == "" {
		path = hostFlashDefaultPath
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return &hostFlash{f: nil}
	}

	size := int64(hostFlashDefaultSizeBytes)
	if st, err := f.Stat(); err == nil && st.Size() > 0 {
		size = st.Size()
	} else {
		if err := f.Truncate(size); err != nil {
			_ = f.Close()
			return &hostFlash{f: nil}
		}
	}

	hf := &hostFlash{f: f, size: size}
	for i := range hf.erased {
		hf.erased[i] = 0xFF
	}
	return hf
}

// NewFileFlash opens a flash image file for host tools. A missing or empty
// file is created at the given size and fully erased.
func NewFileFlash(path string, size int64) (Flash, error) {
	if size <= 0 || size%hostFlashEraseBlockBytes != 0 {
		return nil, fmt.Errorf("flash image size %d not a multiple of %d", size, hostFlashEraseBlockBytes)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash image %q: %w", path, err)
	}

	hf := &hostFlash{f: f, size: size}
	for i := range hf.erased {
		hf.erased[i] = 0xFF
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash image %q: %w", path, err)
	}
	if st.Size() != size {
		if err := f.Truncate(size); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("truncate flash image %q: %w", path, err)
		}
		if err := hf.EraseBlocks(0, size/hostFlashEraseBlockBytes); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return hf, nil
}

func (f *hostFlash) Size() int64           { return f.size }
func (f *hostFlash) WriteBlockSize() int64 { return hostFlashWriteBlockBytes }
func (f *hostFlash) EraseBlockSize() int64 { return hostFlashEraseBlockBytes }

func (f *hostFlash) ReadAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off < 0 || off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if max := f.size - off; int64(len(p)) > max {
		p = p[:max]
	}
	return f.f.ReadAt(p, off)
}

func (f *hostFlash) WriteAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off < 0 || off >= f.size {
		return 0, fmt.Errorf("flash write at %d: %w", off, os.ErrInvalid)
	}
	if max := f.size - off; int64(len(p)) > max {
		p = p[:max]
	}

	if cap(f.scratch) < len(p) {
		f.scratch = make([]byte, len(p))
	}
	buf := f.scratch[:len(p)]
	if _, err := f.f.ReadAt(buf, off); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if buf[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return f.f.WriteAt(p, off)
}

func (f *hostFlash) EraseBlocks(start, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return ErrNotImplemented
	}
	off := start * hostFlashEraseBlockBytes
	end := off + n*hostFlashEraseBlockBytes
	if off < 0 || end > f.size {
		return fmt.Errorf("flash erase blocks %d+%d: %w", start, n, os.ErrInvalid)
	}
	for ; off < end; off += hostFlashEraseBlockBytes {
		if _, err := f.f.WriteAt(f.erased[:], off); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
	}
	return nil
}
