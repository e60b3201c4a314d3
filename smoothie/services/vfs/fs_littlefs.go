package vfs

import (
	"errors"
	"fmt"
	"os"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

// NewFlashFS mounts littlefs over a block device, formatting a blank one on
// first boot.
func NewFlashFS(bd tinyfs.BlockDevice) (FS, error) {
	lfs := littlefs.New(bd)
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 512,
		BlockCycles:   100,
	})
	if err := lfs.Mount(); err != nil {
		if err := lfs.Format(); err != nil {
			return nil, fmt.Errorf("flash format: %w", err)
		}
		if err := lfs.Mount(); err != nil {
			return nil, fmt.Errorf("flash mount: %w", err)
		}
	}
	return &tinyfsFS{fs: lfs, mapErr: mapLFSErr}, nil
}

func mapLFSErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("flash %s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("flash %s: %v", op, err)
}
