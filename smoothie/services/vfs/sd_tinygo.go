//go:build tinygo && baremetal && (rp2040 || rp2350)

package vfs

import (
	"errors"
	"fmt"

	"machine"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

// initSD brings up the SD card on SPI0 (SCK GP18, SDO GP19, SDI GP16,
// CS GP17) and mounts its FAT filesystem. Returns nil when no usable card
// is present; removable media is never auto-formatted.
func initSD() FS {
	sd := sdcard.New(machine.SPI0, machine.GP18, machine.GP19, machine.GP16, machine.GP17)
	if err := sd.Configure(); err != nil {
		return nil
	}

	fat := fatfs.New(&sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		return nil
	}

	return &tinyfsFS{fs: fat, mapErr: mapFatErr}
}

func mapFatErr(op string, err error) error {
	if err == nil {
		return nil
	}

	var fr fatfs.FileResult
	if errors.As(err, &fr) {
		switch fr {
		case fatfs.FileResultNoFile, fatfs.FileResultNoPath:
			return fmt.Errorf("sd %s: %w", op, ErrNotFound)
		case fatfs.FileResultExist:
			return fmt.Errorf("sd %s: %w", op, ErrExists)
		case fatfs.FileResultNoFilesystem, fatfs.FileResultInvalidName, fatfs.FileResultInvalidParameter:
			return fmt.Errorf("sd %s: %w", op, ErrInvalid)
		case fatfs.FileResultNotEnoughCore:
			return fmt.Errorf("sd %s: %w", op, ErrNoSpace)
		default:
			return fmt.Errorf("sd %s: %v", op, err)
		}
	}
	return fmt.Errorf("sd %s: %v", op, err)
}
