//go:build !tinygo

// Command mkflash builds a littlefs flash image for the host simulator: it
// formats the image and imports a host directory tree, by default under
// /sd so the console and the file-list control code see it as the card.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZzubbuzZ/Smoothie/hal"

	"tinygo.org/x/tinyfs/littlefs"
)

const (
	defaultFlashPath = "smoothie.flash"
	defaultFlashSize = 2 * 1024 * 1024
)

func main() {
	var srcDir string
	var outPath string
	var dstDir string
	var flashSize int64
	flag.StringVar(&srcDir, "src", "", "Source directory to import.")
	flag.StringVar(&outPath, "out", defaultFlashPath, "Output flash image path.")
	flag.StringVar(&dstDir, "dst", "/sd", "Directory inside the image to import into.")
	flag.Int64Var(&flashSize, "size", defaultFlashSize, "Flash image size (bytes).")
	flag.Parse()

	if srcDir == "" {
		fmt.Fprintln(os.Stderr, "error: -src is required")
		os.Exit(2)
	}
	if !strings.HasPrefix(dstDir, "/") {
		fmt.Fprintln(os.Stderr, "error: -dst must be absolute")
		os.Exit(2)
	}

	if err := run(srcDir, outPath, path.Clean(dstDir), flashSize); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(srcDir, outPath, dstDir string, flashSize int64) error {
	srcDir = filepath.Clean(srcDir)
	st, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("stat src %q: %w", srcDir, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("src %q is not a directory", srcDir)
	}

	// Start from a blank image so the format below defines its content.
	if err := os.Remove(outPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale image %q: %w", outPath, err)
	}
	flash, err := hal.NewFileFlash(outPath, flashSize)
	if err != nil {
		return err
	}

	lfs := littlefs.New(flash)
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 512,
		BlockCycles:   100,
	})
	if err := lfs.Format(); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := lfs.Mount(); err != nil {
		return fmt.Errorf("mount: %w", err)
	}
	defer func() { _ = lfs.Unmount() }()

	if err := mkdirAll(lfs, dstDir); err != nil {
		return err
	}

	var dirs, files []string
	walkErr := filepath.WalkDir(srcDir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == srcDir || entry.Type()&os.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		imagePath := path.Join(dstDir, filepath.ToSlash(rel))
		if entry.IsDir() {
			dirs = append(dirs, imagePath)
			return nil
		}
		if entry.Type().IsRegular() {
			files = append(files, imagePath)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("walk src %q: %w", srcDir, walkErr)
	}

	sort.Strings(dirs)
	sort.Strings(files)

	for _, d := range dirs {
		if err := lfs.Mkdir(d, 0o777); err != nil {
			return fmt.Errorf("mkdir %q: %w", d, err)
		}
	}
	for _, f := range files {
		hostPath := filepath.Join(srcDir, filepath.FromSlash(strings.TrimPrefix(f, dstDir+"/")))
		if err := copyFile(lfs, hostPath, f); err != nil {
			return err
		}
	}
	return nil
}

func mkdirAll(lfs *littlefs.LFS, dir string) error {
	if dir == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(dir, "/"), "/")
	cur := ""
	for _, part := range parts {
		cur += "/" + part
		if err := lfs.Mkdir(cur, 0o777); err != nil && !errors.Is(err, os.ErrExist) {
			// littlefs reports an existing directory through its own
			// error value; a stat tells the two cases apart.
			if _, serr := lfs.Stat(cur); serr != nil {
				return fmt.Errorf("mkdir %q: %w", cur, err)
			}
		}
	}
	return nil
}

func copyFile(lfs *littlefs.LFS, hostPath, imagePath string) error {
	in, err := os.Open(hostPath)
	if err != nil {
		return fmt.Errorf("open %q: %w", hostPath, err)
	}
	defer func() { _ = in.Close() }()

	out, err := lfs.OpenFile(imagePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("create %q: %w", imagePath, err)
	}

	buf := make([]byte, 32*1024)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				_ = out.Close()
				return fmt.Errorf("write %q: %w", imagePath, werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("read %q: %w", hostPath, err)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %q: %w", imagePath, err)
	}
	return nil
}
