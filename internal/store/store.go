// Package store reads and writes inventory files: the inventory name on the
// first line, then a description line and a quantity line per item.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// MaxLineSize is the longest line, in bytes, that Load accepts.
const MaxLineSize = 1 << 20

// Save writes inv to directory/fileName, creating directory if needed, and
// returns the written path. The file is replaced whole: lines go to a temp
// file in the same directory which is then renamed over the target, so a
// failed save leaves any previous file in place. Failures wrap
// types.ErrIOFailure; the in-memory inventory is never modified.
func Save(inv *types.Inventory, directory, fileName string) (string, error) {
	if directory == "" {
		directory = "."
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("%w: create directory %s: %w", types.ErrIOFailure, directory, err)
	}

	path := filepath.Join(directory, fileName)
	if err := writeLines(path, inv.Serialize()); err != nil {
		return "", fmt.Errorf("%w: save %s: %w", types.ErrIOFailure, path, err)
	}

	inv.Note(fmt.Sprintf("Inventory saved to '%s'.", path))
	return path, nil
}

// SaveFile is Save with the directory and file name taken from path.
func SaveFile(inv *types.Inventory, path string) error {
	_, err := Save(inv, filepath.Dir(path), filepath.Base(path))
	return err
}

// Load reads the inventory at path. Missing or unreadable files wrap
// types.ErrIOFailure; format violations, including lines longer than
// MaxLineSize, wrap types.ErrMalformedRecord and no inventory is returned.
func Load(path string, opts ...types.Option) (*types.Inventory, error) {
	lines, err := readLines(path)
	if errors.Is(err, bufio.ErrTooLong) {
		return nil, fmt.Errorf("%w: load %s: %w", types.ErrMalformedRecord, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %w", types.ErrIOFailure, path, err)
	}

	inv, err := types.Decode(lines, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	inv.Note(fmt.Sprintf("'%s' inventory loaded from '%s'.", inv.Name(), path))
	return inv, nil
}

// Exists reports whether an inventory file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// readLines returns every line of path. Trailing carriage returns are
// dropped so files edited on Windows load unchanged.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning: %w", err)
	}
	return lines, nil
}

// writeLines replaces path with lines, one per line, using the temp-file,
// fsync, rename pattern.
func writeLines(path string, lines []string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".inventory-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fail("writing line", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
