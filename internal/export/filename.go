package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFreeFileName is returned when every numbered variant of a file name
// is already taken.
var ErrNoFreeFileName = errors.New("no free file name")

const maxFileNameSuffix = 1000

var fileNameReplacer = strings.NewReplacer(
	`\`, "_", "/", "_", "<", "_", ">", "_", "?", "_",
	":", "_", "*", "_", "|", "_", `"`, "_", "'", "_",
)

// SanitizeFileName replaces characters that are not allowed in file names
// on common file systems.
func SanitizeFileName(title string) string {
	return fileNameReplacer.Replace(title)
}

// FileName returns a path in dir for an export of the calculation titled
// title with extension ext (without the dot). When the plain name exists,
// " (n)" is appended with the lowest free n.
func FileName(dir, title, ext string) (string, error) {
	base := SanitizeFileName(title)
	path := filepath.Join(dir, base+"."+ext)
	if free, err := isFree(path); err != nil || free {
		return path, err
	}
	for n := 1; n < maxFileNameSuffix; n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s (%d).%s", base, n, ext))
		if free, err := isFree(path); err != nil || free {
			return path, err
		}
	}
	return "", fmt.Errorf("%w: %s.%s in %s", ErrNoFreeFileName, base, ext, dir)
}

func isFree(path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return false, nil
}
