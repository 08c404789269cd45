package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/Akaiko1/laptop-slideshow/internal/config"
)

// SupportedExt lists the file name suffixes accepted by the scanner. Matching is case-sensitive.
var SupportedExt = mapset.NewSet(
	".png", ".jpg", ".bmp", ".gif",
)

// ImageSource defines the interface for producing the slideshow images of a folder.
type ImageSource interface {
	Load(ctx context.Context, dir string) (*LoadResult, error)
}

// ImageScanner implements ImageSource for a single, non-recursive folder.
type ImageScanner struct {
	config *config.Config
}

// NewImageScanner creates a new ImageScanner with the given configuration.
func NewImageScanner(cfg *config.Config) *ImageScanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &ImageScanner{
		config: cfg,
	}
}

// ScanDirectory lists the image files directly inside dir. Subdirectories are not
// descended into, and files are sorted by name when SortFiles is set.
func (s *ImageScanner) ScanDirectory(ctx context.Context, dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", dir)
	}

	entries, err := readDirUnsorted(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !entry.Type().IsRegular() && !isSymlinkToFile(dir, entry) {
			continue
		}
		if !HasImageExt(entry.Name()) {
			logrus.WithField("name", entry.Name()).Debug("ignoring file with unsupported extension")
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	if s.config.SortFiles {
		sort.Strings(paths)
	}

	return paths, nil
}

// HasImageExt reports whether name ends in one of SupportedExt.
func HasImageExt(name string) bool {
	return SupportedExt.Contains(filepath.Ext(name))
}

func isSymlinkToFile(dir string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// readDirUnsorted returns the entries of dir in filesystem enumeration order.
func readDirUnsorted(dir string) ([]os.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ReadDir(-1)
}
