package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyDirectory is returned when no file in the folder has a supported extension.
	ErrEmptyDirectory = errors.New("no image files found")
	// ErrNoReadableImages is returned when image files exist but none of them could be decoded.
	ErrNoReadableImages = errors.New("no readable images found")
)

// LoadResult contains the decoded images of a folder in slideshow order.
type LoadResult struct {
	Dir     string
	Paths   []string
	Images  []image.Image
	Skipped *multierror.Error // one entry per file that failed to decode
}

// SkippedCount returns the number of files left out of the result.
func (r *LoadResult) SkippedCount() int {
	if r.Skipped == nil {
		return 0
	}
	return len(r.Skipped.Errors)
}

// Load scans dir and decodes every matching file. It returns ErrEmptyDirectory or
// ErrNoReadableImages instead of an empty result.
func (s *ImageScanner) Load(ctx context.Context, dir string) (*LoadResult, error) {
	paths, err := s.ScanDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrEmptyDirectory, dir)
	}

	result, err := s.LoadImages(ctx, paths)
	if err != nil {
		return nil, err
	}
	result.Dir = dir

	if len(result.Images) == 0 {
		return nil, fmt.Errorf("%w in %q: %d of %d files failed to decode: %w",
			ErrNoReadableImages, dir, result.SkippedCount(), len(paths), result.Skipped.ErrorOrNil())
	}

	return result, nil
}

// LoadImages decodes paths with up to DecodeWorkers files in flight. The order of
// the returned images follows paths; files that fail to decode are logged and skipped.
func (s *ImageScanner) LoadImages(ctx context.Context, paths []string) (*LoadResult, error) {
	decoded := make([]image.Image, len(paths))
	failures := make([]error, len(paths))

	workers := s.config.DecodeWorkers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := DecodeFile(path)
			if err != nil {
				failures[i] = err
				return nil
			}
			decoded[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	result := &LoadResult{}
	for i, path := range paths {
		if failures[i] != nil {
			logrus.WithField("path", path).WithError(failures[i]).Warn("skipping unreadable image")
			result.Skipped = multierror.Append(result.Skipped, failures[i])
			continue
		}
		result.Paths = append(result.Paths, path)
		result.Images = append(result.Images, decoded[i])
	}

	logrus.WithFields(logrus.Fields{
		"loaded":  len(result.Images),
		"skipped": result.SkippedCount(),
	}).Info("images loaded")

	return result, nil
}

// DecodeFile reads a single PNG, JPEG, GIF or BMP file.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return img, nil
}
