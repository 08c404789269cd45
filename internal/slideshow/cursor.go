package slideshow

import (
	"errors"
	"image"
)

// ErrNoImages is returned when a cursor is built over an empty image set.
var ErrNoImages = errors.New("slideshow needs at least one image")

// Cursor is a position within an ordered, immutable set of images. It is not safe
// for concurrent use; the scheduler worker is its only writer.
type Cursor struct {
	images []image.Image
	pos    int
}

// NewCursor creates a Cursor positioned on the first image.
func NewCursor(images []image.Image) (*Cursor, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return &Cursor{
		images: append([]image.Image(nil), images...),
	}, nil
}

// Advance moves to the next image, wrapping to the first after the last one, and
// returns the new current image.
func (c *Cursor) Advance() image.Image {
	if c.pos+1 == len(c.images) {
		c.pos = 0
	} else {
		c.pos++
	}
	return c.images[c.pos]
}

func (c *Cursor) Current() image.Image {
	return c.images[c.pos]
}

func (c *Cursor) Index() int {
	return c.pos
}

func (c *Cursor) Len() int {
	return len(c.images)
}
