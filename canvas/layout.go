package canvas

import (
	"image"
	"math"
)

type Mode int

const (
	Exact Mode = iota
	Pad
	Crop
)

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case Pad:
		return "pad"
	case Crop:
		return "crop"
	}
	return "unknown"
}

// Layout is the geometry of a single fit, computed before any pixel is
// touched.
type Layout struct {
	Source image.Point
	Target image.Point
	// Scale is Target.Y / Source.Y.
	Scale float64
	// Scaled is the size of the uniformly scaled source. Scaled.Y always
	// equals Target.Y.
	Scaled image.Point
	// Margin is Target.X - Scaled.X: negative when cropping, positive when
	// padding.
	Margin int
	// Offset is where the left edge of the scaled source lands on the
	// canvas. It is never positive when cropping.
	Offset int
}

// NewLayout validates the sizes and computes where a source of the given
// size ends up on a canvas described by spec.
func NewLayout(src image.Point, spec Spec) (Layout, error) {
	if src.X < 1 || src.Y < 1 {
		return Layout{}, &DimensionError{Which: "source", Width: src.X, Height: src.Y}
	}
	if err := spec.Validate(); err != nil {
		return Layout{}, err
	}

	// Multiply before dividing so that exact quotients stay exact.
	w := math.Round(float64(src.X) * float64(spec.Height) / float64(src.Y))
	if w < 1 {
		return Layout{}, &DimensionError{Which: "scaled", Width: 0, Height: spec.Height}
	}
	// float64(math.MaxInt) rounds up to a power of two that int cannot hold.
	if w >= float64(math.MaxInt) {
		return Layout{}, &DimensionError{Which: "scaled", Width: math.MaxInt, Height: spec.Height}
	}

	l := Layout{
		Source: src,
		Target: image.Pt(spec.Width, spec.Height),
		Scale:  float64(spec.Height) / float64(src.Y),
		Scaled: image.Pt(int(w), spec.Height),
	}
	l.Margin = l.Target.X - l.Scaled.X
	l.Offset = centerOffset(l.Margin)
	return l, nil
}

// centerOffset turns a signed margin into the position of the scaled
// image's left edge. Both arms floor the magnitude, so the odd pixel is
// always on the right.
func centerOffset(margin int) int {
	if margin < 0 {
		return -(-margin / 2)
	}
	return margin / 2
}

func (l Layout) Mode() Mode {
	switch {
	case l.Margin < 0:
		return Crop
	case l.Margin > 0:
		return Pad
	}
	return Exact
}

// CropX is the first scaled column kept on the canvas.
func (l Layout) CropX() int {
	if l.Offset < 0 {
		return -l.Offset
	}
	return 0
}

// Margins returns the columns discarded (Crop) or filled (Pad) on each
// side.
func (l Layout) Margins() (left, right int) {
	if l.Margin < 0 {
		left = -l.Offset
		return left, -l.Margin - left
	}
	return l.Offset, l.Margin - l.Offset
}

// Rect is the scaled source's rectangle in canvas coordinates. It extends
// past the canvas when cropping.
func (l Layout) Rect() image.Rectangle {
	return image.Rect(l.Offset, 0, l.Offset+l.Scaled.X, l.Scaled.Y)
}
