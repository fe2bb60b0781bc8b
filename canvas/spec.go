// Package canvas fits arbitrary images onto a fixed-size canvas.
//
// The source is scaled uniformly so that its height matches the canvas
// height. Horizontal overflow is center-cropped, horizontal underflow is
// center-padded with a fill color. The package performs no I/O and keeps
// no state between calls, so Fit is safe for concurrent use.
package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	DefaultWidth  = 1080
	DefaultHeight = 1920
)

var DefaultFill = color.RGBA{A: 0xFF}

// ErrInvalidDimension is wrapped by every DimensionError.
var ErrInvalidDimension = errors.New("invalid dimension")

// DimensionError reports which size made a fit impossible.
type DimensionError struct {
	Which  string // "source", "target" or "scaled"
	Width  int
	Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("invalid %s dimension %dx%d", e.Which, e.Width, e.Height)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}

// Spec is the fixed output resolution and the color of the padding bars.
type Spec struct {
	Width  int
	Height int
	// Fill defaults to opaque black when nil.
	Fill color.Color
}

func DefaultSpec() Spec {
	return Spec{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Fill:   DefaultFill,
	}
}

func (s Spec) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return &DimensionError{Which: "target", Width: s.Width, Height: s.Height}
	}
	return nil
}

func (s Spec) fill() color.Color {
	if s.Fill == nil {
		return DefaultFill
	}
	return s.Fill
}

// ParseColor reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA (the leading '#' is
// optional) as a non-premultiplied color. black, white and transparent
// are accepted by name.
func ParseColor(s string) (color.NRGBA, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black":
		return color.NRGBA{A: 0xFF}, nil
	case "white":
		return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, nil
	case "transparent":
		return color.NRGBA{}, nil
	}

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var width int
	switch len(hex) {
	case 3, 4:
		width = 1
	case 6, 8:
		width = 2
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	ch := [4]uint8{3: 0xFF}
	for i := range len(hex) / width {
		v, err := strconv.ParseUint(hex[i*width:(i+1)*width], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("could not read color %q: %w", s, err)
		}
		if width == 1 {
			v |= v << 4
		}
		ch[i] = uint8(v)
	}

	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// FormatColor is the inverse of ParseColor for the #RRGGBBAA form.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
