package canvas

import (
	"image"
	"maps"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Fitter fits images with a configurable resampling kernel. The zero value
// uses draw.CatmullRom.
type Fitter struct {
	Interpolator draw.Interpolator
}

var defaultFitter Fitter

var interpolators = map[string]draw.Interpolator{
	"nearest":         draw.NearestNeighbor,
	"approx-bilinear": draw.ApproxBiLinear,
	"bilinear":        draw.BiLinear,
	"catmullrom":      draw.CatmullRom,
}

// LookupInterpolator returns the resampling kernel registered under name.
func LookupInterpolator(name string) (draw.Interpolator, bool) {
	interp, ok := interpolators[name]
	return interp, ok
}

// InterpolatorNames lists the kernel names accepted by LookupInterpolator,
// sorted.
func InterpolatorNames() []string {
	return slices.Sorted(maps.Keys(interpolators))
}

// Fit fits src onto a new canvas of spec.Width x spec.Height using
// Catmull-Rom resampling.
func Fit(src image.Image, spec Spec) (*image.RGBA, error) {
	return defaultFitter.Fit(src, spec)
}

// Fit returns a new image of exactly spec.Width x spec.Height. src is
// never modified. Invalid sizes fail with an error wrapping
// ErrInvalidDimension and no canvas is allocated.
func (f *Fitter) Fit(src image.Image, spec Spec) (*image.RGBA, error) {
	dst, _, err := f.FitLayout(src, spec)
	return dst, err
}

// FitLayout is Fit that also reports the geometry it applied.
func (f *Fitter) FitLayout(src image.Image, spec Spec) (*image.RGBA, Layout, error) {
	if src == nil {
		return nil, Layout{}, &DimensionError{Which: "source"}
	}
	sr := src.Bounds()
	layout, err := NewLayout(sr.Size(), spec)
	if err != nil {
		return nil, Layout{}, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(spec.fill()), image.Point{}, draw.Src)
	f.composite(dst, src, sr, layout)

	return dst, layout, nil
}

func (f *Fitter) composite(dst *image.RGBA, src image.Image, sr image.Rectangle, l Layout) {
	if l.Scaled == sr.Size() {
		dr := l.Rect().Intersect(dst.Bounds())
		sp := sr.Min.Add(image.Pt(dr.Min.X-l.Offset, 0))
		draw.Draw(dst, dr, src, sp, draw.Over)
		return
	}

	// Map the source straight onto the scaled rectangle. Only canvas
	// pixels get computed, so a crop never allocates the scaled image.
	sx := float64(l.Scaled.X) / float64(sr.Dx())
	sy := float64(l.Scaled.Y) / float64(sr.Dy())
	s2d := f64.Aff3{
		sx, 0, float64(l.Offset) - sx*float64(sr.Min.X),
		0, sy, -sy * float64(sr.Min.Y),
	}
	f.interpolator().Transform(dst, s2d, src, sr, draw.Over, nil)
}

func (f *Fitter) interpolator() draw.Interpolator {
	if f == nil || f.Interpolator == nil {
		return draw.CatmullRom
	}
	return f.Interpolator
}
