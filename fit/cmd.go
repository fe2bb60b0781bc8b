package fit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"picfit/canvas"
	"picfit/codec"
	"picfit/parallel"
	"picfit/source"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan      string   `help:"Source folder to scan" default:"."`
	Dest      string   `help:"Destination folder for fitted pictures. Relative to scan dir if not absolute." default:"fitted"`
	Ext       []string `help:"Extensions of the pictures to pick up" default:"png,jpg,jpeg,gif,bmp,tif,tiff,webp"`
	Width     int      `help:"Canvas width" default:"1080" group:"canvas"`
	Height    int      `help:"Canvas height" default:"1920" group:"canvas"`
	Fill      string   `help:"Color of the padding bars: #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#000000FF" group:"canvas"`
	Filter    string   `help:"Resampling filter" enum:"nearest,approx-bilinear,bilinear,catmullrom" default:"catmullrom" group:"canvas"`
	Name      string   `help:"Output name pattern, with a single number verb" default:"%04d" group:"output"`
	Start     int      `help:"Number given to the first picture" default:"1" group:"output"`
	Format    string   `help:"Output format: same, png, jpeg, gif, bmp, tiff or webp. 'same' keeps the source format" default:"png" group:"output"`
	Quality   int      `help:"JPEG and WebP quality" default:"95" group:"output"`
	Overwrite bool     `help:"Replace existing outputs" default:"false" group:"output"`
	Abort     bool     `help:"Stop at the first picture that fails instead of skipping it" default:"false"`

	Spec   canvas.Spec    `kong:"-"`
	Fitter *canvas.Fitter `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	fill, err := canvas.ParseColor(c.Fill)
	if err != nil {
		return err
	}
	c.Spec = canvas.Spec{Width: c.Width, Height: c.Height, Fill: fill}
	if err := c.Spec.Validate(); err != nil {
		return err
	}

	interp, ok := canvas.LookupInterpolator(c.Filter)
	if !ok {
		return fmt.Errorf("unknown resampling filter %q, expected one of %s", c.Filter,
			strings.Join(canvas.InterpolatorNames(), ", "))
	}
	c.Fitter = &canvas.Fitter{Interpolator: interp}

	if err := ValidateFormat(c.Format); err != nil {
		return err
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("invalid quality: %d", c.Quality)
	}

	return source.Namer{Pattern: c.Name, Start: c.Start}.Validate()
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc, abort parallel.AbortFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	entries, err := source.List(c.Scan, c.Ext)
	if err != nil {
		return err
	}

	slog.Info("canvas", "width", c.Spec.Width, "height", c.Spec.Height,
		"fill", canvas.FormatColor(c.Spec.Fill), "filter", c.Filter, "pictures", len(entries))

	namer := source.Namer{Pattern: c.Name, Start: c.Start}
	var processedCount, errCount atomic.Uint64
	for _, entry := range entries {
		// Names are fixed here, in listing order, not by whoever finishes first.
		format := c.outputFormat(entry)
		destName := namer.Name(entry, format)

		worker(func(ctx context.Context) {
			logger := slog.Default().With("file", entry.Path, "dest", destName)
			err := c.process(ctx, logger, entry, format, destName)
			switch {
			case err == nil:
				processedCount.Add(1)
			case errors.Is(err, context.Canceled):
				logger.Debug("skipped")
			default:
				errCount.Add(1)
				logger.Error("could not fit picture", "error", err)
				if c.Abort {
					abort()
				}
			}
		})
	}

	wait()

	processed := processedCount.Load()
	errs := errCount.Load()
	skipped := uint64(len(entries)) - processed - errs
	slog.Info("stats", "processed", processed, "errors", errs, "skipped", skipped,
		"total", len(entries))

	if errs > 0 {
		return fmt.Errorf("error processing %d files", errs)
	}
	if skipped > 0 {
		return fmt.Errorf("interrupted, %d files skipped", skipped)
	}
	return nil
}

func (c *CLICmd) process(ctx context.Context, logger *slog.Logger, entry source.Entry, format, destName string) error {
	img, imgType, err := codec.Decode(entry.Path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, layout, err := c.Fitter.FitLayout(img, c.Spec)
	if err != nil {
		size := img.Bounds().Size()
		return fmt.Errorf("could not fit %dx%d %s picture: %w", size.X, size.Y, imgType, err)
	}
	left, right := layout.Margins()
	logger.Info("fitting", "mode", layout.Mode(), "source", layout.Source, "scaled", layout.Scaled,
		"left", left, "right", right)

	return codec.WriteFile(out, format, codec.Options{Quality: c.Quality}, c.Dest, destName, c.Overwrite)
}

// ValidateFormat accepts "same" and every format codec can encode.
func ValidateFormat(format string) error {
	if format == "same" || slices.Contains(codec.Formats, format) {
		return nil
	}
	return fmt.Errorf("unknown output format %q, expected same or one of %s", format,
		strings.Join(codec.Formats, ", "))
}

func (c *CLICmd) outputFormat(entry source.Entry) string {
	if c.Format == "same" {
		return codec.FormatForExt(entry.Ext)
	}
	return c.Format
}
