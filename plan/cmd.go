package plan

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"picfit/canvas"
	"picfit/codec"
	"picfit/fit"
	"picfit/source"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan   string   `help:"Source folder to scan" default:"."`
	Ext    []string `help:"Extensions of the pictures to pick up" default:"png,jpg,jpeg,gif,bmp,tif,tiff,webp"`
	Width  int      `help:"Canvas width" default:"1080"`
	Height int      `help:"Canvas height" default:"1920"`
	Name   string   `help:"Output name pattern, with a single number verb" default:"%04d"`
	Start  int      `help:"Number given to the first picture" default:"1"`
	Format string   `help:"Output format: same, png, jpeg, gif, bmp, tiff or webp. 'same' keeps the source format" default:"png"`
}

// Stats counts the pictures of a dry run by the way they would be fitted.
type Stats struct {
	Crop   int
	Pad    int
	Exact  int
	Errors int
}

func (s Stats) Total() int {
	return s.Crop + s.Pad + s.Exact
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

	if err := c.spec().Validate(); err != nil {
		return err
	}
	if err := fit.ValidateFormat(c.Format); err != nil {
		return err
	}
	return source.Namer{Pattern: c.Name, Start: c.Start}.Validate()
}

func (c *CLICmd) Run() error {
	stats, err := c.Plan()
	if err != nil {
		return err
	}

	slog.Info("stats", "crop", stats.Crop, "pad", stats.Pad, "exact", stats.Exact, "errors", stats.Errors,
		"total", stats.Total())

	if stats.Errors > 0 {
		return fmt.Errorf("error reading %d files", stats.Errors)
	}
	return nil
}

// Plan reads only the picture headers and logs what fitting would do to
// each of them.
func (c *CLICmd) Plan() (Stats, error) {
	entries, err := source.List(c.Scan, c.Ext)
	if err != nil {
		return Stats{}, err
	}

	namer := source.Namer{Pattern: c.Name, Start: c.Start}
	spec := c.spec()
	var stats Stats
	for _, entry := range entries {
		logger := slog.Default().With("file", entry.Path)

		imgConf, _, err := codec.DecodeConfig(entry.Path)
		if err != nil {
			stats.Errors++
			logger.Error("could not read picture", "error", err)
			continue
		}

		layout, err := canvas.NewLayout(image.Pt(imgConf.Width, imgConf.Height), spec)
		if err != nil {
			stats.Errors++
			logger.Error("picture cannot be fitted", "error", err)
			continue
		}

		switch layout.Mode() {
		case canvas.Crop:
			stats.Crop++
		case canvas.Pad:
			stats.Pad++
		default:
			stats.Exact++
		}

		format := c.Format
		if format == "same" {
			format = codec.FormatForExt(entry.Ext)
		}
		left, right := layout.Margins()
		logger.Info("plan", "dest", namer.Name(entry, format), "mode", layout.Mode(),
			"source", layout.Source, "scaled", layout.Scaled, "left", left, "right", right)
	}

	return stats, nil
}

func (c *CLICmd) spec() canvas.Spec {
	return canvas.Spec{Width: c.Width, Height: c.Height}
}
