// Package codec decodes source pictures and encodes fitted canvases.
package codec

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode = errors.New("decode failure")
	ErrEncode = errors.New("encode failure")
)

// Formats are the encodable output formats, named as image.Decode names
// them.
var Formats = []string{"png", "jpeg", "gif", "bmp", "tiff", "webp"}

// FormatForExt maps a file extension to its format name.
func FormatForExt(ext string) string {
	switch ext {
	case "jpg", "jpe":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return ext
}

type Options struct {
	// Quality is used by the JPEG and WebP encoders, 1 to 100.
	Quality int
}

func Decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer closeLogged(f, path)

	img, imgType, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q: %w", ErrDecode, path, err)
	}
	return img, imgType, nil
}

// DecodeConfig reads only the header of the image at path.
func DecodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer closeLogged(f, path)

	conf, imgType, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %q: %w", ErrDecode, path, err)
	}
	return conf, imgType, nil
}

func Encode(w io.Writer, img image.Image, format string, opts Options) error {
	var err error
	switch format {
	case "gif":
		err = gif.Encode(w, img, nil)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: opts.Quality})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		err = enc.Encode(w, img)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "webp":
		err = webp.Encode(w, img, &webp.Options{Quality: float32(opts.Quality)})
	default:
		return fmt.Errorf("%w: unsupported output format: %s", ErrEncode, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, format, err)
	}
	return nil
}

func closeLogged(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		slog.Error("could not close file", "name", name, "error", err)
	}
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
