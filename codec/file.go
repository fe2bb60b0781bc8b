package codec

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrExists = errors.New("destination file already exists")

// WriteFile encodes img into destDir/destName. The image is written to a
// temporary file in destDir, flushed and renamed into place, so a failed
// encode never leaves a partial output behind.
func WriteFile(img image.Image, format string, opts Options, destDir, destName string, overwrite bool) (err error) {
	dest := filepath.Join(destDir, destName)
	if !overwrite {
		if _, statErr := os.Stat(dest); statErr == nil {
			return fmt.Errorf("%w: %q", ErrExists, dest)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, statErr)
		}
	}

	outFile, err := os.CreateTemp(destDir, "."+destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = Encode(outFile, img, format, opts); err != nil {
		return fmt.Errorf("could not encode destination %q: %w", destName, err)
	}

	canRename = true
	return nil
}
