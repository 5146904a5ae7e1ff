package illustrator

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is the fixed quality of compressed images.
const JPEGQuality = 85

// ErrFileMissing is returned when the image to compress does not exist.
var ErrFileMissing = errors.New("file missing")

// CompressOptions tunes Compress.
type CompressOptions struct {
	MaxDimension int
}

// Compress re-encodes the image at src as a JPEG at dst. Transparent areas are
// flattened onto white. The destination is written through a temporary file so
// a partial write is never mistaken for a cached image.
func Compress(src, dst string, opts CompressOptions) error {
	if strings.EqualFold(filepath.Ext(src), filepath.Ext(dst)) {
		return fmt.Errorf("compress %s: destination %s has the same extension", src, dst)
	}

	f, err := os.Open(src)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Error("original file does not exist", "path", src)
		return fmt.Errorf("%w: %s", ErrFileMissing, src)
	}
	if err != nil {
		return fmt.Errorf("open original: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}

	bounds := img.Bounds()
	size := fit(bounds.Dx(), bounds.Dy(), opts.MaxDimension)
	canvas := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	if size == bounds.Size() {
		draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, draw.Over, nil)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create compressed directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".compress-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := jpeg.Encode(tmp, canvas, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		tmp.Close()
		return fmt.Errorf("encode jpeg: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename compressed image: %w", err)
	}

	slog.Info("compressed image saved",
		"path", dst,
		"format", format,
		"width", size.X,
		"height", size.Y,
	)
	return nil
}

// fit scales w x h down so neither side exceeds limit, keeping the aspect
// ratio.
func fit(w, h, limit int) image.Point {
	if limit <= 0 || (w <= limit && h <= limit) {
		return image.Pt(w, h)
	}
	if w >= h {
		return image.Pt(limit, max(1, h*limit/w))
	}
	return image.Pt(max(1, w*limit/h), limit)
}
