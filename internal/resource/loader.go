package resource

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"fringe-client/internal/render"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
)

// MemoryLoader serves images from a fixed table.
type MemoryLoader map[string]*render.Image

// Load returns the image registered for path.
func (m MemoryLoader) Load(path string) (*render.Image, error) {
	img, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingAsset)
	}
	return img, nil
}

// FileLoader decodes PNG, JPEG, BMP and TGA files below Root. When a file
// is absent it defers to Fallback; when both exist the decoded pixels are
// merged with the fallback's glyph and tint so either backend can draw it.
type FileLoader struct {
	Root     string
	Fallback Loader
}

// Load decodes the file at Root/path.
func (l FileLoader) Load(path string) (*render.Image, error) {
	var meta *render.Image
	if l.Fallback != nil {
		meta, _ = l.Fallback.Load(path)
	}

	if l.Root == "" {
		return fallbackOrMissing(meta, path)
	}
	f, err := os.Open(filepath.Join(l.Root, filepath.FromSlash(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fallbackOrMissing(meta, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pix, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := pix.Bounds()
	img := &render.Image{Name: path, W: b.Dx(), H: b.Dy(), Pixels: pix}
	if meta != nil {
		img.Glyph = meta.Glyph
		img.Tint = meta.Tint
		if meta.W > 0 && meta.H > 0 {
			img.W, img.H = meta.W, meta.H
		}
	}
	return img, nil
}

func fallbackOrMissing(meta *render.Image, path string) (*render.Image, error) {
	if meta != nil {
		return meta, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrMissingAsset)
}
