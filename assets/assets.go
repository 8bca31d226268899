package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minaorangina/blackjack/deck"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	imageDir = "image"
	fontDir  = "font"
	imageExt = ".bmp"
	fontExt  = ".ttf"
	fontDPI  = 72
)

var ErrInvalidFontSize = errors.New("font size must be positive")

// Resources holds every image and font found at startup, keyed by basename
type Resources struct {
	images map[string]image.Image
	fonts  map[string]*opentype.Font
}

// Load scans dir/image for bitmaps and dir/font for truetype fonts
func Load(dir string) (*Resources, error) {
	r := &Resources{
		images: map[string]image.Image{},
		fonts:  map[string]*opentype.Font{},
	}

	err := scan(filepath.Join(dir, imageDir), imageExt, func(name string, data []byte) error {
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
		r.images[name] = img
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}

	err = scan(filepath.Join(dir, fontDir), fontExt, func(name string, data []byte) error {
		f, err := opentype.Parse(data)
		if err != nil {
			return err
		}
		r.fonts[name] = f
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	return r, nil
}

func scan(dir, ext string, load func(name string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := load(entry.Name(), data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func (r *Resources) Image(name string) (image.Image, bool) {
	img, ok := r.images[name]
	return img, ok
}

func (r *Resources) Font(name string) (*opentype.Font, bool) {
	f, ok := r.fonts[name]
	return f, ok
}

// Images lists the loaded image names in order
func (r *Resources) Images() []string {
	return sortedKeys(r.images)
}

// Fonts lists the loaded font names in order
func (r *Resources) Fonts() []string {
	return sortedKeys(r.fonts)
}

// Face builds a face for the named font, or the default font if it was not loaded
func (r *Resources) Face(name string, size float64) (font.Face, error) {
	f, ok := r.Font(name)
	if !ok {
		return DefaultFace(size)
	}
	return newFace(f, size)
}

// DefaultFace is Go Regular at the given size
func DefaultFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, ErrInvalidFontSize
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}

// SpriteName is the image file for a card: card01.bmp to card52.bmp
func SpriteName(c deck.Card) string {
	return fmt.Sprintf("card%02d%s", c.ID(), imageExt)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
