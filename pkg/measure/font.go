package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font measures strings by summing glyph advances and kerning of an
// OpenType face at a fixed size, in pixels at 72 DPI.
//
// A Font is safe for concurrent use; the underlying face is not, so calls
// are serialized.
type Font struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// NewFont parses ttf (TrueType or OpenType data) and returns a measurer at
// size pixels.
func NewFont(ttf []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Font{face: face, size: size}, nil
}

// NewGoRegular returns a measurer for the Go Regular font at size pixels.
func NewGoRegular(size float64) (*Font, error) {
	return NewFont(goregular.TTF, size)
}

// Width implements Measurer.
func (f *Font) Width(s string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fixedToFloat(font.MeasureString(f.face, s))
}

// LineHeight returns the recommended distance between baselines.
func (f *Font) LineHeight() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fixedToFloat(f.face.Metrics().Height)
}

// Size returns the face size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// Close releases the face.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Close()
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
