package measure

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
)

// Shaped measures strings by running them through a HarfBuzz shaper, so
// ligatures, kerning and complex scripts produce the advance a shaping
// renderer would draw.
//
// The parsed font is shared; a face and shaper are created per call because
// neither is safe for concurrent use.
type Shaped struct {
	font *font.Font
	size float64
	lang language.Language

	shapers sync.Pool
}

// NewShaped parses ttf and returns a shaping measurer at size pixels.
func NewShaped(ttf []byte, size float64) (*Shaped, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", size)
	}
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Shaped{
		font: face.Font,
		size: size,
		lang: language.NewLanguage("en"),
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// NewShapedGoRegular returns a shaping measurer for Go Regular.
func NewShapedGoRegular(size float64) (*Shaped, error) {
	return NewShaped(goregular.TTF, size)
}

// Width implements Measurer.
func (s *Shaped) Width(text string) float64 {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(s.font),
		Size:      floatToFixed(s.size),
		Script:    scriptOf(runes),
		Language:  s.lang,
	}

	shaper := s.shapers.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(input)
	s.shapers.Put(shaper)

	return fixedToFloat(out.Advance)
}

// scriptOf returns the script of the first non-space rune, Latin if none.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
