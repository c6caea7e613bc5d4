package main

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// fontFiles maps a family to its regular and bold cuts. Smallcaps has no
// bold cut and reuses the regular one.
var fontFiles = map[string][2][]byte{
	"Go":           {goregular.TTF, gobold.TTF},
	"Go Mono":      {gomono.TTF, gomonobold.TTF},
	"Go Italic":    {goitalic.TTF, gobolditalic.TTF},
	"Go Smallcaps": {gosmallcaps.TTF, gosmallcaps.TTF},
}

var (
	parsedFontsMu sync.Mutex
	parsedFonts   = map[string]*truetype.Font{}
)

func loadFont(family string, weight FontWeight) (*truetype.Font, error) {
	files, ok := fontFiles[family]
	if !ok {
		family = FontFamilies[0]
		files = fontFiles[family]
	}
	cut := 0
	if weight == WeightBold {
		cut = 1
	}
	key := fmt.Sprintf("%s/%d", family, cut)

	parsedFontsMu.Lock()
	defer parsedFontsMu.Unlock()
	if f, ok := parsedFonts[key]; ok {
		return f, nil
	}
	f, err := truetype.Parse(files[cut])
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", family, err)
	}
	parsedFonts[key] = f
	return f, nil
}

// newFace returns a fresh face; faces keep glyph caches and are not shared
// between goroutines.
func newFace(family string, weight FontWeight, size float64) (font.Face, error) {
	f, err := loadFont(family, weight)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
