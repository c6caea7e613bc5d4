package main

import (
	"math"
	"strings"

	"github.com/oklog/ulid/v2"
)

type BubbleType int

const (
	BubbleSpeech BubbleType = iota
	BubbleThought
	BubbleShout
	BubbleBox
	BubbleWhisper
	BubbleFlash
	BubblePlainText
)

var bubbleTypeNames = []string{"SPEECH", "THOUGHT", "SHOUT", "BOX", "WHISPER", "FLASH", "PLAIN_TEXT"}

// AllBubbleTypes lists the variants in the order the add keys (1-7) use.
var AllBubbleTypes = []BubbleType{
	BubbleSpeech,
	BubbleThought,
	BubbleShout,
	BubbleBox,
	BubbleWhisper,
	BubbleFlash,
	BubblePlainText,
}

func (t BubbleType) String() string {
	if t < 0 || int(t) >= len(bubbleTypeNames) {
		return "UNKNOWN"
	}
	return bubbleTypeNames[t]
}

func ParseBubbleType(name string) (BubbleType, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range bubbleTypeNames {
		if n == name {
			return BubbleType(i), true
		}
	}
	return 0, false
}

type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// FontFamilies is the fixed list the style editor cycles through.
// Index 1 is the boxy face and index 2 the italic one.
var FontFamilies = []string{"Go", "Go Mono", "Go Italic", "Go Smallcaps"}

const colorTransparent = "transparent"

// Bubble is one text callout on the canvas. Style fields are optional and
// only resolved to concrete values when read (see ResolveStyle).
type Bubble struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Text   string
	Type   BubbleType

	FontSize        *float64
	FontWeight      *FontWeight
	FontFamily      *string
	Padding         *float64
	LineHeight      *float64
	LetterSpacing   *float64
	TextColor       *string
	BackgroundColor *string
	BorderColor     *string
	TextStrokeWidth *float64
	TextStrokeColor *string
}

func ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func newBubbleID() string {
	return ulid.Make().String()
}

// NewBubble creates a bubble of the given type with a fresh id and the
// variant's default bundle.
func NewBubble(t BubbleType) Bubble {
	b := Bubble{
		ID:         newBubbleID(),
		X:          spawnX,
		Y:          spawnY,
		Width:      150,
		Height:     100,
		Type:       t,
		FontFamily: ptr(FontFamilies[0]),
		Padding:    ptr(16.0),
	}

	switch t {
	case BubbleShout:
		b.Padding = ptr(24.0)
		b.FontWeight = ptr(WeightBold)
		b.BackgroundColor = ptr("#fef9c3")
	case BubbleBox:
		b.Width, b.Height = 200, 80
		b.FontFamily = ptr(FontFamilies[1])
		b.Padding = ptr(8.0)
	case BubbleWhisper:
		b.FontFamily = ptr(FontFamilies[2])
		b.TextColor = ptr("#6b7280")
		b.BorderColor = ptr("#6b7280")
	case BubblePlainText:
		b.Width, b.Height = 180, 60
		b.Padding = ptr(4.0)
		b.FontWeight = ptr(WeightBold)
		b.BackgroundColor = ptr(colorTransparent)
		b.BorderColor = ptr(colorTransparent)
		b.TextStrokeWidth = ptr(3.0)
	}
	return b
}

// Clone returns a deep copy; the optional fields do not share storage.
func (b Bubble) Clone() Bubble {
	c := b
	c.FontSize = clonePtr(b.FontSize)
	c.FontWeight = clonePtr(b.FontWeight)
	c.FontFamily = clonePtr(b.FontFamily)
	c.Padding = clonePtr(b.Padding)
	c.LineHeight = clonePtr(b.LineHeight)
	c.LetterSpacing = clonePtr(b.LetterSpacing)
	c.TextColor = clonePtr(b.TextColor)
	c.BackgroundColor = clonePtr(b.BackgroundColor)
	c.BorderColor = clonePtr(b.BorderColor)
	c.TextStrokeWidth = clonePtr(b.TextStrokeWidth)
	c.TextStrokeColor = clonePtr(b.TextStrokeColor)
	return c
}

func (b Bubble) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	X      *float64
	Y      *float64
	Width  *float64
	Height *float64
	Text   *string

	FontSize        *float64
	FontWeight      *FontWeight
	FontFamily      *string
	Padding         *float64
	LineHeight      *float64
	LetterSpacing   *float64
	TextColor       *string
	BackgroundColor *string
	BorderColor     *string
	TextStrokeWidth *float64
	TextStrokeColor *string
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func (p Patch) applyTo(b *Bubble) {
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Width != nil {
		b.Width = *p.Width
	}
	if p.Height != nil {
		b.Height = *p.Height
	}
	if p.Text != nil {
		b.Text = *p.Text
	}
	if p.FontSize != nil {
		b.FontSize = ptr(clamp(*p.FontSize, 8, 96))
	}
	if p.FontWeight != nil {
		b.FontWeight = ptr(*p.FontWeight)
	}
	if p.FontFamily != nil {
		b.FontFamily = ptr(*p.FontFamily)
	}
	if p.Padding != nil {
		b.Padding = ptr(math.Max(0, *p.Padding))
	}
	if p.LineHeight != nil {
		b.LineHeight = ptr(roundTo(clamp(*p.LineHeight, 0.8, 3.0), 1))
	}
	if p.LetterSpacing != nil {
		b.LetterSpacing = ptr(clamp(*p.LetterSpacing, -2, 20))
	}
	if p.TextColor != nil {
		b.TextColor = ptr(*p.TextColor)
	}
	if p.BackgroundColor != nil {
		b.BackgroundColor = ptr(*p.BackgroundColor)
	}
	if p.BorderColor != nil {
		b.BorderColor = ptr(*p.BorderColor)
	}
	if p.TextStrokeWidth != nil {
		b.TextStrokeWidth = ptr(math.Max(0, *p.TextStrokeWidth))
	}
	if p.TextStrokeColor != nil {
		b.TextStrokeColor = ptr(*p.TextStrokeColor)
	}
}
