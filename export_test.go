package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestFlattenWithoutBubblesIsExactUpscale(t *testing.T) {
	base := testImage(40, 30)
	out, err := Flatten(base, nil, exportScale)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 80, 60), out.Bounds())

	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			require.Equal(t, base.RGBAAt(x/2, y/2), rgbaAt(out, x, y), "pixel %d,%d", x, y)
		}
	}
}

// translucentImage has every pixel partly transparent, down to alpha 3.
func translucentImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(200 - 13*x),
				G: uint8(37 + 29*y),
				B: uint8(91 + 7*x*y),
				A: uint8(3 + 8*(y*w+x)),
			})
		}
	}
	return img
}

func TestFlattenKeepsTranslucentBaseExact(t *testing.T) {
	base := translucentImage(4, 4)
	out, err := Flatten(base, nil, exportScale)
	require.NoError(t, err)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, base.NRGBAAt(x/2, y/2), out.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestExportPNGKeepsTranslucentBaseExact(t *testing.T) {
	base := translucentImage(4, 4)
	s := NewSession(base, "glass.png", testLogger())
	data, err := s.Export(FormatPNG)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	decoded, ok := img.(*image.NRGBA)
	require.True(t, ok, "decoded %T", img)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, base.NRGBAAt(x/2, y/2), decoded.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestFlattenBubbleLeavesTranslucentBaseElsewhere(t *testing.T) {
	base := translucentImage(120, 80)
	s := NewSession(base, "glass.png", testLogger())
	id := s.Add(BubbleBox) // 50,50 200x80, runs off the right and bottom edges

	out, err := Flatten(base, s.Scene().Snapshot(), exportScale)
	require.NoError(t, err)

	b := mustGet(t, s, id)
	inside := out.NRGBAAt(int(b.X+10)*exportScale, int(b.Y+10)*exportScale)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, inside)

	for _, p := range []image.Point{{0, 0}, {10, 70}, {40, 20}} {
		assert.Equal(t, base.NRGBAAt(p.X, p.Y), out.NRGBAAt(p.X*exportScale, p.Y*exportScale), "pixel %v", p)
	}
}

func TestExportPNGMatchesBase(t *testing.T) {
	s := NewSession(testImage(40, 30), "small.png", testLogger())
	data, err := s.Export(FormatPNG)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
	assert.Equal(t, rgbaAt(s.Base(), 7, 9), rgbaAt(img, 14, 18))
	assert.Equal(t, rgbaAt(s.Base(), 7, 9), rgbaAt(img, 15, 19))
}

func TestExportClearsSelectionAndOmitsAffordances(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)
	s.SetText("Hello")
	require.Equal(t, id, s.SelectedID())

	selected, err := s.Export(FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "", s.SelectedID())
	assert.False(t, s.Exporting())

	unselected, err := s.Export(FormatPNG)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(selected, unselected))

	// The toolbar area above the bubble shows the untouched base.
	img, err := png.Decode(bytes.NewReader(selected))
	require.NoError(t, err)
	tb := toolbarRect(mustGet(t, s, id))
	x, y := int(tb.X)+5, int(tb.Y)+5
	assert.Equal(t, rgbaAt(s.Base(), x, y), rgbaAt(img, x*exportScale, y*exportScale))
}

func TestExportDrawsBubbles(t *testing.T) {
	s := newTestSession(t)
	box := s.Add(BubbleBox)
	plain := s.Add(BubblePlainText)
	s.Update(plain, Patch{X: ptr(250.0), Y: ptr(200.0)})

	out, err := Flatten(s.Base(), s.Scene().Snapshot(), exportScale)
	require.NoError(t, err)

	b := mustGet(t, s, box)
	inside := rgbaAt(out, int(b.X+10)*exportScale, int(b.Y+10)*exportScale)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, inside, "box fill is white")

	// A transparent PLAIN_TEXT body leaves the base visible away from its text.
	p := mustGet(t, s, plain)
	px, py := int(p.X+2), int(p.Y+2)
	assert.Equal(t, rgbaAt(s.Base(), px, py), rgbaAt(out, px*exportScale, py*exportScale))
}

func TestFlattenAllTypes(t *testing.T) {
	s := newTestSession(t)
	for _, typ := range AllBubbleTypes {
		id := s.Add(typ)
		s.SetText("Some words that need wrapping inside the bubble")
		s.Update(id, Patch{LetterSpacing: ptr(1.5)})
	}
	_, err := Flatten(s.Base(), s.Scene().Snapshot(), exportScale)
	assert.NoError(t, err)
}

func TestExportRejectsConcurrentExport(t *testing.T) {
	s := newTestSession(t)
	_, err := s.BeginExport()
	require.NoError(t, err)
	assert.True(t, s.Exporting())

	_, err = s.Export(FormatPNG)
	assert.ErrorIs(t, err, ErrExportBusy)
	_, err = s.BeginExport()
	assert.ErrorIs(t, err, ErrExportBusy)

	s.EndExport()
	_, err = s.Export(FormatPNG)
	assert.NoError(t, err)
}

func TestExportFailureIsRecoverable(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleBox)
	s.Update(id, Patch{TextColor: ptr("banana")})
	before := s.Scene().Snapshot()

	_, err := s.Export(FormatPNG)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
	assert.False(t, s.Exporting())
	assert.Equal(t, before, s.Scene().Snapshot())

	s.Update(id, Patch{TextColor: ptr("#112233")})
	_, err = s.Export(FormatPNG)
	assert.NoError(t, err)
}

func TestExportEmptyBase(t *testing.T) {
	s := NewSession(image.NewRGBA(image.Rect(0, 0, 0, 0)), "empty.png", testLogger())
	_, err := s.Export(FormatPNG)
	assert.ErrorIs(t, err, ErrEmptyCanvas)
	assert.False(t, s.Exporting())
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	_, err := Encode(testImage(2, 2), ExportFormat("gif"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#000000", color.NRGBA{R: 0, G: 0, B: 0, A: 255}, false},
		{"#FEF9C3", color.NRGBA{R: 0xfe, G: 0xf9, B: 0xc3, A: 255}, false},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{"transparent", color.Transparent, false},
		{"red", nil, true},
		{"#12", nil, true},
		{"#gggggg", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrapText(t *testing.T) {
	width := func(s string) float64 { return float64(len(s)) }

	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 7, width))
	assert.Equal(t, []string{"a", "", "b"}, wrapText("a\n\nb", 10, width))
	assert.Equal(t, []string{"supercalifragilistic", "x"}, wrapText("supercalifragilistic x", 5, width))
	assert.Equal(t, []string{""}, wrapText("", 5, width))
	assert.Equal(t, []string{strings.Repeat("a", 3)}, wrapText("  aaa  ", 5, width))
}
