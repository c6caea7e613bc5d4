package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStyleDefaults(t *testing.T) {
	st := ResolveStyle(Bubble{Type: BubbleSpeech})
	assert.Equal(t, Style{
		FontSize:        16,
		FontWeight:      WeightNormal,
		FontFamily:      "Go",
		Padding:         16,
		LineHeight:      1.2,
		LetterSpacing:   0,
		TextColor:       "#000000",
		BackgroundColor: "#ffffff",
		BorderColor:     "#000000",
		TextStrokeWidth: 0,
		TextStrokeColor: "#ffffff",
	}, st)

	st = ResolveStyle(NewBubble(BubbleWhisper))
	assert.Equal(t, "#6b7280", st.TextColor)
	assert.Equal(t, "Go Italic", st.FontFamily)
}

func TestToggleOutline(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)

	s.ToggleOutline()
	b := mustGet(t, s, id)
	require.NotNil(t, b.TextStrokeWidth)
	assert.Equal(t, 3.0, *b.TextStrokeWidth)
	assert.Equal(t, "#ffffff", *b.TextStrokeColor)

	s.ToggleOutline()
	b = mustGet(t, s, id)
	assert.Equal(t, 0.0, *b.TextStrokeWidth)

	s.ToggleOutline()
	assert.Equal(t, 3.0, *mustGet(t, s, id).TextStrokeWidth)
}

func TestToggleOutlineOnPlainText(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubblePlainText)

	// PLAIN_TEXT starts outlined, so the first toggle turns it off.
	s.ToggleOutline()
	assert.Equal(t, 0.0, *mustGet(t, s, id).TextStrokeWidth)
}

func TestToggleBold(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)

	s.ToggleBold()
	assert.Equal(t, WeightBold, *mustGet(t, s, id).FontWeight)
	s.ToggleBold()
	assert.Equal(t, WeightNormal, *mustGet(t, s, id).FontWeight)

	shout := s.Add(BubbleShout)
	s.ToggleBold()
	assert.Equal(t, WeightNormal, *mustGet(t, s, shout).FontWeight)
}

func TestCycleFontWraps(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)

	var seen []string
	for range FontFamilies {
		s.CycleFont()
		seen = append(seen, *mustGet(t, s, id).FontFamily)
	}
	assert.Equal(t, []string{"Go Mono", "Go Italic", "Go Smallcaps", "Go"}, seen)
}

func TestCycleColors(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)

	s.CycleTextColor()
	s.CycleBackgroundColor()
	s.CycleBorderColor()
	b := mustGet(t, s, id)
	assert.Equal(t, "#ffffff", *b.TextColor)
	assert.Equal(t, "#ef4444", *b.BackgroundColor)
	assert.Equal(t, "#ffffff", *b.BorderColor)

	// Colors outside the palette restart it.
	s.Update(id, Patch{TextColor: ptr("#123456")})
	s.CycleTextColor()
	assert.Equal(t, palette[0], *mustGet(t, s, id).TextColor)
}

func TestAdjustmentsClamp(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)

	for i := 0; i < 100; i++ {
		s.AdjustFontSize(2)
		s.AdjustLineHeight(0.1)
		s.AdjustLetterSpacing(0.5)
	}
	b := mustGet(t, s, id)
	assert.Equal(t, 96.0, *b.FontSize)
	assert.Equal(t, 3.0, *b.LineHeight)
	assert.Equal(t, 20.0, *b.LetterSpacing)

	for i := 0; i < 100; i++ {
		s.AdjustFontSize(-2)
		s.AdjustLineHeight(-0.1)
		s.AdjustLetterSpacing(-0.5)
		s.AdjustPadding(-4)
	}
	b = mustGet(t, s, id)
	assert.Equal(t, 8.0, *b.FontSize)
	assert.Equal(t, 0.8, *b.LineHeight)
	assert.Equal(t, -2.0, *b.LetterSpacing)
	assert.Equal(t, 0.0, *b.Padding)
}

func TestLineHeightStepsStayOnTenths(t *testing.T) {
	s := newTestSession(t)
	id := s.Add(BubbleSpeech)

	s.AdjustLineHeight(0.1)
	s.AdjustLineHeight(0.1)
	s.AdjustLineHeight(0.1)
	assert.Equal(t, 1.5, *mustGet(t, s, id).LineHeight)
}

func TestStyleControlsDisabled(t *testing.T) {
	s := newTestSession(t)
	assert.False(t, s.StyleEditable(), "no selection")

	id := s.Add(BubbleSpeech)
	assert.True(t, s.StyleEditable())

	s.StartEditing()
	assert.False(t, s.StyleEditable())
	s.AdjustFontSize(10)
	s.ToggleBold()
	b := mustGet(t, s, id)
	assert.Nil(t, b.FontSize)
	assert.Nil(t, b.FontWeight)
}
