package main

const (
	defaultFontSize        = 16.0
	defaultPadding         = 16.0
	defaultLineHeight      = 1.2
	defaultLetterSpacing   = 0.0
	defaultTextColor       = "#000000"
	defaultBackgroundColor = "#ffffff"
	defaultBorderColor     = "#000000"
	defaultStrokeColor     = "#ffffff"

	outlineStrokeWidth = 3.0
	outlineStrokeColor = "#ffffff"
)

// palette is what the color cycling controls step through.
var palette = [numColors]string{
	"#000000",
	"#ffffff",
	"#ef4444",
	"#f97316",
	"#fef9c3",
	"#22c55e",
	"#3b82f6",
	"#6b7280",
}

// Style is a bubble's fully resolved styling.
type Style struct {
	FontSize        float64
	FontWeight      FontWeight
	FontFamily      string
	Padding         float64
	LineHeight      float64
	LetterSpacing   float64
	TextColor       string
	BackgroundColor string
	BorderColor     string
	TextStrokeWidth float64
	TextStrokeColor string
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// ResolveStyle fills every unset style field with its default. The renderer,
// the exporter and the style panel all read styles through here.
func ResolveStyle(b Bubble) Style {
	return Style{
		FontSize:        orDefault(b.FontSize, defaultFontSize),
		FontWeight:      orDefault(b.FontWeight, WeightNormal),
		FontFamily:      orDefault(b.FontFamily, FontFamilies[0]),
		Padding:         orDefault(b.Padding, defaultPadding),
		LineHeight:      orDefault(b.LineHeight, defaultLineHeight),
		LetterSpacing:   orDefault(b.LetterSpacing, defaultLetterSpacing),
		TextColor:       orDefault(b.TextColor, defaultTextColor),
		BackgroundColor: orDefault(b.BackgroundColor, defaultBackgroundColor),
		BorderColor:     orDefault(b.BorderColor, defaultBorderColor),
		TextStrokeWidth: orDefault(b.TextStrokeWidth, 0),
		TextStrokeColor: orDefault(b.TextStrokeColor, defaultStrokeColor),
	}
}

func nextFontFamily(current string) string {
	for i, f := range FontFamilies {
		if f == current {
			return FontFamilies[(i+1)%len(FontFamilies)]
		}
	}
	return FontFamilies[0]
}

func nextPaletteColor(current string) string {
	for i, c := range palette {
		if c == current {
			return palette[(i+1)%numColors]
		}
	}
	return palette[0]
}

// StyleEditable reports whether the style controls are shown.
func (s *Session) StyleEditable() bool {
	return !s.closed && s.selected != "" && !s.editing
}

func (s *Session) styleTarget() (Bubble, Style, bool) {
	if !s.StyleEditable() {
		return Bubble{}, Style{}, false
	}
	b, ok := s.scene.Get(s.selected)
	if !ok {
		return Bubble{}, Style{}, false
	}
	return b, ResolveStyle(b), true
}

func (s *Session) AdjustFontSize(delta float64) {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{FontSize: ptr(st.FontSize + delta)})
	}
}

func (s *Session) AdjustPadding(delta float64) {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{Padding: ptr(st.Padding + delta)})
	}
}

func (s *Session) AdjustLineHeight(delta float64) {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{LineHeight: ptr(st.LineHeight + delta)})
	}
}

func (s *Session) AdjustLetterSpacing(delta float64) {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{LetterSpacing: ptr(st.LetterSpacing + delta)})
	}
}

func (s *Session) ToggleBold() {
	if b, st, ok := s.styleTarget(); ok {
		weight := WeightBold
		if st.FontWeight == WeightBold {
			weight = WeightNormal
		}
		s.Update(b.ID, Patch{FontWeight: ptr(weight)})
	}
}

func (s *Session) CycleFont() {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{FontFamily: ptr(nextFontFamily(st.FontFamily))})
	}
}

func (s *Session) CycleTextColor() {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{TextColor: ptr(nextPaletteColor(st.TextColor))})
	}
}

func (s *Session) CycleBackgroundColor() {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{BackgroundColor: ptr(nextPaletteColor(st.BackgroundColor))})
	}
}

func (s *Session) CycleBorderColor() {
	if b, st, ok := s.styleTarget(); ok {
		s.Update(b.ID, Patch{BorderColor: ptr(nextPaletteColor(st.BorderColor))})
	}
}

// ToggleOutline switches the text stroke between the fixed outline and none.
// A custom width set earlier is not remembered.
func (s *Session) ToggleOutline() {
	b, st, ok := s.styleTarget()
	if !ok {
		return
	}
	if st.TextStrokeWidth > 0 {
		s.Update(b.ID, Patch{TextStrokeWidth: ptr(0.0)})
		return
	}
	s.Update(b.ID, Patch{
		TextStrokeWidth: ptr(outlineStrokeWidth),
		TextStrokeColor: ptr(outlineStrokeColor),
	})
}
