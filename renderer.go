package main

type BorderStyle int

const (
	BorderSolid BorderStyle = iota
	BorderDashed
	BorderNone
)

func (b BorderStyle) String() string {
	switch b {
	case BorderSolid:
		return "solid"
	case BorderDashed:
		return "dashed"
	default:
		return "none"
	}
}

type Point struct {
	X, Y float64
}

const placeholderText = "..."

// flashOutline is the jagged burst used by FLASH bubbles, in fractions of
// the bubble's width and height.
var flashOutline = []Point{
	{0.50, 0.00}, {0.61, 0.18}, {0.80, 0.05}, {0.76, 0.28},
	{1.00, 0.30}, {0.82, 0.47}, {0.98, 0.68}, {0.74, 0.68},
	{0.78, 0.95}, {0.58, 0.80}, {0.45, 1.00}, {0.38, 0.78},
	{0.14, 0.92}, {0.20, 0.66}, {0.00, 0.60}, {0.18, 0.45},
	{0.02, 0.22}, {0.26, 0.26}, {0.22, 0.04}, {0.40, 0.18},
}

// Shape describes the body of a bubble. Corner radii are in canvas pixels,
// ordered top-left, top-right, bottom-right, bottom-left.
type Shape struct {
	Border      BorderStyle
	BorderWidth float64
	BorderColor string
	Corners     [4]float64
	Ellipse     bool
	Rotation    float64 // degrees, clockwise
	Fill        string

	// Clip is set for FLASH only. A clipped shape cannot carry a border, so
	// the outline is drawn as a shadow of the polygon offset by BorderWidth.
	Clip          []Point
	OutlineShadow bool
}

type TextLayer struct {
	Style
	Content     string
	Placeholder bool
}

type Visual struct {
	Shape Shape
	Text  TextLayer
}

// Render maps a bubble to its visual description. It is deterministic and
// never includes selection affordances.
func Render(b Bubble, editing bool) Visual {
	st := ResolveStyle(b)
	shape := Shape{
		Border:      BorderSolid,
		BorderWidth: 2,
		BorderColor: st.BorderColor,
		Fill:        st.BackgroundColor,
	}

	switch b.Type {
	case BubbleSpeech:
		shape.Corners = [4]float64{20, 20, 20, 0}
	case BubbleThought:
		shape.Border = BorderDashed
		shape.Ellipse = true
	case BubbleShout:
		shape.BorderWidth = 3
		shape.Corners = [4]float64{4, 4, 4, 4}
		shape.Rotation = -2
	case BubbleBox:
	case BubbleWhisper:
		shape.Border = BorderDashed
		shape.Corners = [4]float64{20, 20, 20, 20}
	case BubbleFlash:
		shape.Border = BorderNone
		shape.Clip = append([]Point(nil), flashOutline...)
		shape.OutlineShadow = true
	case BubblePlainText:
		shape.Border = BorderNone
		shape.BorderWidth = 0
	}

	text := TextLayer{Style: st, Content: b.Text}
	if b.Text == "" && !editing {
		text.Content = placeholderText
		text.Placeholder = true
	}
	return Visual{Shape: shape, Text: text}
}
