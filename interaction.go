package main

type DragMode int

const (
	DragIdle DragMode = iota
	DragMove
	DragResize
)

func (m DragMode) String() string {
	switch m {
	case DragMove:
		return "MOVE"
	case DragResize:
		return "RESIZE"
	default:
		return "IDLE"
	}
}

// Interaction is the in-progress drag. It only lives between pointer down
// and pointer up.
type Interaction struct {
	Mode         DragMode
	TargetID     string
	StartX       float64
	StartY       float64
	OriginX      float64
	OriginY      float64
	OriginWidth  float64
	OriginHeight float64
}

func (in *Interaction) begin(mode DragMode, b Bubble, x, y float64) {
	*in = Interaction{
		Mode:         mode,
		TargetID:     b.ID,
		StartX:       x,
		StartY:       y,
		OriginX:      b.X,
		OriginY:      b.Y,
		OriginWidth:  b.Width,
		OriginHeight: b.Height,
	}
}

func (in *Interaction) reset() {
	*in = Interaction{}
}

type HitKind int

const (
	HitNone HitKind = iota
	HitBackground
	HitBody
	HitResizeHandle
	HitToolbar
	HitText
)

type ToolbarButton int

const (
	ToolbarDelete ToolbarButton = iota
	ToolbarCopy
	ToolbarEdit
)

var toolbarButtons = []ToolbarButton{ToolbarDelete, ToolbarCopy, ToolbarEdit}

func (b ToolbarButton) Label() string {
	switch b {
	case ToolbarDelete:
		return "x"
	case ToolbarCopy:
		return "c"
	case ToolbarEdit:
		return "e"
	}
	return "?"
}

type Hit struct {
	Kind   HitKind
	ID     string
	Button ToolbarButton
}

type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// toolbarRect is the strip of buttons drawn above a selected bubble.
func toolbarRect(b Bubble) rect {
	return rect{
		X: b.X,
		Y: b.Y - toolbarHeight,
		W: float64(len(toolbarButtons) * toolbarButtonWidth),
		H: toolbarHeight,
	}
}

// handleRect is the resize handle in the bottom-right corner.
func handleRect(b Bubble) rect {
	return rect{
		X: b.X + b.Width - handleSize,
		Y: b.Y + b.Height - handleSize,
		W: handleSize,
		H: handleSize,
	}
}

// HitTest classifies a canvas point. Affordances of the selected bubble win
// over any bubble body.
func (s *Session) HitTest(x, y float64) Hit {
	if sel, ok := s.Selected(); ok {
		if !s.editing {
			tb := toolbarRect(sel)
			if tb.contains(x, y) {
				i := int((x - tb.X) / toolbarButtonWidth)
				return Hit{Kind: HitToolbar, ID: sel.ID, Button: toolbarButtons[i]}
			}
		}
		if handleRect(sel).contains(x, y) {
			return Hit{Kind: HitResizeHandle, ID: sel.ID}
		}
		if s.editing && sel.Contains(x, y) {
			return Hit{Kind: HitText, ID: sel.ID}
		}
	}
	if id := s.scene.BubbleAt(x, y, s.selected); id != "" {
		return Hit{Kind: HitBody, ID: id}
	}
	return Hit{Kind: HitBackground}
}

// PointerDown starts a drag, runs a toolbar button or changes the selection
// depending on what is under the pointer.
func (s *Session) PointerDown(x, y float64) Hit {
	if s.closed {
		return Hit{}
	}
	hit := s.HitTest(x, y)
	switch hit.Kind {
	case HitToolbar:
		s.runToolbarButton(hit.Button)
	case HitResizeHandle:
		b, _ := s.scene.Get(hit.ID)
		s.drag.begin(DragResize, b, x, y)
	case HitBody:
		s.Select(hit.ID)
		b, _ := s.scene.Get(hit.ID)
		s.drag.begin(DragMove, b, x, y)
	case HitBackground:
		s.Select("")
	}
	return hit
}

// PointerMove applies the drag. Geometry is always origin plus the total
// delta, never accumulated per event. Nothing happens unless the drag target
// is still the selected bubble.
func (s *Session) PointerMove(x, y float64) bool {
	if s.closed || s.drag.Mode == DragIdle {
		return false
	}
	if s.selected == "" || s.selected != s.drag.TargetID {
		return false
	}
	dx := x - s.drag.StartX
	dy := y - s.drag.StartY
	switch s.drag.Mode {
	case DragMove:
		s.scene.SetPosition(s.selected, s.drag.OriginX+dx, s.drag.OriginY+dy)
	case DragResize:
		s.scene.SetSize(s.selected,
			max(minBubbleWidth, s.drag.OriginWidth+dx),
			max(minBubbleHeight, s.drag.OriginHeight+dy))
	}
	return true
}

// PointerUp ends any drag, wherever the pointer is. A drag that changed the
// bubble becomes a single undo step.
func (s *Session) PointerUp() {
	drag := s.drag
	s.drag.reset()
	if s.closed || drag.Mode == DragIdle {
		return
	}
	after, ok := s.scene.Get(drag.TargetID)
	if !ok {
		return
	}
	before := after.Clone()
	before.X, before.Y = drag.OriginX, drag.OriginY
	before.Width, before.Height = drag.OriginWidth, drag.OriginHeight
	if before.X == after.X && before.Y == after.Y && before.Width == after.Width && before.Height == after.Height {
		return
	}
	action := ActionMoveBubble
	if drag.Mode == DragResize {
		action = ActionResizeBubble
	}
	s.recordAction(action, after, before)
}

// DragMode reports the current interaction state.
func (s *Session) DragMode() DragMode {
	return s.drag.Mode
}

func (s *Session) runToolbarButton(b ToolbarButton) {
	switch b {
	case ToolbarDelete:
		s.Delete(s.selected)
	case ToolbarCopy:
		s.Copy()
	case ToolbarEdit:
		s.StartEditing()
	}
}
