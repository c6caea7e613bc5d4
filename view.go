package main

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

var (
	statusStyle = lipgloss.NewStyle().Reverse(true)
	panelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	busyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// shadeRamp runs from light to dark; darker pixels get denser glyphs.
var shadeRamp = []rune(" .:-=+*#%@")

// buildShade reduces the base illustration to one glyph per cell.
func buildShade(base image.Image, cellWidth, cellHeight int) [][]rune {
	if base == nil || base.Bounds().Empty() {
		return nil
	}
	b := base.Bounds()
	cols := int(math.Ceil(float64(b.Dx()) / float64(cellWidth)))
	rows := int(math.Ceil(float64(b.Dy()) / float64(cellHeight)))
	gray := imaging.Grayscale(imaging.Resize(base, cols, rows, imaging.Box))

	shade := make([][]rune, rows)
	for y := 0; y < rows; y++ {
		shade[y] = make([]rune, cols)
		for x := 0; x < cols; x++ {
			lum := gray.NRGBAAt(x, y).R
			idx := (255 - int(lum)) * (len(shadeRamp) - 1) / 255
			shade[y][x] = shadeRamp[idx]
		}
	}
	return shade
}

type borderRunes struct {
	h, v           rune
	tl, tr, br, bl rune
}

func bubbleBorder(shape Shape) (borderRunes, bool) {
	round := func(r float64, yes, no rune) rune {
		if r > 0 || shape.Ellipse {
			return yes
		}
		return no
	}
	c := shape.Corners
	switch {
	case len(shape.Clip) > 0:
		return borderRunes{h: '^', v: '>', tl: '*', tr: '*', br: '*', bl: '*'}, true
	case shape.Border == BorderNone:
		return borderRunes{}, false
	case shape.Border == BorderDashed:
		return borderRunes{h: '╌', v: '╎',
			tl: round(c[0], '╭', '┌'), tr: round(c[1], '╮', '┐'),
			br: round(c[2], '╯', '┘'), bl: round(c[3], '╰', '└')}, true
	default:
		return borderRunes{h: '─', v: '│',
			tl: round(c[0], '╭', '┌'), tr: round(c[1], '╮', '┐'),
			br: round(c[2], '╯', '┘'), bl: round(c[3], '╰', '└')}, true
	}
}

type cellGrid [][]rune

func newCellGrid(cols, rows int) cellGrid {
	g := make(cellGrid, rows)
	for i := range g {
		g[i] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g cellGrid) set(col, row int, r rune) {
	if row >= 0 && row < len(g) && col >= 0 && col < len(g[row]) {
		g[row][col] = r
	}
}

func (g cellGrid) text(col, row int, s string) {
	for i, r := range []rune(s) {
		g.set(col+i, row, r)
	}
}

// cellRect returns the inclusive cell bounds covered by a bubble.
func (m *model) cellRect(b Bubble) (c0, r0, c1, r1 int) {
	c0, r0 = m.canvasToCell(b.X, b.Y)
	c1, r1 = m.canvasToCell(b.X+b.Width-0.001, b.Y+b.Height-0.001)
	return
}

func (m *model) renderCanvas(cols, rows int) []string {
	g := newCellGrid(cols, rows)
	s := m.session
	for row := 0; row < rows; row++ {
		sy := row + s.panY
		if sy < 0 || sy >= len(m.shade) {
			continue
		}
		for col := 0; col < cols; col++ {
			sx := col + s.panX
			if sx >= 0 && sx < len(m.shade[sy]) {
				g[row][col] = m.shade[sy][sx]
			}
		}
	}

	selected := s.SelectedID()
	for _, b := range s.scene.PaintOrder(selected) {
		isSelected := b.ID == selected
		editing := isSelected && s.Editing()
		m.drawBubble(g, b, isSelected, editing)
	}
	if b, ok := s.Selected(); ok {
		m.drawAffordances(g, b)
	}

	lines := make([]string, rows)
	for i := range g {
		lines[i] = string(g[i])
	}
	return lines
}

func (m *model) drawBubble(g cellGrid, b Bubble, selected, editing bool) {
	v := Render(b, editing)
	c0, r0, c1, r1 := m.cellRect(b)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			g.set(col, row, ' ')
		}
	}

	br, hasBorder := bubbleBorder(v.Shape)
	if selected {
		br, hasBorder = borderRunes{h: '#', v: '#', tl: '#', tr: '#', br: '#', bl: '#'}, true
	}
	if hasBorder {
		for col := c0 + 1; col < c1; col++ {
			g.set(col, r0, br.h)
			g.set(col, r1, br.h)
		}
		for row := r0 + 1; row < r1; row++ {
			g.set(c0, row, br.v)
			g.set(c1, row, br.v)
		}
		g.set(c0, r0, br.tl)
		g.set(c1, r0, br.tr)
		g.set(c1, r1, br.br)
		g.set(c0, r1, br.bl)
	}

	content := v.Text.Content
	if editing {
		content = string(m.editText[:m.editCursorPos]) + "█" + string(m.editText[m.editCursorPos:])
	}
	inner := c1 - c0 - 1
	if inner < 1 {
		return
	}
	lines := wrapText(content, float64(inner), func(s string) float64 {
		return float64(len([]rune(s)))
	})
	height := r1 - r0 - 1
	top := r0 + 1 + (height-len(lines))/2
	for i, line := range lines {
		row := top + i
		if row <= r0 || row >= r1 {
			continue
		}
		runes := []rune(line)
		if len(runes) > inner {
			runes = runes[:inner]
		}
		g.text(c0+1+(inner-len(runes))/2, row, string(runes))
	}
}

// drawAffordances paints the toolbar and resize handle of the selected
// bubble. These only exist on screen, never in an export.
func (m *model) drawAffordances(g cellGrid, b Bubble) {
	hr := handleRect(b)
	hc, hrow := m.canvasToCell(hr.X+hr.W/2, hr.Y+hr.H/2)
	g.set(hc, hrow, '◢')

	if m.session.Editing() {
		return
	}
	tb := toolbarRect(b)
	for i, button := range toolbarButtons {
		left := tb.X + float64(i*toolbarButtonWidth)
		c0, row := m.canvasToCell(left, tb.Y+tb.H/2)
		c1, _ := m.canvasToCell(left+toolbarButtonWidth-0.001, tb.Y+tb.H/2)
		mid, _ := m.canvasToCell(left+toolbarButtonWidth/2, tb.Y+tb.H/2)
		if c1 > c0 {
			g.set(c0, row, '[')
			g.set(c1, row, ']')
		}
		g.set(mid, row, []rune(button.Label())[0])
	}
}

func (m *model) stylePanel() string {
	if !m.session.StyleEditable() {
		return ""
	}
	b, _ := m.session.Selected()
	st := ResolveStyle(b)
	outline := "off"
	if st.TextStrokeWidth > 0 {
		outline = fmt.Sprintf("%g %s", st.TextStrokeWidth, st.TextStrokeColor)
	}
	return panelStyle.Render(fmt.Sprintf(
		"%s %dx%d | size %g | %s | %s | pad %g | lh %.1f | ls %g | text %s | fill %s | border %s | outline %s",
		b.Type, int(b.Width), int(b.Height), st.FontSize, st.FontWeight, st.FontFamily, st.Padding,
		st.LineHeight, st.LetterSpacing, st.TextColor, st.BackgroundColor, st.BorderColor, outline))
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := m.width
	if width < 1 {
		width = 1
	}
	rows := m.canvasRows()

	var result strings.Builder
	for _, line := range m.renderCanvas(width, rows) {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.stylePanel())
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	s := m.session
	var status string
	switch m.mode {
	case ModeEditing:
		status = "Mode: EDIT | Enter=newline, Ctrl+V=paste, Ctrl+S=save, Esc=cancel"
	case ModeFileInput:
		status = fmt.Sprintf("Mode: FILE | Export filename: %s | Enter=confirm, Esc=cancel", m.filename)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? Unexported changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingExport)
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		status = fmt.Sprintf("Mode: %s | Bubbles: %d", m.modeString(), s.scene.Len())
		if drag := s.DragMode(); drag != DragIdle {
			status += " | " + drag.String()
		}
		if m.successMessage != "" {
			status += " | " + m.successMessage
		}
		if m.errorMessage == "" && m.successMessage == "" {
			status += " | 1-7 add, ? help, q quit"
		}
	}

	out := statusStyle.Render(status)
	if s.Exporting() {
		out += " " + busyStyle.Render("EXPORTING...")
	}
	if m.errorMessage != "" {
		out += " " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return out
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"blurb Help",
	"==========",
	"",
	"Bubbles:",
	"--------",
	"  1-7              Add SPEECH, THOUGHT, SHOUT, BOX, WHISPER, FLASH, PLAIN_TEXT",
	"  Mouse drag       Move a bubble; drag ◢ to resize",
	"  Click background Clear selection",
	"  Tab              Select next bubble",
	"  e/Enter          Edit text of selected bubble",
	"  c                Copy selected bubble",
	"  p                Paste copied bubble (offset 30,30)",
	"  d/Delete         Delete selected bubble",
	"  h/j/k/l, arrows  Nudge selected bubble (Shift = 10px), pan when none selected",
	"",
	"Style:",
	"------",
	"  +/-              Font size",
	"  B                Toggle bold",
	"  f                Cycle font",
	"  </>              Padding",
	"  [/]              Line height",
	"  ,/.              Letter spacing",
	"  o                Toggle text outline",
	"  t/g/r            Cycle text/fill/border color",
	"",
	"Editing:",
	"--------",
	"  Enter            Newline",
	"  Ctrl+V           Paste system clipboard text",
	"  Ctrl+S           Save text",
	"  Esc              Cancel",
	"",
	"General:",
	"--------",
	"  s                Export flattened image",
	"  u/U              Undo/redo",
	"  Esc              Clear selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	start := m.helpScroll
	if start > len(helpLines) {
		start = len(helpLines)
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n")
}
