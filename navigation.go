package main

import tea "github.com/charmbracelet/bubbletea"

// Nudge moves the selected bubble by (dx, dy) canvas pixels.
func (s *Session) Nudge(dx, dy float64) {
	b, ok := s.Selected()
	if !ok || s.editing {
		return
	}
	x, y := b.X+dx, b.Y+dy
	s.Update(b.ID, Patch{X: &x, Y: &y})
}

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.session.SelectedID() != "" {
		m.handleNudge(key, speed)
	} else {
		m.handlePan(key, speed)
	}
	return *m, nil
}

func (m *model) handlePan(key string, speed int) {
	s := m.session
	switch key {
	case "h", "left", "H", "shift+left":
		s.panX -= speed
	case "l", "right", "L", "shift+right":
		s.panX += speed
	case "k", "up", "K", "shift+up":
		s.panY -= speed
	case "j", "down", "J", "shift+down":
		s.panY += speed
	}
	if s.panX < 0 {
		s.panX = 0
	}
	if s.panY < 0 {
		s.panY = 0
	}
}

func (m *model) handleNudge(key string, speed int) {
	step := float64(speed)
	switch key {
	case "h", "left", "H", "shift+left":
		m.session.Nudge(-step, 0)
	case "l", "right", "L", "shift+right":
		m.session.Nudge(step, 0)
	case "k", "up", "K", "shift+up":
		m.session.Nudge(0, -step)
	case "j", "down", "J", "shift+down":
		m.session.Nudge(0, step)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 10
	default:
		return 1
	}
}
