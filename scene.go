package main

// Scene is the ordered set of bubbles placed over the base illustration.
// Order only breaks paint ties; the selected bubble is always painted last.
type Scene struct {
	bubbles []Bubble
}

func NewScene() *Scene {
	return &Scene{
		bubbles: make([]Bubble, 0),
	}
}

func (s *Scene) Len() int {
	return len(s.bubbles)
}

func (s *Scene) indexOf(id string) int {
	for i := range s.bubbles {
		if s.bubbles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) Get(id string) (Bubble, bool) {
	i := s.indexOf(id)
	if i == -1 {
		return Bubble{}, false
	}
	return s.bubbles[i].Clone(), true
}

func (s *Scene) Add(b Bubble) {
	s.bubbles = append(s.bubbles, b.Clone())
}

// Insert puts b at index i, clamped to the valid range. Used to restore a
// deleted bubble at its old paint position.
func (s *Scene) Insert(i int, b Bubble) {
	if i < 0 {
		i = 0
	}
	if i > len(s.bubbles) {
		i = len(s.bubbles)
	}
	s.bubbles = append(s.bubbles, Bubble{})
	copy(s.bubbles[i+1:], s.bubbles[i:])
	s.bubbles[i] = b.Clone()
}

// Update merges p into the bubble with the given id. An unknown id is
// silently ignored.
func (s *Scene) Update(id string, p Patch) {
	i := s.indexOf(id)
	if i == -1 {
		return
	}
	p.applyTo(&s.bubbles[i])
}

// Replace overwrites the stored bubble that has b's id.
func (s *Scene) Replace(b Bubble) {
	if i := s.indexOf(b.ID); i != -1 {
		s.bubbles[i] = b.Clone()
	}
}

func (s *Scene) SetPosition(id string, x, y float64) {
	s.Update(id, Patch{X: &x, Y: &y})
}

func (s *Scene) SetSize(id string, width, height float64) {
	s.Update(id, Patch{Width: &width, Height: &height})
}

// Remove deletes the bubble and returns it with its former index.
func (s *Scene) Remove(id string) (Bubble, int, bool) {
	i := s.indexOf(id)
	if i == -1 {
		return Bubble{}, -1, false
	}
	b := s.bubbles[i]
	s.bubbles = append(s.bubbles[:i], s.bubbles[i+1:]...)
	return b, i, true
}

// Snapshot returns a deep copy of all bubbles in scene order.
func (s *Scene) Snapshot() []Bubble {
	out := make([]Bubble, len(s.bubbles))
	for i, b := range s.bubbles {
		out[i] = b.Clone()
	}
	return out
}

// PaintOrder returns the bubbles back to front with the selected one last.
func (s *Scene) PaintOrder(selected string) []Bubble {
	out := make([]Bubble, 0, len(s.bubbles))
	var top *Bubble
	for i := range s.bubbles {
		if s.bubbles[i].ID == selected {
			b := s.bubbles[i].Clone()
			top = &b
			continue
		}
		out = append(out, s.bubbles[i].Clone())
	}
	if top != nil {
		out = append(out, *top)
	}
	return out
}

// BubbleAt returns the id of the top-most bubble under (x, y), or "".
func (s *Scene) BubbleAt(x, y float64, selected string) string {
	if b, ok := s.Get(selected); ok && b.Contains(x, y) {
		return b.ID
	}
	for i := len(s.bubbles) - 1; i >= 0; i-- {
		if s.bubbles[i].Contains(x, y) {
			return s.bubbles[i].ID
		}
	}
	return ""
}
