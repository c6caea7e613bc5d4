package main

import (
	"image"
	"reflect"

	"github.com/sirupsen/logrus"
)

// Session is one editing session over a single base illustration. It owns
// the scene, the selection, the clipboard, the drag state and the undo
// history. All methods are called from the UI event loop.
type Session struct {
	scene     *Scene
	base      image.Image
	name      string
	selected  string
	editing   bool
	textFocus bool
	clipboard *Bubble
	drag      Interaction
	exporting bool
	closed    bool
	undoStack []Action
	redoStack []Action
	panX      int
	panY      int
	log       *logrus.Entry
}

func NewSession(base image.Image, name string, log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Session{
		scene:     NewScene(),
		base:      base,
		name:      name,
		undoStack: []Action{},
		redoStack: []Action{},
		log:       log.WithField("image", name),
	}
}

func (s *Session) Scene() *Scene {
	return s.scene
}

func (s *Session) Base() image.Image {
	return s.base
}

// CanvasSize is the base illustration's native size in pixels.
func (s *Session) CanvasSize() (int, int) {
	if s.base == nil {
		return 0, 0
	}
	b := s.base.Bounds()
	return b.Dx(), b.Dy()
}

// Add creates a bubble of type t, appends it and selects it.
func (s *Session) Add(t BubbleType) string {
	if s.closed {
		return ""
	}
	b := NewBubble(t)
	s.scene.Add(b)
	s.recordAction(ActionAddBubble, b, b)
	s.Select(b.ID)
	s.log.WithFields(logrus.Fields{"id": b.ID, "type": t}).Debug("bubble added")
	return b.ID
}

// Update merges p into bubble id and records an undo step when anything
// changed. Unknown ids are ignored.
func (s *Session) Update(id string, p Patch) {
	before, ok := s.scene.Get(id)
	if !ok {
		return
	}
	s.scene.Update(id, p)
	after, _ := s.scene.Get(id)
	if reflect.DeepEqual(before, after) {
		return
	}
	s.recordAction(ActionUpdateBubble, after, before)
}

// Delete removes bubble id. Deleting the selected bubble clears the
// selection; any other selection is left alone.
func (s *Session) Delete(id string) {
	b, idx, ok := s.scene.Remove(id)
	if !ok {
		return
	}
	data := DeleteBubbleData{Bubble: b, Index: idx}
	s.recordAction(ActionDeleteBubble, data, data)
	if s.selected == id {
		s.Select("")
	}
	s.log.WithField("id", id).Debug("bubble deleted")
}

// Select makes id the current selection; "" clears it. A selection change
// ends text editing. Unknown ids clear the selection.
func (s *Session) Select(id string) {
	if id != "" {
		if _, ok := s.scene.Get(id); !ok {
			id = ""
		}
	}
	if id == s.selected {
		return
	}
	s.selected = id
	s.editing = false
	s.textFocus = false
}

func (s *Session) SelectedID() string {
	return s.selected
}

func (s *Session) Selected() (Bubble, bool) {
	if s.selected == "" {
		return Bubble{}, false
	}
	return s.scene.Get(s.selected)
}

// Copy snapshots the selected bubble into the clipboard. It reports false,
// leaving the clipboard alone, when nothing is selected.
func (s *Session) Copy() bool {
	b, ok := s.Selected()
	if !ok {
		return false
	}
	c := b.Clone()
	s.clipboard = &c
	return true
}

// Paste adds a copy of the clipboard with a new id, offset from the position
// stored at copy time, and selects it. The clipboard itself is unchanged so
// repeated pastes land on the same spot.
func (s *Session) Paste() (string, bool) {
	if s.closed || s.clipboard == nil {
		return "", false
	}
	b := s.clipboard.Clone()
	b.ID = newBubbleID()
	b.X += pasteOffset
	b.Y += pasteOffset
	s.scene.Add(b)
	s.recordAction(ActionAddBubble, b, b)
	s.Select(b.ID)
	return b.ID, true
}

func (s *Session) HasClipboard() bool {
	return s.clipboard != nil
}

// StartEditing puts the selected bubble into text edit mode.
func (s *Session) StartEditing() bool {
	if s.closed || s.selected == "" {
		return false
	}
	s.editing = true
	s.textFocus = true
	return true
}

func (s *Session) StopEditing() {
	s.editing = false
	s.textFocus = false
}

func (s *Session) Editing() bool {
	return s.editing
}

// SetTextFocus marks whether a text input owns the keyboard.
func (s *Session) SetTextFocus(focused bool) {
	s.textFocus = focused
}

// SetText replaces the text of the selected bubble. The stored value is
// kept as typed, even when empty.
func (s *Session) SetText(text string) {
	if s.selected == "" {
		return
	}
	s.Update(s.selected, Patch{Text: &text})
}

type Shortcut int

const (
	ShortcutCopy Shortcut = iota
	ShortcutPaste
	ShortcutDelete
)

// HandleShortcut runs a clipboard/delete shortcut. It returns false without
// doing anything while a text input has focus so the key reaches the input.
func (s *Session) HandleShortcut(sc Shortcut) bool {
	if s.textFocus || s.closed {
		return false
	}
	switch sc {
	case ShortcutCopy:
		s.Copy()
	case ShortcutPaste:
		s.Paste()
	case ShortcutDelete:
		if s.selected != "" {
			s.Delete(s.selected)
		}
	}
	return true
}

// Close ends the session. The drag state is dropped and later pointer
// events are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.drag.reset()
	s.closed = true
	s.log.Debug("session closed")
}
