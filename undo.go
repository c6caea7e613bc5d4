package main

func (s *Session) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	s.undoStack = append(s.undoStack, action)
	s.redoStack = s.redoStack[:0]
}

func (s *Session) CanUndo() bool {
	return len(s.undoStack) > 0
}

func (s *Session) CanRedo() bool {
	return len(s.redoStack) > 0
}

func (s *Session) Undo() {
	if s.closed || len(s.undoStack) == 0 {
		return
	}

	lastIndex := len(s.undoStack) - 1
	action := s.undoStack[lastIndex]
	s.undoStack = s.undoStack[:lastIndex]

	switch action.Type {
	case ActionAddBubble:
		data := action.Data.(Bubble)
		s.scene.Remove(data.ID)
		if s.selected == data.ID {
			s.Select("")
		}
	case ActionDeleteBubble:
		data := action.Inverse.(DeleteBubbleData)
		s.scene.Insert(data.Index, data.Bubble)
	case ActionUpdateBubble, ActionMoveBubble, ActionResizeBubble:
		s.scene.Replace(action.Inverse.(Bubble))
	}

	s.redoStack = append(s.redoStack, action)
}

func (s *Session) Redo() {
	if s.closed || len(s.redoStack) == 0 {
		return
	}

	lastIndex := len(s.redoStack) - 1
	action := s.redoStack[lastIndex]
	s.redoStack = s.redoStack[:lastIndex]

	switch action.Type {
	case ActionAddBubble:
		s.scene.Add(action.Data.(Bubble))
	case ActionDeleteBubble:
		data := action.Data.(DeleteBubbleData)
		s.scene.Remove(data.Bubble.ID)
		if s.selected == data.Bubble.ID {
			s.Select("")
		}
	case ActionUpdateBubble, ActionMoveBubble, ActionResizeBubble:
		s.scene.Replace(action.Data.(Bubble))
	}

	s.undoStack = append(s.undoStack, action)
}
