package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeFileInput
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionAddBubble ActionType = iota
	ActionDeleteBubble
	ActionUpdateBubble
	ActionMoveBubble
	ActionResizeBubble
)

const (
	minBubbleWidth  = 60
	minBubbleHeight = 40

	spawnX      = 50
	spawnY      = 50
	pasteOffset = 30

	// Pixel sizes of the selection affordances. Hit testing and the terminal
	// view share these so a click lands where the handle is drawn.
	handleSize         = 16
	toolbarHeight      = 16
	toolbarButtonWidth = 24

	exportScale = 2

	numColors = 8 // Number of palette colors the style editor cycles through
)
