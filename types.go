package main

type model struct {
	width          int
	height         int
	session        *Session
	mode           Mode
	help           bool
	helpScroll     int
	editText       []rune
	editCursorPos  int
	filename       string
	confirmAction  ConfirmAction
	errorMessage   string
	successMessage string
	config         *Config
	pendingExport  string
	shade          [][]rune
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type DeleteBubbleData struct {
	Bubble Bubble
	Index  int
}

type exportDoneMsg struct {
	filename string
	err      error
}
