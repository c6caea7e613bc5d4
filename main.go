package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: blurb <image>")
		os.Exit(2)
	}
	path := os.Args[1]

	config := loadConfig()
	logger, closer, err := newLogger(config)
	if err != nil {
		log.Fatal(err)
	}

	session, err := openSession(path, logger)
	if err != nil {
		closer.Close()
		log.Fatal(err)
	}

	p := tea.NewProgram(
		initialModel(session, config),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	session.Close()
	if err != nil {
		logger.WithError(err).Error("program exited")
		closer.Close()
		log.Fatal(err)
	}
	closer.Close()
}

// openSession decodes the base illustration and starts a session over it.
// Failures are written to the session log before they are returned.
func openSession(path string, logger *logrus.Entry) (*Session, error) {
	base, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		logger.WithError(err).WithField("image", path).Error("failed to open base image")
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	session := NewSession(base, filepath.Base(path), logger)
	logger.WithField("image", path).Info("session started")
	return session, nil
}

func initialModel(session *Session, config *Config) model {
	return model{
		session: session,
		config:  config,
		mode:    ModeNormal,
		shade:   buildShade(session.Base(), config.CellWidth, config.CellHeight),
	}
}

func defaultExportName(imageName string, format ExportFormat) string {
	name := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	if name == "" {
		name = "blurb"
	}
	return name + "-blurb" + format.Ext()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case exportDoneMsg:
		m.session.EndExport()
		if msg.err != nil {
			m.session.log.WithError(msg.err).Warn("export failed")
			m.errorMessage = fmt.Sprintf("Export failed: %s (press s to retry)", msg.err)
			m.successMessage = ""
			return m, nil
		}
		absPath, _ := filepath.Abs(msg.filename)
		m.session.log.WithField("file", absPath).Info("exported")
		m.successMessage = fmt.Sprintf("Exported to %s", absPath)
		m.errorMessage = ""
		return m, nil

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "j", "down":
				if m.helpScroll < len(helpLines)-1 {
					m.helpScroll++
				}
			case "k", "up":
				if m.helpScroll > 0 {
					m.helpScroll--
				}
			default:
				m.help = false
				m.helpScroll = 0
			}
			return m, nil
		}

		switch m.mode {
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeEditing:
			return m.handleEditingKey(msg)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// A release always ends the drag, whatever mode the editor is in.
	if msg.Type == tea.MouseRelease {
		m.session.PointerUp()
		return m, nil
	}
	if m.mode != ModeNormal && m.mode != ModeEditing {
		return m, nil
	}
	x, y := m.cellToCanvas(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		if msg.Y >= m.canvasRows() {
			return m, nil
		}
		if m.mode == ModeEditing {
			if hit := m.session.HitTest(x, y); hit.Kind == HitText {
				return m, nil
			}
			m.commitEdit()
		}
		hit := m.session.PointerDown(x, y)
		m.errorMessage = ""
		if hit.Kind == HitToolbar && hit.Button == ToolbarEdit && m.session.Editing() {
			m.enterEditing()
		}
	case tea.MouseMotion:
		m.session.PointerMove(x, y)
	}
	return m, nil
}

func (m *model) enterEditing() {
	b, ok := m.session.Selected()
	if !ok || !m.session.StartEditing() {
		return
	}
	m.mode = ModeEditing
	m.editText = []rune(b.Text)
	m.editCursorPos = len(m.editText)
}

func (m *model) leaveEditing() {
	m.session.StopEditing()
	m.mode = ModeNormal
	m.editText = nil
	m.editCursorPos = 0
}

func (m *model) commitEdit() {
	m.session.SetText(string(m.editText))
	m.leaveEditing()
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	key := msg.String()
	m.errorMessage = ""

	switch key {
	case "ctrl+c", "q":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		return m, nil
	case "esc":
		s.Select("")
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7":
		s.Add(AllBubbleTypes[key[0]-'1'])
		m.successMessage = ""
		return m, nil
	case "tab":
		m.selectNext()
		return m, nil
	case "e", "enter":
		m.enterEditing()
		return m, nil
	case "c":
		m.successMessage = ""
		if s.SelectedID() != "" && s.HandleShortcut(ShortcutCopy) {
			m.successMessage = "Copied"
		}
		return m, nil
	case "p", "v":
		s.HandleShortcut(ShortcutPaste)
		m.successMessage = ""
		return m, nil
	case "d", "delete", "backspace":
		s.HandleShortcut(ShortcutDelete)
		m.successMessage = ""
		return m, nil
	case "u":
		s.Undo()
		return m, nil
	case "U", "ctrl+r":
		s.Redo()
		return m, nil
	case "s":
		if s.Exporting() {
			m.errorMessage = ErrExportBusy.Error()
			return m, nil
		}
		m.mode = ModeFileInput
		m.filename = defaultExportName(s.name, m.config.ExportFormat)
		return m, nil
	case "+", "=":
		s.AdjustFontSize(2)
	case "-", "_":
		s.AdjustFontSize(-2)
	case "B":
		s.ToggleBold()
	case "f":
		s.CycleFont()
	case ">":
		s.AdjustPadding(4)
	case "<":
		s.AdjustPadding(-4)
	case "]":
		s.AdjustLineHeight(0.1)
	case "[":
		s.AdjustLineHeight(-0.1)
	case ".":
		s.AdjustLetterSpacing(0.5)
	case ",":
		s.AdjustLetterSpacing(-0.5)
	case "o":
		s.ToggleOutline()
	case "t":
		s.CycleTextColor()
	case "g":
		s.CycleBackgroundColor()
	case "r":
		s.CycleBorderColor()
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}
	return m, nil
}

func (m *model) selectNext() {
	bubbles := m.session.scene.Snapshot()
	if len(bubbles) == 0 {
		return
	}
	next := 0
	for i, b := range bubbles {
		if b.ID == m.session.SelectedID() {
			next = (i + 1) % len(bubbles)
			break
		}
	}
	m.session.Select(bubbles[next].ID)
}

func (m model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.leaveEditing()
	case msg.Type == tea.KeyCtrlS:
		m.commitEdit()
	case msg.Type == tea.KeyCtrlV:
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %s", err)
			return m, nil
		}
		m.insertText([]rune(cleanClipboardText(text)))
	case msg.Type == tea.KeyLeft:
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
	case msg.Type == tea.KeyRight:
		if m.editCursorPos < len(m.editText) {
			m.editCursorPos++
		}
	case msg.Type == tea.KeyEnter:
		m.insertText([]rune{'\n'})
	case msg.Type == tea.KeyBackspace:
		if m.editCursorPos > 0 {
			m.editText = append(m.editText[:m.editCursorPos-1], m.editText[m.editCursorPos:]...)
			m.editCursorPos--
		}
	case msg.Type == tea.KeyDelete:
		if m.editCursorPos < len(m.editText) {
			m.editText = append(m.editText[:m.editCursorPos], m.editText[m.editCursorPos+1:]...)
		}
	case msg.Type == tea.KeySpace:
		m.insertText([]rune{' '})
	case msg.Type == tea.KeyRunes:
		m.insertText(msg.Runes)
	}
	return m, nil
}

func (m *model) insertText(r []rune) {
	text := make([]rune, 0, len(m.editText)+len(r))
	text = append(text, m.editText[:m.editCursorPos]...)
	text = append(text, r...)
	text = append(text, m.editText[m.editCursorPos:]...)
	m.editText = text
	m.editCursorPos += len(r)
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		return m, nil
	case msg.Type == tea.KeyEnter:
		filename := strings.TrimSpace(m.filename)
		if filename == "" {
			m.errorMessage = "filename is empty"
			return m, nil
		}
		format := exportFormatFor(filename, m.config.ExportFormat)
		if filepath.Ext(filename) == "" {
			filename += format.Ext()
		}
		path, err := m.config.GetSavePath(filename)
		if err != nil {
			m.session.log.WithError(err).Warn("export path unavailable")
			m.errorMessage = err.Error()
			m.mode = ModeNormal
			m.filename = ""
			return m, nil
		}
		m.filename = ""
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.pendingExport = path
			return m, nil
		}
		m.mode = ModeNormal
		return m.startExport(path)
	case msg.Type == tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		return m, nil
	case msg.Type == tea.KeyRunes:
		m.filename += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			path := m.pendingExport
			m.pendingExport = ""
			return m.startExport(path)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingExport = ""
	}
	return m, nil
}

func exportFormatFor(filename string, fallback ExportFormat) ExportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return FormatPNG
	case ".webp":
		return FormatWebP
	}
	return fallback
}

// startExport clears the selection and hands a scene snapshot to a command.
// The view renders the unselected scene before the command's result comes
// back as an exportDoneMsg.
func (m model) startExport(path string) (tea.Model, tea.Cmd) {
	bubbles, err := m.session.BeginExport()
	if err != nil {
		m.errorMessage = err.Error()
		return m, nil
	}
	m.successMessage = ""
	m.errorMessage = ""
	base := m.session.Base()
	format := exportFormatFor(path, m.config.ExportFormat)
	return m, exportCmd(base, bubbles, format, path)
}

func exportCmd(base image.Image, bubbles []Bubble, format ExportFormat, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := renderExport(base, bubbles, format)
		if err == nil {
			err = os.WriteFile(path, data, 0644)
		}
		return exportDoneMsg{filename: path, err: err}
	}
}
