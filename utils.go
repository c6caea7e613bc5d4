package main

import (
	"html"
	"math"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func (m *model) canvasRows() int {
	rows := m.height - 2 // style panel and status line
	if rows < 1 {
		rows = 1
	}
	return rows
}

// cellToCanvas maps a terminal cell to the canvas pixel at its center.
func (m *model) cellToCanvas(col, row int) (float64, float64) {
	cw, ch := m.config.CellWidth, m.config.CellHeight
	x := float64((col+m.session.panX)*cw) + float64(cw)/2
	y := float64((row+m.session.panY)*ch) + float64(ch)/2
	return x, y
}

// canvasToCell maps a canvas pixel to the screen cell that contains it.
func (m *model) canvasToCell(x, y float64) (int, int) {
	col := int(math.Floor(x/float64(m.config.CellWidth))) - m.session.panX
	row := int(math.Floor(y/float64(m.config.CellHeight))) - m.session.panY
	return col, row
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<p"))
}

var (
	rtfControl = regexp.MustCompile(`\\[a-zA-Z]+-?[0-9]* ?`)
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
)

func stripRTF(text string) string {
	text = strings.ReplaceAll(text, "\\par", "\n")
	text = strings.ReplaceAll(text, "\\line", "\n")
	text = rtfControl.ReplaceAllString(text, "")
	text = strings.NewReplacer("\\{", "{", "\\}", "}", "\\\\", "\\").Replace(text)
	return strings.NewReplacer("{", "", "}", "").Replace(text)
}

func stripHTML(text string) string {
	text = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n").Replace(text)
	return html.UnescapeString(htmlTag.ReplaceAllString(text, ""))
}

// cleanClipboardText turns whatever the system clipboard holds into plain
// bubble text with \n line endings.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = stripHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r >= 32 {
			result.WriteRune(r)
		} else if r == '\t' {
			result.WriteRune(' ')
		}
	}
	return strings.TrimRight(result.String(), "\n")
}
