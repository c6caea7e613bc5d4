package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	config := parseConfig(strings.NewReader(""), "/home/ink")
	assert.Equal(t, defaultConfig(), config)
}

func TestParseConfig(t *testing.T) {
	rc := `
# blurb settings
savedirectory = ~/comics
confirmations=false
logfile=~/.blurb.log
loglevel=debug
cellwidth=10
cell_height=20
exportformat=WEBP
unknown=whatever
not a setting
`
	config := parseConfig(strings.NewReader(rc), "/home/ink")

	assert.Equal(t, filepath.Join("/home/ink", "comics"), config.SaveDirectory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, filepath.Join("/home/ink", ".blurb.log"), config.LogFile)
	assert.Equal(t, logrus.DebugLevel, config.LogLevel)
	assert.Equal(t, 10, config.CellWidth)
	assert.Equal(t, 20, config.CellHeight)
	assert.Equal(t, FormatWebP, config.ExportFormat)
}

func TestParseConfigIgnoresBadValues(t *testing.T) {
	rc := "cellwidth=-3\ncellheight=abc\nloglevel=loud\nexportformat=bmp\n"
	config := parseConfig(strings.NewReader(rc), "/home/ink")

	assert.Equal(t, 8, config.CellWidth)
	assert.Equal(t, 16, config.CellHeight)
	assert.Equal(t, logrus.InfoLevel, config.LogLevel)
	assert.Equal(t, FormatPNG, config.ExportFormat)
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	path, err := config.GetSavePath("page-blurb.png")
	require.NoError(t, err)
	assert.Equal(t, "page-blurb.png", path)

	dir := t.TempDir()
	config.SaveDirectory = filepath.Join(dir, "out")
	path, err = config.GetSavePath("page-blurb.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "page-blurb.png"), path)
	assert.DirExists(t, filepath.Join(dir, "out"))
}

func TestGetSavePathReportsMkdirFailure(t *testing.T) {
	// A regular file where a parent directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	config := defaultConfig()
	config.SaveDirectory = filepath.Join(blocker, "out")
	path, err := config.GetSavePath("page-blurb.png")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create save directory")
	assert.Empty(t, path)
}
