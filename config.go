package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	LogFile       string
	LogLevel      logrus.Level
	CellWidth     int
	CellHeight    int
	ExportFormat  ExportFormat
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		LogLevel:      logrus.InfoLevel,
		CellWidth:     8,
		CellHeight:    16,
		ExportFormat:  FormatPNG,
	}
}

func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}

	file, err := os.Open(filepath.Join(homeDir, ".blurbrc"))
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()

	return parseConfig(file, homeDir)
}

// parseConfig reads key=value lines. Unknown keys and bad values are skipped
// and leave the default in place.
func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "logfile", "log_file":
			config.LogFile = expandPath(value, homeDir)
		case "loglevel", "log_level":
			if level, err := logrus.ParseLevel(value); err == nil {
				config.LogLevel = level
			}
		case "cellwidth", "cell_width":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.CellWidth = n
			}
		case "cellheight", "cell_height":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.CellHeight = n
			}
		case "exportformat", "export_format", "format":
			switch ExportFormat(strings.ToLower(value)) {
			case FormatPNG:
				config.ExportFormat = FormatPNG
			case FormatWebP:
				config.ExportFormat = FormatWebP
			}
		}
	}

	return config
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places filename in the save directory, creating it if needed.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
