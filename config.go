package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	DataDirectory string
	Desktop       bool
	AutoLaunch    bool
	Rain          bool
	Orientation   Orientation
	ContentPath   string
	Listen        string
	Speed         float64
}

func defaultConfig() *Config {
	return &Config{
		Desktop:     true,
		AutoLaunch:  true,
		Rain:        true,
		Orientation: OrientationHorizontal,
		Listen:      ":8080",
		Speed:       1,
	}
}

// loadConfig reads ~/.termfoliorc and then applies TERMFOLIO_* overrides.
func loadConfig() *Config {
	config := defaultConfig()
	if homeDir, err := os.UserHomeDir(); err == nil {
		if file, err := os.Open(filepath.Join(homeDir, ".termfoliorc")); err == nil {
			config = parseConfig(file, homeDir)
			file.Close()
		}
	}
	config.applyEnv(os.Getenv)
	return config
}

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
		config.set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), homeDir)
	}
	return config
}

func (c *Config) set(key, value, homeDir string) {
	switch strings.ToLower(key) {
	case "datadir", "data_dir", "datadirectory":
		c.DataDirectory = expandPath(value, homeDir)
	case "desktop":
		c.Desktop = strings.ToLower(value) == "true"
	case "autolaunch", "auto_launch":
		c.AutoLaunch = strings.ToLower(value) == "true"
	case "rain":
		c.Rain = strings.ToLower(value) == "true"
	case "orientation", "rain_orientation":
		if strings.HasPrefix(strings.ToLower(value), "v") {
			c.Orientation = OrientationVertical
		} else {
			c.Orientation = OrientationHorizontal
		}
	case "content":
		c.ContentPath = expandPath(value, homeDir)
	case "listen":
		c.Listen = value
	case "speed":
		if v, err := strconv.ParseFloat(value, 64); err == nil && v > 0 {
			c.Speed = v
		}
	}
}

// applyEnv lets TERMFOLIO_<KEY> override the rc file. PORT sets the listen
// address the way hosting platforms expect.
func (c *Config) applyEnv(getenv func(string) string) {
	homeDir, _ := os.UserHomeDir()
	for _, key := range []string{"datadir", "desktop", "autolaunch", "rain", "orientation", "content", "listen", "speed"} {
		if v := getenv("TERMFOLIO_" + strings.ToUpper(key)); v != "" {
			c.set(key, v, homeDir)
		}
	}
	if port := getenv("PORT"); port != "" {
		c.Listen = ":" + port
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetDataPath returns the directory for the stats database, falling back
// to ~/.termfolio.
func (c *Config) GetDataPath() string {
	if c.DataDirectory != "" {
		return c.DataDirectory
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".termfolio")
}

// GetExportPath places exported views in the data directory.
func (c *Config) GetExportPath(filename string) string {
	dir := c.GetDataPath()
	os.MkdirAll(dir, 0755)
	return filepath.Join(dir, filename)
}
