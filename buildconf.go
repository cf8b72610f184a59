package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfPath = "blog.yaml"

// BuildConf says where the generator reads from and writes to. The site's
// identity is compiled in; see blogConfig.
type BuildConf struct {
	ContentDir   string `yaml:"content"`
	OutDir       string `yaml:"output"`
	ThemeDir     string `yaml:"theme"`
	ResourcesDir string `yaml:"resources"`

	// HighlightStyle is the chroma style the token stylesheet is built from.
	HighlightStyle string `yaml:"highlightStyle"`
	TabWidth       int    `yaml:"tabWidth"`
}

// readConf loads the YAML build file. A missing file is not an error: the
// defaults apply, relative to the directory the file would have been in.
func readConf(fileName string, logger *slog.Logger) (*BuildConf, error) {
	conf := BuildConf{}

	rawConf, err := os.ReadFile(fileName)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("No build file, using defaults", "path", fileName)
	case err != nil:
		return nil, fmt.Errorf("read build file: %w", err)
	default:
		if err := yaml.Unmarshal(rawConf, &conf); err != nil {
			return nil, fmt.Errorf("parse build file %s: %w", fileName, err)
		}
	}

	// Populate with defaults
	if len(conf.ContentDir) == 0 {
		conf.ContentDir = "Content"
	}
	if len(conf.OutDir) == 0 {
		conf.OutDir = "Output"
	}
	if len(conf.ThemeDir) == 0 {
		conf.ThemeDir = "Theme"
	}
	if len(conf.ResourcesDir) == 0 {
		conf.ResourcesDir = "Resources"
	}
	if len(conf.HighlightStyle) == 0 {
		conf.HighlightStyle = "github"
	}
	if conf.TabWidth < 0 {
		return nil, fmt.Errorf("parse build file %s: negative tabWidth %d", fileName, conf.TabWidth)
	}

	// Normalize relative paths because the executable can be called from anywhere
	baseDir := filepath.Dir(fileName)
	conf.ContentDir = normalizePath(conf.ContentDir, baseDir, logger)
	conf.OutDir = normalizePath(conf.OutDir, baseDir, logger)
	conf.ThemeDir = normalizePath(conf.ThemeDir, baseDir, logger)
	conf.ResourcesDir = normalizePath(conf.ResourcesDir, baseDir, logger)

	return &conf, nil
}

func normalizePath(path, baseDir string, logger *slog.Logger) string {
	if !filepath.IsAbs(path) {
		absPath := filepath.Join(baseDir, path)
		logger.Debug("Normalizing path", "path", path, "normalized", absPath)
		return absPath
	}
	return path
}
