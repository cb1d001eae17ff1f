package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	CharsetASCII    = "ascii"
	CharsetExtended = "xascii"
)

// ViewerOptions are the [viewer] settings. A zero MaxFileSize means no cap
// beyond what fits in memory.
type ViewerOptions struct {
	Colorize          bool   `toml:"colorize"`
	Charset           string `toml:"charset"`
	UnlimitedFileSize bool   `toml:"unlimited-file-size"`
	ChunkSize         int    `toml:"chunk-size"`
	MaxFileSize       int64  `toml:"max-file-size"`
	RowWidth          int    `toml:"row-width"`
	PageHeight        int    `toml:"page-height"`
	GroupSize         int    `toml:"group-size"`
	FilenameWidth     int    `toml:"filename-width"`
}

type Theme struct {
	Theme                   string `toml:"theme"`
	Foreground              string `toml:"foreground"`
	Background              string `toml:"background"`
	RowOffset               string `toml:"row-offset"`
	BytePrintable           string `toml:"byte-printable"`
	ByteNonPrintable        string `toml:"byte-non-printable"`
	ByteZero                string `toml:"byte-zero"`
	ByteCurrent             string `toml:"byte-current"`
	PromptFilename          string `toml:"prompt-filename"`
	PromptPage              string `toml:"prompt-page"`
	PromptCharsetForeground string `toml:"prompt-charset-foreground"`
	PromptCharsetBackground string `toml:"prompt-charset-background"`
	PromptValueForeground   string `toml:"prompt-value-foreground"`
	PromptValueBackground   string `toml:"prompt-value-background"`
	PromptRowForeground     string `toml:"prompt-row-foreground"`
	PromptCommand           string `toml:"prompt-command"`
	Emphasis                string `toml:"emphasis"`
	Alert                   string `toml:"alert"`
}

type Config struct {
	Viewer ViewerOptions `toml:"viewer"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Viewer: ViewerOptions{
			Colorize:          true,
			Charset:           CharsetExtended,
			UnlimitedFileSize: false,
			ChunkSize:         100 << 20,
			MaxFileSize:       0,
			RowWidth:          16,
			PageHeight:        21,
			GroupSize:         4,
			FilenameWidth:     11,
		},
		Theme: Theme{
			Theme:                   "",
			Foreground:              "#C0C0C0",
			Background:              "default",
			RowOffset:               "#00FFFF",
			BytePrintable:           "#C0C0C0",
			ByteNonPrintable:        "#808000",
			ByteZero:                "#808080",
			ByteCurrent:             "#FF00FF",
			PromptFilename:          "#FFFF00",
			PromptPage:              "#00FF00",
			PromptCharsetForeground: "#FFFFFF",
			PromptCharsetBackground: "#800000",
			PromptValueForeground:   "#FFFFFF",
			PromptValueBackground:   "#800080",
			PromptRowForeground:     "#C0C0C0",
			PromptCommand:           "#FFFFFF",
			Emphasis:                "#FFFFFF",
			Alert:                   "#FF0000",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	// Booleans default to true in places, so only explicit keys override.
	if md.IsDefined("viewer", "colorize") {
		cfg.Viewer.Colorize = userCfg.Viewer.Colorize
	}
	if md.IsDefined("viewer", "unlimited-file-size") {
		cfg.Viewer.UnlimitedFileSize = userCfg.Viewer.UnlimitedFileSize
	}
	if v := strings.ToLower(strings.TrimSpace(userCfg.Viewer.Charset)); v == CharsetASCII || v == CharsetExtended {
		cfg.Viewer.Charset = v
	}
	if userCfg.Viewer.ChunkSize > 0 {
		cfg.Viewer.ChunkSize = userCfg.Viewer.ChunkSize
	}
	if userCfg.Viewer.MaxFileSize > 0 {
		cfg.Viewer.MaxFileSize = userCfg.Viewer.MaxFileSize
	}
	// Column indices are a single hex digit wide.
	if userCfg.Viewer.RowWidth > 0 && userCfg.Viewer.RowWidth <= 16 {
		cfg.Viewer.RowWidth = userCfg.Viewer.RowWidth
	}
	if userCfg.Viewer.PageHeight > 0 {
		cfg.Viewer.PageHeight = userCfg.Viewer.PageHeight
	}
	if userCfg.Viewer.GroupSize > 0 {
		cfg.Viewer.GroupSize = userCfg.Viewer.GroupSize
	}
	if userCfg.Viewer.FilenameWidth > 0 {
		cfg.Viewer.FilenameWidth = userCfg.Viewer.FilenameWidth
	}

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.RowOffset != "" {
		dst.RowOffset = src.RowOffset
	}
	if src.BytePrintable != "" {
		dst.BytePrintable = src.BytePrintable
	}
	if src.ByteNonPrintable != "" {
		dst.ByteNonPrintable = src.ByteNonPrintable
	}
	if src.ByteZero != "" {
		dst.ByteZero = src.ByteZero
	}
	if src.ByteCurrent != "" {
		dst.ByteCurrent = src.ByteCurrent
	}
	if src.PromptFilename != "" {
		dst.PromptFilename = src.PromptFilename
	}
	if src.PromptPage != "" {
		dst.PromptPage = src.PromptPage
	}
	if src.PromptCharsetForeground != "" {
		dst.PromptCharsetForeground = src.PromptCharsetForeground
	}
	if src.PromptCharsetBackground != "" {
		dst.PromptCharsetBackground = src.PromptCharsetBackground
	}
	if src.PromptValueForeground != "" {
		dst.PromptValueForeground = src.PromptValueForeground
	}
	if src.PromptValueBackground != "" {
		dst.PromptValueBackground = src.PromptValueBackground
	}
	if src.PromptRowForeground != "" {
		dst.PromptRowForeground = src.PromptRowForeground
	}
	if src.PromptCommand != "" {
		dst.PromptCommand = src.PromptCommand
	}
	if src.Emphasis != "" {
		dst.Emphasis = src.Emphasis
	}
	if src.Alert != "" {
		dst.Alert = src.Alert
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("HEXVIEW_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "hexview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hexview"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
