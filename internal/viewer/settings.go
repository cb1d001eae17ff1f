package viewer

import "github.com/kobzarvs/hexview/internal/config"

// Charset selects how bytes are shown in the character column.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetExtended
)

func (c Charset) String() string {
	if c == CharsetExtended {
		return "xASCII"
	}
	return "ASCII"
}

func (c Charset) toggle() Charset {
	if c == CharsetExtended {
		return CharsetASCII
	}
	return CharsetExtended
}

// Settings are the display switches of a session. Only Colorize and Charset
// change after startup, through their toggle commands.
type Settings struct {
	Colorize          bool
	Charset           Charset
	Raw               bool
	UnlimitedFileSize bool
}

// SettingsFromConfig derives the startup settings from the loaded configuration.
func SettingsFromConfig(opts config.ViewerOptions) Settings {
	cs := CharsetASCII
	if opts.Charset == config.CharsetExtended {
		cs = CharsetExtended
	}
	return Settings{
		Colorize:          opts.Colorize,
		Charset:           cs,
		UnlimitedFileSize: opts.UnlimitedFileSize,
	}
}
