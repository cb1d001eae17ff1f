package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/hexview/internal/config"
)

type colorPair struct {
	fg, bg tcell.Color
}

// Theme resolves roles to colours. Colourless rendering uses the terminal
// defaults for every role.
type Theme struct {
	fg, bg tcell.Color
	roles  map[Role]colorPair
}

func NewTheme(cfg config.Theme) Theme {
	fg := parseColor(cfg.Foreground, tcell.ColorSilver)
	bg := parseColor(cfg.Background, tcell.ColorDefault)
	pair := func(fgName, bgName string) colorPair {
		return colorPair{fg: parseColor(fgName, fg), bg: parseColor(bgName, bg)}
	}
	return Theme{
		fg: fg,
		bg: bg,
		roles: map[Role]colorPair{
			RoleText:         {fg: fg, bg: bg},
			RoleOffset:       pair(cfg.RowOffset, ""),
			RoleCurrent:      pair(cfg.ByteCurrent, ""),
			RolePrintable:    pair(cfg.BytePrintable, ""),
			RoleNonPrintable: pair(cfg.ByteNonPrintable, ""),
			RoleZero:         pair(cfg.ByteZero, ""),
			RoleFilename:     pair(cfg.PromptFilename, ""),
			RolePage:         pair(cfg.PromptPage, ""),
			RoleCharset:      pair(cfg.PromptCharsetForeground, cfg.PromptCharsetBackground),
			RoleValue:        pair(cfg.PromptValueForeground, cfg.PromptValueBackground),
			RoleRow:          pair(cfg.PromptRowForeground, cfg.PromptValueBackground),
			RoleCommand:      pair(cfg.PromptCommand, ""),
			RoleEmphasis:     pair(cfg.Emphasis, ""),
			RoleAlert:        pair(cfg.Alert, ""),
		},
	}
}

func (t Theme) pair(role Role) colorPair {
	if p, ok := t.roles[role]; ok {
		return p
	}
	return colorPair{fg: t.fg, bg: t.bg}
}

// Style returns the screen style for role.
func (t Theme) Style(role Role, colorize bool) tcell.Style {
	if !colorize {
		return tcell.StyleDefault
	}
	p := t.pair(role)
	return tcell.StyleDefault.Foreground(p.fg).Background(p.bg)
}

// Lipgloss returns the text style for role on r.
func (t Theme) Lipgloss(r *lipgloss.Renderer, role Role, colorize bool) lipgloss.Style {
	style := r.NewStyle()
	if !colorize {
		return style
	}
	p := t.pair(role)
	if hex, ok := colorHex(p.fg); ok {
		style = style.Foreground(lipgloss.Color(hex))
	}
	if hex, ok := colorHex(p.bg); ok {
		style = style.Background(lipgloss.Color(hex))
	}
	return style
}

func colorHex(c tcell.Color) (string, bool) {
	if c == tcell.ColorDefault {
		return "", false
	}
	v := c.Hex()
	if v < 0 {
		return "", false
	}
	return fmt.Sprintf("#%06X", v), true
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err != nil {
			return fallback
		}
		return tcell.NewHexColor(int32(v))
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
