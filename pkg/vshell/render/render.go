// Package render turns the <dir>/<file> markers in vshell output into text
// for a terminal.
package render

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var tagPattern = regexp.MustCompile(`<dir>(.*?)</dir>|<file>(.*?)</file>`)

// Renderer strips or colorizes tagged names.
type Renderer struct {
	color bool
	dir   lipgloss.Style
	file  lipgloss.Style
}

// New returns a renderer writing for w. With color false tags are only
// stripped; with color true directories are bold blue regardless of what
// w is.
func New(w io.Writer, color bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		color: color,
		dir:   lr.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		file:  lr.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Plain returns a renderer that only strips tags.
func Plain() *Renderer {
	return New(io.Discard, false)
}

// Line renders one output line.
func (r *Renderer) Line(s string) string {
	return tagPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := tagPattern.FindStringSubmatch(m)
		if strings.HasPrefix(m, "<dir>") {
			if r.color {
				return r.dir.Render(sub[1])
			}
			return sub[1]
		}
		if r.color {
			return r.file.Render(sub[2])
		}
		return sub[2]
	})
}

// Lines renders every line.
func (r *Renderer) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = r.Line(l)
	}
	return out
}

// UseColor decides whether to colorize for a color mode of "auto",
// "always" or "never".
func UseColor(mode string, isTerminal bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}
