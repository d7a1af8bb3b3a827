package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vovakirdan/tui-minilab/internal/core"
)

// ErrNoColor is returned when the accelerated path cannot style output.
var ErrNoColor = errors.New("render: terminal has no colour support")

// palette maps core colours to ANSI colour indexes.
var palette = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorGray:         "245",
}

// Accelerated renders styled runs through a lipgloss renderer and caches
// each styled run as a texture.
type Accelerated struct {
	renderer *lipgloss.Renderer
	cache    *TextureCache
	styles   map[core.Color]lipgloss.Style
	backdrop string
	width    int
	released bool
}

// NewAccelerated creates an accelerated backend. A nil renderer uses the
// process default; SSH hosts pass a per-connection renderer.
func NewAccelerated(r *lipgloss.Renderer, cacheCap int) *Accelerated {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Accelerated{
		renderer: r,
		cache:    NewTextureCache(cacheCap),
	}
}

// Mode returns ModeAccelerated.
func (a *Accelerated) Mode() Mode {
	return ModeAccelerated
}

// Cache exposes the texture cache.
func (a *Accelerated) Cache() *TextureCache {
	return a.cache
}

// Init builds the styles and pins the blank row used as the backdrop.
func (a *Accelerated) Init(width, height int) error {
	if a.renderer.ColorProfile() == termenv.Ascii {
		return ErrNoColor
	}
	a.released = false
	a.styles = make(map[core.Color]lipgloss.Style, len(palette)+1)
	a.styles[core.ColorDefault] = a.renderer.NewStyle()
	for c, code := range palette {
		a.styles[c] = a.renderer.NewStyle().Foreground(lipgloss.Color(code))
	}
	a.Resize(width, height)
	return nil
}

// Resize swaps the pinned backdrop for the new width.
func (a *Accelerated) Resize(width, height int) {
	a.width = max(width, 0)
	blank := strings.Repeat(" ", a.width)
	key := textureKey(core.ColorDefault, blank)
	if key == a.backdrop {
		return
	}
	if a.backdrop != "" {
		a.cache.Unreserve(a.backdrop)
	}
	a.backdrop = key
	a.cache.Reserve(key, a.style(core.ColorDefault).Render(blank))
}

// Draw converts the screen to a styled string, grouping adjacent cells of
// the same colour into one run.
func (a *Accelerated) Draw(s *core.Screen) (string, error) {
	if a.released {
		return "", ErrReleased
	}

	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(a.texture(color, run.String()))
		}
	}
	return sb.String(), nil
}

func (a *Accelerated) texture(c core.Color, text string) string {
	key := textureKey(c, text)
	if out, ok := a.cache.Get(key); ok {
		return out
	}
	out := a.style(c).Render(text)
	a.cache.Put(key, out)
	return out
}

func (a *Accelerated) style(c core.Color) lipgloss.Style {
	if st, ok := a.styles[c]; ok {
		return st
	}
	return a.styles[core.ColorDefault]
}

// Restore drops every texture created before the loss and rebuilds the
// pinned backdrop.
func (a *Accelerated) Restore() error {
	if a.released {
		return ErrReleased
	}
	if a.renderer.ColorProfile() == termenv.Ascii {
		return ErrNoColor
	}
	a.cache.Clear()
	a.backdrop = ""
	a.Resize(a.width, 0)
	return nil
}

// Release frees the textures.
func (a *Accelerated) Release() error {
	if a.released {
		return nil
	}
	a.released = true
	a.cache.Clear()
	a.backdrop = ""
	return nil
}

func textureKey(c core.Color, text string) string {
	return strconv.Itoa(int(c)) + "\x00" + text
}

// NewFactory returns a Factory that builds accelerated backends on r and
// fallback backends otherwise.
func NewFactory(r *lipgloss.Renderer, cacheCap int) Factory {
	return func(m Mode) (Backend, error) {
		if m == ModeAccelerated {
			return NewAccelerated(r, cacheCap), nil
		}
		return NewFallback(), nil
	}
}
