package sokoban

import (
	"math/rand"

	"github.com/vovakirdan/sokoban/internal/core"
)

const (
	confettiCount   = 60
	confettiLife    = 90 // ticks
	confettiGravity = 0.02
)

var (
	confettiGlyphs = []rune{'*', '+', '•', '✦', '°'}
	confettiColors = []core.Color{
		core.ColorBrightRed, core.ColorBrightYellow, core.ColorBrightGreen,
		core.ColorBrightCyan, core.ColorBrightMagenta, core.ColorOrange,
	}
)

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  rune
	color  core.Color
	life   int
}

// celebration is the confetti burst shown after a level is solved.
type celebration struct {
	particles []particle
}

// burst launches confetti upward from the bottom center of a w*h area.
func (c *celebration) burst(rng *rand.Rand, w, h int) {
	c.particles = c.particles[:0]
	for range confettiCount {
		c.particles = append(c.particles, particle{
			x:     float64(w)/2 + (rng.Float64()-0.5)*float64(w)/3,
			y:     float64(h) - 1,
			vx:    (rng.Float64() - 0.5) * 1.2,
			vy:    -0.5 - rng.Float64()*0.6,
			glyph: confettiGlyphs[rng.Intn(len(confettiGlyphs))],
			color: confettiColors[rng.Intn(len(confettiColors))],
			life:  confettiLife/2 + rng.Intn(confettiLife/2),
		})
	}
}

// step advances every particle by one tick and drops dead ones.
func (c *celebration) step() {
	alive := c.particles[:0]
	for _, p := range c.particles {
		p.x += p.vx
		p.y += p.vy
		p.vy += confettiGravity
		p.vx *= 0.98
		p.life--
		if p.life > 0 {
			alive = append(alive, p)
		}
	}
	c.particles = alive
}

func (c *celebration) active() bool {
	return len(c.particles) > 0
}

func (c *celebration) clear() {
	c.particles = c.particles[:0]
}

func (c *celebration) render(dst *core.Screen) {
	for _, p := range c.particles {
		dst.SetWithColor(int(p.x), int(p.y), p.glyph, p.color)
	}
}
