package scene

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a character grid drawn either with braille micro-pixels (2x4
// per cell) or with plain runes. Every cell remembers the target that
// painted it last so mouse positions can be resolved to gestures.
type Canvas struct {
	w, h  int       // in cells
	mask  [][]uint8 // per-cell 8-bit braille mask
	text  [][]rune  // explicit rune, overrides the mask
	owner [][]int   // target index, -1 for none
	color [][]string
}

// NewCanvas returns an empty w x h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{w: w, h: h}
	c.mask = make([][]uint8, h)
	c.text = make([][]rune, h)
	c.owner = make([][]int, h)
	c.color = make([][]string, h)
	for y := 0; y < h; y++ {
		c.mask[y] = make([]uint8, w)
		c.text[y] = make([]rune, w)
		c.owner[y] = make([]int, w)
		c.color[y] = make([]string, w)
		for x := range c.owner[y] {
			c.owner[y][x] = -1
		}
	}
	return c
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// MicroSize returns the canvas size in braille micro-pixels.
func (c *Canvas) MicroSize() (int, int) { return c.w * 2, c.h * 4 }

// Hit returns the target painted at cell x,y.
func (c *Canvas) Hit(x, y int) (int, bool) {
	if c == nil || x < 0 || y < 0 || x >= c.w || y >= c.h {
		return -1, false
	}
	o := c.owner[y][x]
	return o, o >= 0
}

// Owners returns the set of target indexes present on the canvas, sorted.
func (c *Canvas) Owners() []int {
	seen := map[int]bool{}
	for y := range c.owner {
		for _, o := range c.owner[y] {
			if o >= 0 {
				seen[o] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Ints(out)
	return out
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (c *Canvas) setPixel(mx, my, owner int, color string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	c.mask[cy][cx] |= bit
	c.owner[cy][cx] = owner
	c.color[cy][cx] = color
}

// line draws a line on the microgrid using Bresenham
func (c *Canvas) line(x0, y0, x1, y1, owner int, color string) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.setPixel(x0, y0, owner, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillPolygon fills rings in micro coords with the even-odd rule, so holes
// stay empty, then strokes the ring edges.
func (c *Canvas) fillPolygon(rings [][][2]int, owner int, color string) {
	minY, maxY := 1<<31-1, -1<<31
	for _, r := range rings {
		for _, p := range r {
			minY = min(minY, p[1])
			maxY = max(maxY, p[1])
		}
	}
	_, hMic := c.MicroSize()
	minY, maxY = max(minY, 0), min(maxY, hMic-1)
	for yMic := minY; yMic <= maxY; yMic++ {
		var xs []int
		for _, r := range rings {
			for i := 0; i < len(r); i++ {
				a := r[i]
				b := r[(i+1)%len(r)]
				if a[1] == b[1] { // horizontal edge: skip
					continue
				}
				y0, y1 := a[1], b[1]
				x0, x1 := a[0], b[0]
				if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
					t := float64(yMic-y0) / float64(y1-y0)
					xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= xs[i+1]; xMic++ {
				c.setPixel(xMic, yMic, owner, color)
			}
		}
	}
	for _, r := range rings {
		for i := 0; i < len(r); i++ {
			a := r[i]
			b := r[(i+1)%len(r)]
			c.line(a[0], a[1], b[0], b[1], owner, color)
		}
	}
}

// cell writes one rune at cell coords.
func (c *Canvas) cell(x, y int, r rune, owner int, color string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.text[y][x] = r
	c.color[y][x] = color
	if owner >= 0 {
		c.owner[y][x] = owner
	}
}

// write places s starting at cell x,y, clipped to the canvas.
func (c *Canvas) write(x, y int, s string, owner int, color string) {
	for i, r := range []rune(s) {
		c.cell(x+i, y, r, owner, color)
	}
}

// region marks a rectangle of cells as belonging to owner without drawing.
func (c *Canvas) region(x, y, w, h, owner int) {
	for yy := max(0, y); yy < min(c.h, y+h); yy++ {
		for xx := max(0, x); xx < min(c.w, x+w); xx++ {
			c.owner[yy][xx] = owner
		}
	}
}

// blit copies src onto c with its top-left corner at cell ox,oy.
func (c *Canvas) blit(src *Canvas, ox, oy int) {
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			tx, ty := ox+x, oy+y
			if tx < 0 || ty < 0 || tx >= c.w || ty >= c.h {
				continue
			}
			if src.mask[y][x] == 0 && src.text[y][x] == 0 && src.owner[y][x] < 0 {
				continue
			}
			c.mask[ty][tx] = src.mask[y][x]
			c.text[ty][tx] = src.text[y][x]
			c.owner[ty][tx] = src.owner[y][x]
			c.color[ty][tx] = src.color[y][x]
		}
	}
}

// Text returns the canvas runes without styling, one string per row.
func (c *Canvas) Text() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		row := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			row[x] = c.glyph(x, y)
		}
		out[y] = string(row)
	}
	return out
}

func (c *Canvas) glyph(x, y int) rune {
	if r := c.text[y][x]; r != 0 {
		return r
	}
	if m := c.mask[y][x]; m != 0 {
		return rune(0x2800 + int(m))
	}
	return ' '
}

// Render styles the canvas. Cells owned by highlight are drawn in the
// hover colour; pass -1 for no highlight. Consecutive cells with the same
// colour share one style run.
func (c *Canvas) Render(highlight int) string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		runColor := ""
		var run []rune
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			g := c.glyph(x, y)
			col := c.color[y][x]
			if g == ' ' {
				col = ""
			} else if highlight >= 0 && c.owner[y][x] == highlight {
				col = HoverFill
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run = append(run, g)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
