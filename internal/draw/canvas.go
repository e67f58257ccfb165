package draw

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Default logical size of one terminal cell. A cell holds two vertical
// pixels, so one pixel covers CellWidth x CellHeight/2 logical units.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// cell is one entry of the text layer drawn on top of the pixels.
type cell struct {
	r     rune
	fg    Color
	bg    Color
	hasBG bool
	cont  bool // right half of a wide rune
}

// cellKey identifies what is currently shown in a terminal cell.
type cellKey struct {
	r      rune
	fg, bg uint32
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. Logical coordinates are scaled to pixels; pixels
// persist between frames so translucent overdraw leaves trails.
type Canvas struct {
	cols, rows int
	pixels     []colorful.Color // [y*cols + x], y in sub-pixel rows
	cells      []cell
	prev       []cellKey
	force      bool

	cellW, cellH      float64
	logicalW, logicalH float64
	scaleX, scaleY    float64

	background colorful.Color
	profile    termenv.Profile
	fgSeq      map[uint32]string
	bgSeq      map[uint32]string
}

// NewCanvas creates a canvas for a terminal of cols x rows cells. Each cell
// covers cellW x cellH logical units.
func NewCanvas(cols, rows int, cellW, cellH float64, profile termenv.Profile) *Canvas {
	c := &Canvas{
		cellW:   cellW,
		cellH:   cellH,
		profile: profile,
		fgSeq:   make(map[uint32]string),
		bgSeq:   make(map[uint32]string),
	}
	c.Resize(cols, rows)
	return c
}

// Resize updates the canvas for new terminal dimensions. The logical size
// follows the terminal; existing pixels are discarded.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == c.cols && rows == c.rows {
		return
	}
	c.cols = cols
	c.rows = rows
	c.pixels = make([]colorful.Color, cols*rows*2)
	c.cells = make([]cell, cols*rows)
	c.prev = make([]cellKey, cols*rows)
	c.logicalW = float64(cols) * c.cellW
	c.logicalH = float64(rows) * c.cellH
	c.scaleX = 1 / c.cellW
	c.scaleY = 2 / c.cellH
	for i := range c.pixels {
		c.pixels[i] = c.background
	}
	c.force = true
}

// SetBackground sets the colour new pixels start with.
func (c *Canvas) SetBackground(bg Color) {
	c.background = bg.Color
}

// Clear paints every pixel with col and drops the text layer.
func (c *Canvas) Clear(col Color) {
	for i := range c.pixels {
		c.pixels[i] = c.pixels[i].BlendRgb(col.Color, clamp01(col.A))
	}
	c.ClearText()
}

// ClearText drops the text layer only.
func (c *Canvas) ClearText() {
	clear(c.cells)
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// Size returns the logical dimensions.
func (c *Canvas) Size() (float64, float64) {
	return c.logicalW, c.logicalH
}

// Cols returns the terminal column count.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the terminal row count.
func (c *Canvas) Rows() int { return c.rows }

// CellToLogical returns the logical centre of a 0-based cell.
func (c *Canvas) CellToLogical(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * c.cellW, (float64(row) + 0.5) * c.cellH
}

// LogicalToCell converts logical coordinates to a 0-based cell.
func (c *Canvas) LogicalToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

func (c *Canvas) blend(px, py int, col Color) {
	if px < 0 || px >= c.cols || py < 0 || py >= c.rows*2 {
		return
	}
	a := clamp01(col.A)
	if a == 0 {
		return
	}
	i := py*c.cols + px
	c.pixels[i] = c.pixels[i].BlendRgb(col.Color, a)
}

// pixelBounds returns the clamped pixel rectangle [x0,x1) x [y0,y1).
func (c *Canvas) pixelBounds(x, y, w, h float64) (x0, y0, x1, y1 int) {
	x0 = max(int(math.Floor(x*c.scaleX)), 0)
	y0 = max(int(math.Floor(y*c.scaleY)), 0)
	x1 = min(int(math.Ceil((x+w)*c.scaleX)), c.cols)
	y1 = min(int(math.Ceil((y+h)*c.scaleY)), c.rows*2)
	return
}

// FillRect blends col over a logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0, y0, x1, y1 := c.pixelBounds(x, y, w, h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blend(px, py, col)
		}
	}
}

// tiny reports whether a logical radius is smaller than one pixel, in which
// case shapes collapse to the pixel holding their centre.
func (c *Canvas) tiny(r float64) bool {
	return r*c.scaleX < 0.75 && r*c.scaleY < 0.75
}

// FillCircle fills a disc. Sub-pixel discs light the centre pixel.
func (c *Canvas) FillCircle(cx, cy, r float64, col Color) {
	if r <= 0 {
		return
	}
	if c.tiny(r) {
		c.blend(int(math.Floor(cx*c.scaleX)), int(math.Floor(cy*c.scaleY)), col)
		return
	}
	x0, y0, x1, y1 := c.pixelBounds(cx-r, cy-r, 2*r, 2*r)
	for py := y0; py < y1; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := x0; px < x1; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			if math.Hypot(lx-cx, ly-cy) <= r {
				c.blend(px, py, col)
			}
		}
	}
}

// FillRadialGradient fills a disc fading linearly to transparent. A
// sub-pixel gradient lights its centre pixel with the gradient's mean
// coverage (one third of the inner alpha).
func (c *Canvas) FillRadialGradient(cx, cy, r float64, inner Color) {
	if r <= 0 {
		return
	}
	if c.tiny(r) {
		c.blend(int(math.Floor(cx*c.scaleX)), int(math.Floor(cy*c.scaleY)), inner.Fade(1.0/3))
		return
	}
	x0, y0, x1, y1 := c.pixelBounds(cx-r, cy-r, 2*r, 2*r)
	for py := y0; py < y1; py++ {
		ly := (float64(py) + 0.5) / c.scaleY
		for px := x0; px < x1; px++ {
			lx := (float64(px) + 0.5) / c.scaleX
			d := math.Hypot(lx-cx, ly-cy)
			if d < r {
				c.blend(px, py, inner.Fade(1-d/r))
			}
		}
	}
}

// StrokeLine draws a gradient line using Bresenham's algorithm. Lines are
// at least one pixel wide; width only matters once it spans two pixels.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, from, to Color) {
	px1 := int(math.Floor(x0 * c.scaleX))
	py1 := int(math.Floor(y0 * c.scaleY))
	px2 := int(math.Floor(x1 * c.scaleX))
	py2 := int(math.Floor(y1 * c.scaleY))
	thick := width*c.scaleX >= 2

	dx := abs(px2 - px1)
	dy := abs(py2 - py1)
	steps := max(dx, dy)

	sx := 1
	if px1 > px2 {
		sx = -1
	}
	sy := 1
	if py1 > py2 {
		sy = -1
	}

	err := dx - dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		col := from.Lerp(to, t)
		c.blend(px1, py1, col)
		if thick {
			c.blend(px1, py1+1, col)
		}

		if px1 == px2 && py1 == py2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			px1 += sx
		}
		if e2 < dx {
			err += dx
			py1 += sy
		}
	}
}

// Glyph places a rune in the text layer at a logical position.
func (c *Canvas) Glyph(x, y float64, r rune, col Color) {
	cx, cy := c.LogicalToCell(x, y)
	c.text(cx, cy, string(r), col, Color{}, false)
}

// Text writes s starting at a 0-based cell with a transparent background.
// It returns the number of columns written.
func (c *Canvas) Text(col, row int, s string, fg Color) int {
	return c.text(col, row, s, fg, Color{}, false)
}

// TextBG is Text with a background blended over the pixels.
func (c *Canvas) TextBG(col, row int, s string, fg, bg Color) int {
	return c.text(col, row, s, fg, bg, true)
}

func (c *Canvas) text(col, row int, s string, fg, bg Color, hasBG bool) int {
	if row < 0 || row >= c.rows {
		return 0
	}
	start := col
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > c.cols {
			break
		}
		if col < 0 {
			col += w
			continue
		}
		c.put(col, row, r, fg, bg, hasBG)
		if w == 2 {
			c.put(col+1, row, 0, fg, bg, hasBG)
			c.cells[row*c.cols+col+1].cont = true
		}
		col += w
	}
	return col - start
}

// Row returns the text layer of a row, with spaces where no text is set.
func (c *Canvas) Row(row int) string {
	if row < 0 || row >= c.rows {
		return ""
	}
	out := make([]rune, 0, c.cols)
	for _, ce := range c.cells[row*c.cols : (row+1)*c.cols] {
		switch {
		case ce.cont:
		case ce.r == 0:
			out = append(out, ' ')
		default:
			out = append(out, ce.r)
		}
	}
	return string(out)
}

func (c *Canvas) put(col, row int, r rune, fg, bg Color, hasBG bool) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	i := row*c.cols + col
	if c.cells[i].cont && col > 0 {
		// Overwriting the right half of a wide rune blanks its left half.
		c.cells[i-1] = cell{r: ' ', fg: c.cells[i-1].fg, bg: c.cells[i-1].bg, hasBG: c.cells[i-1].hasBG}
	}
	c.cells[i] = cell{r: r, fg: fg, bg: bg, hasBG: hasBG}
}

func pack(col colorful.Color) uint32 {
	r, g, b := col.Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func (c *Canvas) sequence(key uint32, bg bool) string {
	cache := c.fgSeq
	if bg {
		cache = c.bgSeq
	}
	if s, ok := cache[key]; ok {
		return s
	}
	hex := colorful.Color{
		R: float64(key>>16&0xff) / 255,
		G: float64(key>>8&0xff) / 255,
		B: float64(key&0xff) / 255,
	}.Hex()
	s := c.profile.Color(hex).Sequence(bg)
	cache[key] = s
	return s
}

// Render writes every cell that changed since the previous Render.
func (c *Canvas) Render(cw *ChunkWriter) {
	lastRow, lastCol := -1, -1
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			top := c.pixels[(row*2)*c.cols+col]
			bottom := c.pixels[(row*2+1)*c.cols+col]
			ce := c.cells[i]

			var key cellKey
			switch {
			case ce.cont:
				key = cellKey{r: -1}
			case ce.r != 0:
				bgc := top.BlendRgb(bottom, 0.5)
				if ce.hasBG {
					bgc = bgc.BlendRgb(ce.bg.Color, clamp01(ce.bg.A))
				}
				key = cellKey{r: ce.r, fg: pack(bgc.BlendRgb(ce.fg.Color, clamp01(ce.fg.A))), bg: pack(bgc)}
			default:
				key = cellKey{r: BlockUpperHalf, fg: pack(top), bg: pack(bottom)}
			}

			if key == c.prev[i] && !c.force {
				continue
			}
			c.prev[i] = key
			if ce.cont {
				continue
			}

			if row != lastRow || col != lastCol {
				cw.MoveCursor(col+1, row+1)
			}
			c.writeStyle(cw, key)
			cw.WriteRune(key.r)
			lastRow = row
			lastCol = col + runewidth.RuneWidth(key.r)
		}
	}
	cw.WriteString("\033[0m")
	c.force = false
}

func (c *Canvas) writeStyle(cw *ChunkWriter, key cellKey) {
	fg := c.sequence(key.fg, false)
	bg := c.sequence(key.bg, true)
	switch {
	case fg != "" && bg != "":
		cw.WriteString("\033[" + fg + ";" + bg + "m")
	case fg != "":
		cw.WriteString("\033[" + fg + "m")
	case bg != "":
		cw.WriteString("\033[" + bg + "m")
	}
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)
