package screen

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// CellAttributes is a bitmask of text attributes on a cell.
type CellAttributes uint16

const (
	AttrNone      CellAttributes = 0
	AttrBold      CellAttributes = 1 << 0
	AttrFaint     CellAttributes = 1 << 1
	AttrItalic    CellAttributes = 1 << 2
	AttrUnderline CellAttributes = 1 << 3
	AttrBlink     CellAttributes = 1 << 4
	AttrInverse   CellAttributes = 1 << 5
	AttrConcealed CellAttributes = 1 << 6
	AttrStrike    CellAttributes = 1 << 7
)

// Has reports whether attr is set.
func (a CellAttributes) Has(attr CellAttributes) bool {
	return a&attr != 0
}

// Cell is one character cell. Width is 2 for a wide rune, 0 for the
// continuation cell behind one.
type Cell struct {
	Rune       rune
	Width      int
	Foreground Color
	Background Color
	Attributes CellAttributes
}

func emptyCell() Cell {
	return Cell{
		Rune:       ' ',
		Width:      1,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// DisplayColors resolves the cell's effective colors for rendering:
// inverse swaps, bold brightens a base foreground, faint fades it
// toward the background.
func (c Cell) DisplayColors() (fg, bg Color) {
	fg, bg = c.Foreground, c.Background
	if c.Attributes.Has(AttrInverse) {
		fg, bg = bg, fg
	}
	if c.Attributes.Has(AttrBold) {
		fg = brighten(fg)
	}
	if c.Attributes.Has(AttrFaint) {
		fg = fade(fg, bg)
	}
	return fg, bg
}

// pen is the attribute state applied to newly written cells.
type pen struct {
	fg    Color
	bg    Color
	attrs CellAttributes
}

func defaultPen() pen {
	return pen{fg: DefaultForeground, bg: DefaultBackground}
}

// CaretState is the caret's visual state as the stream last set it.
type CaretState struct {
	Visible  bool
	Blinking bool
	Shape    int // 0 block, 1 underline, 2 bar
}

// Screen is a cell-grid terminal buffer. It implements ansi.Sink; feed
// it through an ansi.Parser. Safe for concurrent reads while a single
// goroutine parses.
type Screen struct {
	mu sync.RWMutex

	width  int
	height int
	cells  [][]Cell

	cursorX int
	cursorY int
	pen     pen
	caret   CaretState

	saved struct {
		x, y int
		pen  pen
	}

	scrollTop    int
	scrollBottom int

	tabStops map[int]bool

	originMode bool
	autoWrap   bool
	insertMode bool
	iceColors  bool

	lastRune rune

	// Out-of-band stream products.
	title    string
	iconName string
	links    []string
	fonts    map[int][]byte
	sixels   int
	bells    int

	unhandled int
	errs      []error
}

const defaultTabInterval = 8

// New returns a screen buffer of the given size. Non-positive
// dimensions fall back to 80x24.
func New(width, height int) *Screen {
	if width < 1 {
		width = 80
	}
	if height < 1 {
		height = 24
	}
	s := &Screen{
		width:        width,
		height:       height,
		pen:          defaultPen(),
		caret:        CaretState{Visible: true, Blinking: true},
		scrollBottom: height - 1,
		autoWrap:     true,
		fonts:        make(map[int][]byte),
	}
	s.cells = makeGrid(width, height)
	s.resetTabStops()
	return s
}

func makeGrid(width, height int) [][]Cell {
	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = blankLine(width)
	}
	return grid
}

func blankLine(width int) []Cell {
	line := make([]Cell, width)
	for x := range line {
		line[x] = emptyCell()
	}
	return line
}

func (s *Screen) resetTabStops() {
	s.tabStops = make(map[int]bool)
	for x := defaultTabInterval; x < s.width; x += defaultTabInterval {
		s.tabStops[x] = true
	}
}

// Size returns the buffer dimensions.
func (s *Screen) Size() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// CursorPos returns the 0-based cursor position.
func (s *Screen) CursorPos() (x, y int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursorX, s.cursorY
}

// Caret returns the caret's visual state.
func (s *Screen) Caret() CaretState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caret
}

// Cell returns the cell at the 0-based position, or an empty cell out
// of bounds.
func (s *Screen) Cell(x, y int) Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return emptyCell()
	}
	return s.cells[y][x]
}

// Title returns the window title as last set by OSC 0/2.
func (s *Screen) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// IconName returns the icon name as last set by OSC 0/1.
func (s *Screen) IconName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iconName
}

// Links returns the hyperlink URIs seen so far.
func (s *Screen) Links() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.links...)
}

// Font returns the custom font loaded into slot, if any.
func (s *Screen) Font(slot int) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.fonts[slot]
	return data, ok
}

// Bells returns how many BEL commands arrived.
func (s *Screen) Bells() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bells
}

// Unhandled returns how many commands the buffer had no use for.
func (s *Screen) Unhandled() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unhandled
}

// Errors returns the stream errors reported so far.
func (s *Screen) Errors() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]error(nil), s.errs...)
}

// Row returns a copy of row y.
func (s *Screen) Row(y int) []Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if y < 0 || y >= s.height {
		return nil
	}
	return append([]Cell(nil), s.cells[y]...)
}

// Text renders the buffer as plain text, one line per row, trailing
// blanks trimmed.
func (s *Screen) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		var line strings.Builder
		for x := 0; x < s.width; x++ {
			if s.cells[y][x].Width == 0 {
				continue
			}
			line.WriteRune(s.cells[y][x].Rune)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if y < s.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// write places text at the cursor under the current pen, wrapping and
// scrolling as needed.
func (s *Screen) write(text []byte) {
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		if r == utf8.RuneError && size == 1 {
			r = '�'
		}
		s.writeRune(r)
	}
}

func (s *Screen) writeRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 || w > s.width {
		return
	}
	if s.cursorX+w > s.width {
		if !s.autoWrap {
			s.cursorX = s.width - w
		} else {
			s.cursorX = 0
			s.lineFeed()
		}
	}
	if s.insertMode {
		s.insertCells(w)
	}
	cell := s.penCell(r, w)
	s.cells[s.cursorY][s.cursorX] = cell
	if w == 2 && s.cursorX+1 < s.width {
		cont := cell
		cont.Rune = 0
		cont.Width = 0
		s.cells[s.cursorY][s.cursorX+1] = cont
	}
	s.cursorX += w
	s.lastRune = r
}

// penCell builds a cell under the current pen. With iCE colors on, the
// blink attribute selects a bright background instead of blinking.
func (s *Screen) penCell(r rune, w int) Cell {
	cell := Cell{
		Rune:       r,
		Width:      w,
		Foreground: s.pen.fg,
		Background: s.pen.bg,
		Attributes: s.pen.attrs,
	}
	if s.iceColors && cell.Attributes.Has(AttrBlink) {
		cell.Background = brighten(cell.Background)
		cell.Attributes &^= AttrBlink
	}
	return cell
}

func (s *Screen) lineFeed() {
	if s.cursorY >= s.scrollBottom {
		s.scrollUp(1)
	} else {
		s.cursorY++
	}
}

func (s *Screen) reverseLineFeed() {
	if s.cursorY <= s.scrollTop {
		s.scrollDown(1)
	} else {
		s.cursorY--
	}
}

// moveCursor clamps to the grid, honoring origin mode for the row.
func (s *Screen) moveCursor(x, y int) {
	if x < 0 {
		x = 0
	}
	if x >= s.width {
		x = s.width - 1
	}
	top, bottom := 0, s.height-1
	if s.originMode {
		top, bottom = s.scrollTop, s.scrollBottom
		y += top
	}
	if y < top {
		y = top
	}
	if y > bottom {
		y = bottom
	}
	s.cursorX, s.cursorY = x, y
}

func (s *Screen) scrollUp(n int) {
	top, bottom := s.scrollTop, s.scrollBottom
	if n <= 0 || top > bottom {
		return
	}
	if size := bottom - top + 1; n > size {
		n = size
	}
	for y := top; y <= bottom-n; y++ {
		s.cells[y] = s.cells[y+n]
	}
	for y := bottom - n + 1; y <= bottom; y++ {
		s.cells[y] = blankLine(s.width)
	}
}

func (s *Screen) scrollDown(n int) {
	top, bottom := s.scrollTop, s.scrollBottom
	if n <= 0 || top > bottom {
		return
	}
	if size := bottom - top + 1; n > size {
		n = size
	}
	for y := bottom; y >= top+n; y-- {
		s.cells[y] = s.cells[y-n]
	}
	for y := top; y < top+n; y++ {
		s.cells[y] = blankLine(s.width)
	}
}

func (s *Screen) scrollLeft(n int) {
	for y := s.scrollTop; y <= s.scrollBottom; y++ {
		line := s.cells[y]
		for x := 0; x < s.width; x++ {
			if x+n < s.width {
				line[x] = line[x+n]
			} else {
				line[x] = emptyCell()
			}
		}
	}
}

func (s *Screen) scrollRight(n int) {
	for y := s.scrollTop; y <= s.scrollBottom; y++ {
		line := s.cells[y]
		for x := s.width - 1; x >= 0; x-- {
			if x-n >= 0 {
				line[x] = line[x-n]
			} else {
				line[x] = emptyCell()
			}
		}
	}
}

func (s *Screen) clearRange(y, start, end int) {
	if y < 0 || y >= s.height {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > s.width {
		end = s.width
	}
	for x := start; x < end; x++ {
		s.cells[y][x] = emptyCell()
	}
}

func (s *Screen) insertCells(n int) {
	line := s.cells[s.cursorY]
	if n <= 0 || s.cursorX >= s.width {
		return
	}
	if max := s.width - s.cursorX; n > max {
		n = max
	}
	for x := s.width - 1; x >= s.cursorX+n; x-- {
		line[x] = line[x-n]
	}
	for x := s.cursorX; x < s.cursorX+n; x++ {
		line[x] = emptyCell()
	}
}

func (s *Screen) deleteCells(n int) {
	line := s.cells[s.cursorY]
	if n <= 0 || s.cursorX >= s.width {
		return
	}
	if max := s.width - s.cursorX; n > max {
		n = max
	}
	for x := s.cursorX; x < s.width-n; x++ {
		line[x] = line[x+n]
	}
	for x := s.width - n; x < s.width; x++ {
		line[x] = emptyCell()
	}
}

func (s *Screen) insertLines(n int) {
	if s.cursorY < s.scrollTop || s.cursorY > s.scrollBottom {
		return
	}
	top := s.scrollTop
	s.scrollTop = s.cursorY
	s.scrollDown(n)
	s.scrollTop = top
}

func (s *Screen) deleteLines(n int) {
	if s.cursorY < s.scrollTop || s.cursorY > s.scrollBottom {
		return
	}
	top := s.scrollTop
	s.scrollTop = s.cursorY
	s.scrollUp(n)
	s.scrollTop = top
}

func (s *Screen) nextTabStop() {
	for x := s.cursorX + 1; x < s.width; x++ {
		if s.tabStops[x] {
			s.cursorX = x
			return
		}
	}
	s.cursorX = s.width - 1
}

func (s *Screen) prevTabStop() {
	for x := s.cursorX - 1; x > 0; x-- {
		if s.tabStops[x] {
			s.cursorX = x
			return
		}
	}
	s.cursorX = 0
}

func (s *Screen) fillRect(r rune, top, left, bottom, right int) {
	// 1-based inclusive coordinates, clamped to the grid.
	if top < 1 {
		top = 1
	}
	if left < 1 {
		left = 1
	}
	if bottom > s.height {
		bottom = s.height
	}
	if right > s.width {
		right = s.width
	}
	for y := top - 1; y < bottom; y++ {
		for x := left - 1; x < right; x++ {
			s.cells[y][x] = s.penCell(r, 1)
		}
	}
}

// resize rebuilds the grid preserving the overlap.
func (s *Screen) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	grid := makeGrid(width, height)
	for y := 0; y < height && y < s.height; y++ {
		copy(grid[y], s.cells[y])
	}
	s.cells = grid
	s.width = width
	s.height = height
	s.scrollTop = 0
	s.scrollBottom = height - 1
	if s.cursorX >= width {
		s.cursorX = width - 1
	}
	if s.cursorY >= height {
		s.cursorY = height - 1
	}
	s.resetTabStops()
}

// fullReset returns the buffer to its initial state. The macro-era
// products (fonts, links, counters) survive; they describe the stream,
// not the screen.
func (s *Screen) fullReset() {
	s.cells = makeGrid(s.width, s.height)
	s.cursorX, s.cursorY = 0, 0
	s.pen = defaultPen()
	s.caret = CaretState{Visible: true, Blinking: true}
	s.scrollTop = 0
	s.scrollBottom = s.height - 1
	s.originMode = false
	s.autoWrap = true
	s.insertMode = false
	s.resetTabStops()
}
