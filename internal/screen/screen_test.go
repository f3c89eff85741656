package screen

import (
	"reflect"
	"testing"

	"github.com/dshills/ansistream/internal/ansi"
)

// render feeds input through a parser into a fresh buffer.
func render(t *testing.T, input string, width, height int) *Screen {
	t.Helper()
	s := New(width, height)
	p := ansi.NewParser()
	p.Parse([]byte(input), s)
	p.Flush(s)
	return s
}

func TestWriteText(t *testing.T) {
	s := render(t, "hello", 10, 3)
	if got := s.Text(); got != "hello\n\n" {
		t.Errorf("Text() = %q, want %q", got, "hello\n\n")
	}
	if x, y := s.CursorPos(); x != 5 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (5,0)", x, y)
	}
}

func TestAutoWrap(t *testing.T) {
	s := render(t, "abcdefg", 5, 3)
	if got := s.Text(); got != "abcde\nfg\n" {
		t.Errorf("Text() = %q, want %q", got, "abcde\nfg\n")
	}
}

func TestAutoWrapDisabled(t *testing.T) {
	s := render(t, "\x1b[?7labcdefg", 5, 3)
	if got := s.Text(); got != "abcdg\n\n" {
		t.Errorf("Text() = %q, want %q", got, "abcdg\n\n")
	}
}

func TestNewlineAndCarriageReturn(t *testing.T) {
	s := render(t, "one\r\ntwo", 10, 3)
	if got := s.Text(); got != "one\ntwo\n" {
		t.Errorf("Text() = %q, want %q", got, "one\ntwo\n")
	}
}

func TestScrollAtBottom(t *testing.T) {
	s := render(t, "a\r\nb\r\nc\r\nd", 10, 3)
	if got := s.Text(); got != "b\nc\nd" {
		t.Errorf("Text() = %q, want %q", got, "b\nc\nd")
	}
}

func TestCursorAddressing(t *testing.T) {
	s := render(t, "\x1b[2;4HX", 10, 5)
	if got := s.Cell(3, 1).Rune; got != 'X' {
		t.Errorf("cell(3,1) = %q, want X", got)
	}
}

func TestCursorMovementClamps(t *testing.T) {
	s := render(t, "\x1b[99A\x1b[99D", 10, 5)
	if x, y := s.CursorPos(); x != 0 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", x, y)
	}
	s = render(t, "\x1b[99B\x1b[99C", 10, 5)
	if x, y := s.CursorPos(); x != 9 || y != 4 {
		t.Errorf("cursor = (%d,%d), want (9,4)", x, y)
	}
}

func TestEraseLine(t *testing.T) {
	s := render(t, "abcdef\x1b[4G\x1b[K", 10, 2)
	if got := s.Text(); got != "abc\n" {
		t.Errorf("Text() = %q, want %q", got, "abc\n")
	}
	s = render(t, "abcdef\x1b[3G\x1b[1K", 10, 2)
	if got := s.Text(); got != "   def\n" {
		t.Errorf("Text() = %q, want %q", got, "   def\n")
	}
}

func TestEraseDisplay(t *testing.T) {
	s := render(t, "aa\r\nbb\r\ncc\x1b[2;1H\x1b[J", 10, 3)
	if got := s.Text(); got != "aa\n\n" {
		t.Errorf("Text() = %q, want %q", got, "aa\n\n")
	}
	s = render(t, "aa\r\nbb\r\ncc\x1b[2J", 10, 3)
	if got := s.Text(); got != "\n\n" {
		t.Errorf("Text() = %q, want %q", got, "\n\n")
	}
}

func TestForegroundColor(t *testing.T) {
	s := render(t, "\x1b[31mR", 10, 2)
	cell := s.Cell(0, 0)
	if want := basePalette[4]; cell.Foreground != want {
		t.Errorf("fg = %+v, want DOS red %+v", cell.Foreground, want)
	}
}

func TestExtendedAndRGBColors(t *testing.T) {
	s := render(t, "\x1b[38;5;196mA\x1b[48;2;1;2;3mB", 10, 2)
	if got := s.Cell(0, 0).Foreground; got != ColorFromIndex(196) {
		t.Errorf("fg = %+v, want palette 196", got)
	}
	if got := s.Cell(1, 0).Background; got != ColorFromRGB(1, 2, 3) {
		t.Errorf("bg = %+v, want rgb(1,2,3)", got)
	}
}

func TestBoldBrightensBaseColor(t *testing.T) {
	s := render(t, "\x1b[1;31mR", 10, 2)
	cell := s.Cell(0, 0)
	if !cell.Attributes.Has(AttrBold) {
		t.Fatal("AttrBold not set")
	}
	fg, _ := cell.DisplayColors()
	if want := basePalette[12]; fg != want {
		t.Errorf("display fg = %+v, want bright red %+v", fg, want)
	}
}

func TestFaintFadesTowardBackground(t *testing.T) {
	s := render(t, "\x1b[2;37mF", 10, 2)
	cell := s.Cell(0, 0)
	fg, _ := cell.DisplayColors()
	if fg == basePalette[7] {
		t.Error("faint fg not faded")
	}
	if fg.R >= basePalette[7].R {
		t.Errorf("faint fg %+v not darker than %+v", fg, basePalette[7])
	}
}

func TestInverseSwapsColors(t *testing.T) {
	s := render(t, "\x1b[7;31;44mX", 10, 2)
	fg, bg := s.Cell(0, 0).DisplayColors()
	if fg != basePalette[1] || bg != basePalette[4] {
		t.Errorf("display = fg %+v bg %+v, want swapped", fg, bg)
	}
}

func TestIceColorsBrightenBlinkBackground(t *testing.T) {
	s := render(t, "\x1b[?33h\x1b[5;44mX", 10, 2)
	cell := s.Cell(0, 0)
	if cell.Attributes.Has(AttrBlink) {
		t.Error("AttrBlink set, want bright background instead")
	}
	if want := basePalette[9]; cell.Background != want {
		t.Errorf("bg = %+v, want bright blue %+v", cell.Background, want)
	}

	s = render(t, "\x1b[5;44mX", 10, 2)
	cell = s.Cell(0, 0)
	if !cell.Attributes.Has(AttrBlink) {
		t.Error("AttrBlink not set with iCE colors off")
	}
	if want := basePalette[1]; cell.Background != want {
		t.Errorf("bg = %+v, want blue %+v", cell.Background, want)
	}
}

func TestResetAttributes(t *testing.T) {
	s := render(t, "\x1b[1;4;31mX\x1b[0mY", 10, 2)
	cell := s.Cell(1, 0)
	if cell.Attributes != AttrNone || !cell.Foreground.Default {
		t.Errorf("cell after reset = %+v, want defaults", cell)
	}
}

func TestTabStops(t *testing.T) {
	s := render(t, "a\tb", 20, 2)
	if got := s.Cell(8, 0).Rune; got != 'b' {
		t.Errorf("cell(8,0) = %q, want b", got)
	}
}

func TestCustomTabStop(t *testing.T) {
	// Clear all stops, set one at column 3.
	s := render(t, "\x1b[3g\x1b[4G\x1bH\x1b[1Gx\ty", 20, 2)
	if got := s.Cell(3, 0).Rune; got != 'y' {
		t.Errorf("cell(3,0) = %q, want y", got)
	}
}

func TestSaveRestoreCursor(t *testing.T) {
	s := render(t, "\x1b[2;5H\x1b7\x1b[1;1Hzz\x1b8X", 10, 5)
	if got := s.Cell(4, 1).Rune; got != 'X' {
		t.Errorf("cell(4,1) = %q, want X", got)
	}
}

func TestScrollingRegion(t *testing.T) {
	// Region rows 2-3; filling past the region bottom scrolls only
	// inside it.
	s := render(t, "top\x1b[2;3r\x1b[2;1Ha\r\nb\r\nc", 10, 4)
	if got := s.Text(); got != "top\nb\nc\n" {
		t.Errorf("Text() = %q, want %q", got, "top\nb\nc\n")
	}
}

func TestInsertDeleteChars(t *testing.T) {
	s := render(t, "abcdef\x1b[3G\x1b[2@", 10, 2)
	if got := s.Text(); got != "ab  cdef\n" {
		t.Errorf("after ICH: Text() = %q, want %q", got, "ab  cdef\n")
	}
	s = render(t, "abcdef\x1b[3G\x1b[2P", 10, 2)
	if got := s.Text(); got != "abef\n" {
		t.Errorf("after DCH: Text() = %q, want %q", got, "abef\n")
	}
}

func TestInsertDeleteLines(t *testing.T) {
	s := render(t, "a\r\nb\r\nc\x1b[1;1H\x1b[1L", 10, 3)
	if got := s.Text(); got != "\na\nb" {
		t.Errorf("after IL: Text() = %q, want %q", got, "\na\nb")
	}
	s = render(t, "a\r\nb\r\nc\x1b[1;1H\x1b[1M", 10, 3)
	if got := s.Text(); got != "b\nc\n" {
		t.Errorf("after DL: Text() = %q, want %q", got, "b\nc\n")
	}
}

func TestInsertMode(t *testing.T) {
	s := render(t, "ab\x1b[1;1H\x1b[4hX", 10, 2)
	if got := s.Text(); got != "Xab\n" {
		t.Errorf("Text() = %q, want %q", got, "Xab\n")
	}
}

func TestRepeatPrecedingChar(t *testing.T) {
	s := render(t, "ab\x1b[3b", 10, 2)
	if got := s.Text(); got != "abbbb\n" {
		t.Errorf("Text() = %q, want %q", got, "abbbb\n")
	}
}

func TestFillArea(t *testing.T) {
	s := render(t, "\x1b[66;1;1;2;3$x", 10, 3)
	if got := s.Text(); got != "BBB\nBBB\n" {
		t.Errorf("Text() = %q, want %q", got, "BBB\nBBB\n")
	}
}

func TestEraseArea(t *testing.T) {
	s := render(t, "abcd\r\nefgh\x1b[1;2;2;3$z", 10, 2)
	if got := s.Text(); got != "a  d\ne  h" {
		t.Errorf("Text() = %q, want %q", got, "a  d\ne  h")
	}
}

func TestWideRune(t *testing.T) {
	s := render(t, "日x", 10, 2)
	if got := s.Cell(0, 0); got.Rune != '日' || got.Width != 2 {
		t.Errorf("cell(0,0) = %+v, want wide 日", got)
	}
	if got := s.Cell(1, 0).Width; got != 0 {
		t.Errorf("continuation width = %d, want 0", got)
	}
	if got := s.Cell(2, 0).Rune; got != 'x' {
		t.Errorf("cell(2,0) = %q, want x", got)
	}
}

func TestResize(t *testing.T) {
	s := render(t, "\x1b[8;10;40t", 80, 24)
	if w, h := s.Size(); w != 40 || h != 10 {
		t.Errorf("size = %dx%d, want 40x10", w, h)
	}
}

func TestTitleAndIcon(t *testing.T) {
	s := render(t, "\x1b]2;window\x07\x1b]1;icon\x07", 10, 2)
	if got := s.Title(); got != "window" {
		t.Errorf("Title() = %q, want window", got)
	}
	if got := s.IconName(); got != "icon" {
		t.Errorf("IconName() = %q, want icon", got)
	}
}

func TestHyperlinks(t *testing.T) {
	s := render(t, "\x1b]8;;https://example.com\x07text\x1b]8;;\x07", 20, 2)
	if want := []string{"https://example.com"}; !reflect.DeepEqual(s.Links(), want) {
		t.Errorf("Links() = %q, want %q", s.Links(), want)
	}
}

func TestFontLoad(t *testing.T) {
	// "QUJD" is base64 for ABC.
	s := render(t, "\x1bPCTerm:Font:1:QUJD\x1b\\", 10, 2)
	data, ok := s.Font(1)
	if !ok || string(data) != "ABC" {
		t.Errorf("Font(1) = %q %v, want ABC", data, ok)
	}
}

func TestBellCounter(t *testing.T) {
	s := render(t, "a\x07b\x07", 10, 2)
	if got := s.Bells(); got != 2 {
		t.Errorf("Bells() = %d, want 2", got)
	}
}

func TestCaretState(t *testing.T) {
	s := render(t, "\x1b[?25l\x1b[4 q", 10, 2)
	caret := s.Caret()
	if caret.Visible {
		t.Error("caret visible after DECTCEM reset")
	}
	if caret.Blinking || caret.Shape != 1 {
		t.Errorf("caret = %+v, want steady underline", caret)
	}
}

func TestErrorsCollected(t *testing.T) {
	s := render(t, "\x1b[999J", 10, 2)
	if got := s.Errors(); len(got) != 1 {
		t.Errorf("Errors() = %v, want one", got)
	}
}

func TestUnhandledCounted(t *testing.T) {
	s := render(t, "\x1b[c\x1b[5n", 10, 2)
	if got := s.Unhandled(); got != 2 {
		t.Errorf("Unhandled() = %d, want 2", got)
	}
}

func TestFullReset(t *testing.T) {
	s := render(t, "\x1b[1;31mtext\x1b[2;3r\x1bc", 10, 3)
	if got := s.Text(); got != "\n\n" {
		t.Errorf("Text() = %q, want blank", got)
	}
	if x, y := s.CursorPos(); x != 0 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (0,0)", x, y)
	}
}
