package screen

import (
	"github.com/dshills/ansistream/internal/ansi"
)

// Screen implements ansi.Sink.
var _ ansi.Sink = (*Screen)(nil)

// Print writes a run of printable bytes at the cursor.
func (s *Screen) Print(text []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(text)
}

// Emit applies one decoded command to the buffer.
func (s *Screen) Emit(cmd ansi.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c := cmd.(type) {
	case ansi.Bell:
		s.bells++
	case ansi.Backspace:
		if s.cursorX > 0 {
			s.cursorX--
		}
	case ansi.Tab:
		s.nextTabStop()
	case ansi.LineFeed, ansi.FormFeed, ansi.Index:
		s.lineFeed()
	case ansi.CarriageReturn:
		s.cursorX = 0
	case ansi.Delete:
		// ignored
	case ansi.NextLine:
		s.cursorX = 0
		s.lineFeed()
	case ansi.ReverseIndex:
		s.reverseLineFeed()
	case ansi.FullReset:
		s.fullReset()

	case ansi.SetTabStop:
		s.tabStops[s.cursorX] = true
	case ansi.ClearTabStop:
		delete(s.tabStops, s.cursorX)
	case ansi.ClearAllTabStops:
		s.tabStops = make(map[int]bool)
	case ansi.TabForward:
		for i := uint16(0); i < c.N; i++ {
			s.nextTabStop()
		}
	case ansi.TabBackward:
		for i := uint16(0); i < c.N; i++ {
			s.prevTabStop()
		}

	case ansi.SaveCursor, ansi.SaveCursorPosition:
		s.saved.x, s.saved.y = s.cursorX, s.cursorY
		s.saved.pen = s.pen
	case ansi.RestoreCursor, ansi.RestoreCursorPosition:
		s.cursorX, s.cursorY = s.saved.x, s.saved.y
		s.pen = s.saved.pen

	case ansi.MoveCursor:
		switch c.Dir {
		case ansi.Up:
			s.moveCursor(s.cursorX, s.cursorY-int(c.N))
		case ansi.Down:
			s.moveCursor(s.cursorX, s.cursorY+int(c.N))
		case ansi.Left:
			s.moveCursor(s.cursorX-int(c.N), s.cursorY)
		case ansi.Right:
			s.moveCursor(s.cursorX+int(c.N), s.cursorY)
		}
	case ansi.CursorNextLine:
		s.moveCursor(0, s.cursorY+int(c.N))
	case ansi.CursorPreviousLine:
		s.moveCursor(0, s.cursorY-int(c.N))
	case ansi.CursorColumn:
		s.moveCursor(int(c.N)-1, s.cursorY)
	case ansi.CursorPosition:
		s.moveCursor(int(c.Col)-1, int(c.Row)-1)
	case ansi.LinePosition:
		s.moveCursor(s.cursorX, int(c.N)-1)
	case ansi.LinePositionForward:
		s.moveCursor(s.cursorX, s.cursorY+int(c.N))
	case ansi.CharPositionForward:
		s.moveCursor(s.cursorX+int(c.N), s.cursorY)
	case ansi.CharPositionAbsolute:
		s.moveCursor(int(c.N)-1, s.cursorY)

	case ansi.EraseDisplay:
		switch c.Mode {
		case ansi.EraseToEnd:
			s.clearRange(s.cursorY, s.cursorX, s.width)
			for y := s.cursorY + 1; y < s.height; y++ {
				s.clearRange(y, 0, s.width)
			}
		case ansi.EraseToStart:
			for y := 0; y < s.cursorY; y++ {
				s.clearRange(y, 0, s.width)
			}
			s.clearRange(s.cursorY, 0, s.cursorX+1)
		case ansi.EraseAll, ansi.EraseAllAndScrollback:
			for y := 0; y < s.height; y++ {
				s.clearRange(y, 0, s.width)
			}
		}
	case ansi.EraseLine:
		switch c.Mode {
		case ansi.EraseLineToEnd:
			s.clearRange(s.cursorY, s.cursorX, s.width)
		case ansi.EraseLineToStart:
			s.clearRange(s.cursorY, 0, s.cursorX+1)
		case ansi.EraseLineAll:
			s.clearRange(s.cursorY, 0, s.width)
		}
	case ansi.EraseChars:
		s.clearRange(s.cursorY, s.cursorX, s.cursorX+int(c.N))
	case ansi.InsertChars:
		s.insertCells(int(c.N))
	case ansi.DeleteChars:
		s.deleteCells(int(c.N))
	case ansi.InsertLines:
		s.insertLines(int(c.N))
	case ansi.DeleteLines:
		s.deleteLines(int(c.N))
	case ansi.RepeatPrecedingChar:
		if s.lastRune != 0 {
			for i := uint16(0); i < c.N; i++ {
				s.writeRune(s.lastRune)
			}
		}

	case ansi.Scroll:
		switch c.Dir {
		case ansi.Up:
			s.scrollUp(int(c.N))
		case ansi.Down:
			s.scrollDown(int(c.N))
		case ansi.Left:
			s.scrollLeft(int(c.N))
		case ansi.Right:
			s.scrollRight(int(c.N))
		}
	case ansi.SetScrollingRegion:
		top := int(c.Top) - 1
		bottom := int(c.Bottom) - 1
		if c.Bottom == 0 || bottom >= s.height {
			bottom = s.height - 1
		}
		if top < 0 {
			top = 0
		}
		if top < bottom {
			s.scrollTop, s.scrollBottom = top, bottom
			s.moveCursor(0, 0)
		}

	case ansi.SetAttribute:
		s.applyAttribute(c.Attr)

	case ansi.ResizeTerminal:
		s.resize(int(c.Width), int(c.Height))

	case ansi.SetMode:
		if c.Mode == ansi.ModeInsertReplace {
			s.insertMode = true
		}
	case ansi.ResetMode:
		if c.Mode == ansi.ModeInsertReplace {
			s.insertMode = false
		}
	case ansi.SetPrivateMode:
		s.setPrivateMode(c.Mode, true)
	case ansi.ResetPrivateMode:
		s.setPrivateMode(c.Mode, false)

	case ansi.SetCaretStyle:
		s.caret.Blinking = c.Blinking
		s.caret.Shape = int(c.Shape)

	case ansi.FillArea:
		s.fillRect(rune(c.Char), int(c.Top), int(c.Left), int(c.Bottom), int(c.Right))
	case ansi.EraseArea:
		s.fillRect(' ', int(c.Top), int(c.Left), int(c.Bottom), int(c.Right))
	case ansi.SelectiveEraseArea:
		s.fillRect(' ', int(c.Top), int(c.Left), int(c.Bottom), int(c.Right))

	default:
		// Requests that need a reply channel (device attributes,
		// status reports, checksums) and the remaining rarities.
		s.unhandled++
	}
}

func (s *Screen) setPrivateMode(mode ansi.PrivateMode, on bool) {
	switch mode {
	case ansi.ModeOrigin:
		s.originMode = on
	case ansi.ModeAutoWrap:
		s.autoWrap = on
	case ansi.ModeCursorVisible:
		s.caret.Visible = on
	case ansi.ModeCursorBlinking:
		s.caret.Blinking = on
	case ansi.ModeIceColors:
		s.iceColors = on
	default:
		s.unhandled++
	}
}

func (s *Screen) applyAttribute(attr ansi.Attribute) {
	switch a := attr.(type) {
	case ansi.Reset:
		s.pen = defaultPen()
	case ansi.SetIntensity:
		s.pen.attrs &^= AttrBold | AttrFaint
		switch a.Level {
		case ansi.IntensityBold:
			s.pen.attrs |= AttrBold
		case ansi.IntensityFaint:
			s.pen.attrs |= AttrFaint
		}
	case ansi.SetItalic:
		s.setPenAttr(AttrItalic, a.On)
	case ansi.SetUnderline:
		s.setPenAttr(AttrUnderline, a.Style != ansi.UnderlineNone)
	case ansi.SetBlink:
		s.setPenAttr(AttrBlink, a.Rate != ansi.BlinkNone)
	case ansi.SetInverse:
		s.setPenAttr(AttrInverse, a.On)
	case ansi.SetConcealed:
		s.setPenAttr(AttrConcealed, a.On)
	case ansi.SetCrossedOut:
		s.setPenAttr(AttrStrike, a.On)
	case ansi.SetForeground:
		s.pen.fg = colorFromANSI(a.Color, DefaultForeground)
	case ansi.SetBackground:
		s.pen.bg = colorFromANSI(a.Color, DefaultBackground)
	default:
		// Fraktur, framing, ideogram marks, alternate fonts.
		s.unhandled++
	}
}

func (s *Screen) setPenAttr(attr CellAttributes, on bool) {
	if on {
		s.pen.attrs |= attr
	} else {
		s.pen.attrs &^= attr
	}
}

// DeviceControl records fonts by slot and counts sixel payloads.
func (s *Screen) DeviceControl(dc ansi.DeviceControl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch d := dc.(type) {
	case ansi.LoadFont:
		s.fonts[d.Slot] = append([]byte(nil), d.Data...)
	case ansi.SixelGraphics:
		s.sixels++
	default:
		s.unhandled++
	}
}

// OperatingSystemCommand tracks titles and hyperlinks.
func (s *Screen) OperatingSystemCommand(osc ansi.OperatingSystemCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch o := osc.(type) {
	case ansi.SetTitle:
		s.title = string(o.Text)
		s.iconName = string(o.Text)
	case ansi.SetIconName:
		s.iconName = string(o.Text)
	case ansi.SetWindowTitle:
		s.title = string(o.Text)
	case ansi.Hyperlink:
		if len(o.URI) > 0 {
			s.links = append(s.links, string(o.URI))
		}
	default:
		s.unhandled++
	}
}

// APS payloads have no screen meaning; they are counted as unhandled.
func (s *Screen) APS(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unhandled++
}

// ReportError collects stream errors; the buffer keeps going.
func (s *Screen) ReportError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}
