package ansi

// dispatchCSI decodes a completed CSI sequence. Prefixed sequences
// (private marker or intermediate byte collected) route through
// dispatchPrefixed; the rest dispatch on the final byte alone.
func (p *Parser) dispatchCSI(final byte, sink Sink) {
	if len(p.inter) > 0 {
		if len(p.inter) > 1 {
			// Mixed prefix bytes select no recognized sub-dialect;
			// drop the sequence silently.
			return
		}
		p.dispatchPrefixed(p.inter[0], final, sink)
		return
	}

	switch final {
	case 'A':
		sink.Emit(MoveCursor{Dir: Up, N: p.param(0, 1)})
	case 'B':
		sink.Emit(MoveCursor{Dir: Down, N: p.param(0, 1)})
	case 'C':
		sink.Emit(MoveCursor{Dir: Right, N: p.param(0, 1)})
	case 'D':
		sink.Emit(MoveCursor{Dir: Left, N: p.param(0, 1)})
	case 'E':
		sink.Emit(CursorNextLine{N: p.param(0, 1)})
	case 'F':
		sink.Emit(CursorPreviousLine{N: p.param(0, 1)})
	case 'G':
		sink.Emit(CursorColumn{N: p.param(0, 1)})
	case 'H', 'f':
		sink.Emit(CursorPosition{Row: p.param(0, 1), Col: p.param(1, 1)})
	case 'j':
		// Legacy HPB alias for cursor left.
		sink.Emit(MoveCursor{Dir: Left, N: p.param(0, 1)})
	case 'k':
		// Legacy VPB alias for cursor up.
		sink.Emit(MoveCursor{Dir: Up, N: p.param(0, 1)})
	case 'd':
		sink.Emit(LinePosition{N: p.param(0, 1)})
	case 'e':
		sink.Emit(LinePositionForward{N: p.param(0, 1)})
	case 'a':
		sink.Emit(CharPositionForward{N: p.param(0, 1)})
	case '\'':
		sink.Emit(CharPositionAbsolute{N: p.param(0, 1)})
	case 'J':
		n := p.param(0, 0)
		mode, ok := eraseDisplayMode(n)
		if !ok {
			sink.ReportError(InvalidParameterError{Command: "EraseDisplay", Value: n})
		}
		sink.Emit(EraseDisplay{Mode: mode})
	case 'K':
		n := p.param(0, 0)
		mode, ok := eraseLineMode(n)
		if !ok {
			sink.ReportError(InvalidParameterError{Command: "EraseLine", Value: n})
		}
		sink.Emit(EraseLine{Mode: mode})
	case 'S':
		sink.Emit(Scroll{Dir: Up, N: p.param(0, 1)})
	case 'T':
		sink.Emit(Scroll{Dir: Down, N: p.param(0, 1)})
	case 'm':
		parseSGR(p.params, sink)
	case 'r':
		sink.Emit(SetScrollingRegion{Top: p.param(0, 1), Bottom: p.param(1, 0)})
	case '@':
		sink.Emit(InsertChars{N: p.param(0, 1)})
	case 'P':
		sink.Emit(DeleteChars{N: p.param(0, 1)})
	case 'X':
		sink.Emit(EraseChars{N: p.param(0, 1)})
	case 'L':
		sink.Emit(InsertLines{N: p.param(0, 1)})
	case 'M':
		sink.Emit(DeleteLines{N: p.param(0, 1)})
	case 'b':
		sink.Emit(RepeatPrecedingChar{N: p.param(0, 1)})
	case 's':
		sink.Emit(SaveCursorPosition{})
	case 'u':
		sink.Emit(RestoreCursorPosition{})
	case 'g':
		if p.param(0, 0) == 0 {
			sink.Emit(ClearTabStop{})
		} else {
			sink.Emit(ClearAllTabStops{})
		}
	case 'Y':
		sink.Emit(TabForward{N: p.param(0, 1)})
	case 'Z':
		sink.Emit(TabBackward{N: p.param(0, 1)})
	case 't':
		p.dispatchWindowOp(sink)
	case '~':
		sink.Emit(SpecialKey{N: p.param(0, 0)})
	case 'c':
		sink.Emit(RequestDeviceAttributes{})
	case 'n':
		n := p.param(0, 0)
		report, ok := statusReport(n)
		if !ok {
			sink.ReportError(InvalidParameterError{Command: "RequestStatusReport", Value: n})
			return
		}
		sink.Emit(RequestStatusReport{Report: report})
	case 'h':
		for _, n := range p.params {
			mode, ok := ansiMode(n)
			if !ok {
				sink.ReportError(InvalidParameterError{Command: "SetMode", Value: n})
				continue
			}
			sink.Emit(SetMode{Mode: mode})
		}
	case 'l':
		for _, n := range p.params {
			mode, ok := ansiMode(n)
			if !ok {
				sink.ReportError(InvalidParameterError{Command: "ResetMode", Value: n})
				continue
			}
			sink.Emit(ResetMode{Mode: mode})
		}
	default:
		sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
	}
}

// dispatchWindowOp decodes CSI ... t, which overloads on parameter
// count: three parameters is a resize request, four is a truecolor
// palette assignment.
func (p *Parser) dispatchWindowOp(sink Sink) {
	switch len(p.params) {
	case 3:
		if p.params[0] != 8 {
			sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
			return
		}
		sink.Emit(ResizeTerminal{
			Height: clamp(p.params[1], 1, 60),
			Width:  clamp(p.params[2], 1, 132),
		})
	case 4:
		color := RGBColor(uint8(p.params[1]), uint8(p.params[2]), uint8(p.params[3]))
		switch p.params[0] {
		case 0:
			sink.Emit(SetAttribute{Attr: SetBackground{Color: color}})
		case 1:
			sink.Emit(SetAttribute{Attr: SetForeground{Color: color}})
		default:
			sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
		}
	default:
		sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
	}
}

func clamp(v, lo, hi uint16) uint16 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dispatchPrefixed decodes CSI sequences carrying a private marker or
// intermediate byte.
func (p *Parser) dispatchPrefixed(prefix, final byte, sink Sink) {
	switch prefix {
	case '?':
		p.dispatchPrivateMode(final, sink)
	case '*':
		switch final {
		case 'z':
			id := int(p.param(0, 0))
			p.reset()
			p.invokeMacro(id, sink)
		case 'r':
			sink.Emit(SelectCommunicationSpeed{Speed: p.param(0, 0), Device: p.param(1, 0)})
		case 'y':
			// First parameter is the request id, unused here.
			sink.Emit(RequestChecksum{
				Page:   uint8(p.param(1, 0)),
				Top:    p.param(2, 0),
				Left:   p.param(3, 0),
				Bottom: p.param(4, 0),
				Right:  p.param(5, 0),
			})
		default:
			sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
		}
	case '$':
		switch final {
		case 'w':
			sink.Emit(RequestTabStopReport{Kind: p.param(0, 0)})
		case 'x':
			sink.Emit(FillArea{
				Char:   p.param(0, 0),
				Top:    p.param(1, 1),
				Left:   p.param(2, 1),
				Bottom: p.param(3, 1),
				Right:  p.param(4, 1),
			})
		case 'z':
			sink.Emit(EraseArea{
				Top:    p.param(0, 1),
				Left:   p.param(1, 1),
				Bottom: p.param(2, 1),
				Right:  p.param(3, 1),
			})
		case '{':
			sink.Emit(SelectiveEraseArea{
				Top:    p.param(0, 1),
				Left:   p.param(1, 1),
				Bottom: p.param(2, 1),
				Right:  p.param(3, 1),
			})
		default:
			sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
		}
	case ' ':
		switch final {
		case 'q':
			blinking, shape := caretStyle(p.param(0, 1))
			sink.Emit(SetCaretStyle{Blinking: blinking, Shape: shape})
		case 'D':
			sink.Emit(SelectFont{Primary: p.param(0, 0), Secondary: p.param(1, 0)})
		case 'A':
			sink.Emit(Scroll{Dir: Right, N: p.param(0, 1)})
		case '@':
			sink.Emit(Scroll{Dir: Left, N: p.param(0, 1)})
		case 'd':
			if p.param(0, 0) == 0 {
				sink.Emit(ClearTabStop{})
			} else {
				sink.Emit(ClearAllTabStops{})
			}
		default:
			sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
		}
	case '>':
		sink.ReportError(MalformedSequenceError{Description: "unsupported CSI > sequence"})
	case '!':
		sink.ReportError(MalformedSequenceError{Description: "unsupported CSI ! sequence"})
	case '=':
		sink.ReportError(MalformedSequenceError{Description: "unsupported CSI = sequence"})
	default:
		sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
	}
}

// dispatchPrivateMode decodes CSI ? ... h / l, one command or error per
// parameter.
func (p *Parser) dispatchPrivateMode(final byte, sink Sink) {
	switch final {
	case 'h':
		for _, n := range p.params {
			mode, ok := privateMode(n)
			if !ok {
				sink.ReportError(InvalidParameterError{Command: "SetPrivateMode", Value: n})
				continue
			}
			sink.Emit(SetPrivateMode{Mode: mode})
		}
	case 'l':
		for _, n := range p.params {
			mode, ok := privateMode(n)
			if !ok {
				sink.ReportError(InvalidParameterError{Command: "ResetPrivateMode", Value: n})
				continue
			}
			sink.Emit(ResetPrivateMode{Mode: mode})
		}
	default:
		sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
	}
}

// caretStyle maps the DECSCUSR parameter to shape and blink. Unknown
// values fall back to the default blinking block.
func caretStyle(n uint16) (bool, CaretShape) {
	switch n {
	case 0, 1:
		return true, CaretBlock
	case 2:
		return false, CaretBlock
	case 3:
		return true, CaretUnderline
	case 4:
		return false, CaretUnderline
	case 5:
		return true, CaretBar
	case 6:
		return false, CaretBar
	default:
		return true, CaretBlock
	}
}
