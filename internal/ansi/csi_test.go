package ansi

import "testing"

func TestCursorMovement(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"\x1b[A", MoveCursor{Dir: Up, N: 1}},
		{"\x1b[5A", MoveCursor{Dir: Up, N: 5}},
		{"\x1b[B", MoveCursor{Dir: Down, N: 1}},
		{"\x1b[3C", MoveCursor{Dir: Right, N: 3}},
		{"\x1b[2D", MoveCursor{Dir: Left, N: 2}},
		{"\x1b[4j", MoveCursor{Dir: Left, N: 4}},
		{"\x1b[4k", MoveCursor{Dir: Up, N: 4}},
		{"\x1b[2E", CursorNextLine{N: 2}},
		{"\x1b[2F", CursorPreviousLine{N: 2}},
		{"\x1b[9G", CursorColumn{N: 9}},
		{"\x1b[H", CursorPosition{Row: 1, Col: 1}},
		{"\x1b[12;40H", CursorPosition{Row: 12, Col: 40}},
		{"\x1b[12;40f", CursorPosition{Row: 12, Col: 40}},
		{"\x1b[7d", LinePosition{N: 7}},
		{"\x1b[7e", LinePositionForward{N: 7}},
		{"\x1b[7a", CharPositionForward{N: 7}},
		{"\x1b[7'", CharPositionAbsolute{N: 7}},
	}
	for _, tt := range tests {
		rec := parse(t, tt.input)
		checkNoErrors(t, rec)
		if len(rec.commands) != 1 || rec.commands[0] != tt.want {
			t.Errorf("%q: commands = %#v, want [%#v]", tt.input, rec.commands, tt.want)
		}
	}
}

func TestExplicitZeroParameterIsNotDefaulted(t *testing.T) {
	// CSI 0 A carries an explicit 0; only a missing parameter takes
	// the default of 1.
	rec := parse(t, "\x1b[0A")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{MoveCursor{Dir: Up, N: 0}})
}

func TestEmptyParameterSlots(t *testing.T) {
	// CSI ;5H: the empty first slot is an explicit 0.
	rec := parse(t, "\x1b[;5H")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{CursorPosition{Row: 0, Col: 5}})
}

func TestEraseInDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  EraseDisplayMode
	}{
		{"\x1b[J", EraseToEnd},
		{"\x1b[0J", EraseToEnd},
		{"\x1b[1J", EraseToStart},
		{"\x1b[2J", EraseAll},
		{"\x1b[3J", EraseAllAndScrollback},
	}
	for _, tt := range tests {
		rec := parse(t, tt.input)
		checkNoErrors(t, rec)
		checkCommands(t, rec, []Command{EraseDisplay{Mode: tt.want}})
	}
}

func TestEraseInDisplayBadModeFallsBack(t *testing.T) {
	rec := parse(t, "\x1b[7J")
	want := InvalidParameterError{Command: "EraseDisplay", Value: 7}
	if len(rec.errors) != 1 || rec.errors[0] != want {
		t.Errorf("errors = %v, want [%v]", rec.errors, want)
	}
	checkCommands(t, rec, []Command{EraseDisplay{Mode: EraseToEnd}})
}

func TestEraseInLine(t *testing.T) {
	rec := parse(t, "\x1b[K\x1b[1K\x1b[2K")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{
		EraseLine{Mode: EraseLineToEnd},
		EraseLine{Mode: EraseLineToStart},
		EraseLine{Mode: EraseLineAll},
	})
}

func TestEraseInLineBadModeFallsBack(t *testing.T) {
	rec := parse(t, "\x1b[9K")
	want := InvalidParameterError{Command: "EraseLine", Value: 9}
	if len(rec.errors) != 1 || rec.errors[0] != want {
		t.Errorf("errors = %v, want [%v]", rec.errors, want)
	}
	checkCommands(t, rec, []Command{EraseLine{Mode: EraseLineToEnd}})
}

func TestEditingCommands(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"\x1b[3@", InsertChars{N: 3}},
		{"\x1b[3P", DeleteChars{N: 3}},
		{"\x1b[3X", EraseChars{N: 3}},
		{"\x1b[3L", InsertLines{N: 3}},
		{"\x1b[3M", DeleteLines{N: 3}},
		{"\x1b[3b", RepeatPrecedingChar{N: 3}},
		{"\x1b[2S", Scroll{Dir: Up, N: 2}},
		{"\x1b[2T", Scroll{Dir: Down, N: 2}},
		{"\x1b[3Y", TabForward{N: 3}},
		{"\x1b[3Z", TabBackward{N: 3}},
	}
	for _, tt := range tests {
		rec := parse(t, tt.input)
		checkNoErrors(t, rec)
		if len(rec.commands) != 1 || rec.commands[0] != tt.want {
			t.Errorf("%q: commands = %#v, want [%#v]", tt.input, rec.commands, tt.want)
		}
	}
}

func TestScrollingRegionDefaults(t *testing.T) {
	rec := parse(t, "\x1b[r")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{SetScrollingRegion{Top: 1, Bottom: 0}})

	rec = parse(t, "\x1b[5;20r")
	checkCommands(t, rec, []Command{SetScrollingRegion{Top: 5, Bottom: 20}})
}

func TestSaveRestoreCursorPosition(t *testing.T) {
	rec := parse(t, "\x1b[s\x1b[u")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{SaveCursorPosition{}, RestoreCursorPosition{}})
}

func TestTabStopClearing(t *testing.T) {
	rec := parse(t, "\x1b[g\x1b[0g\x1b[3g")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{ClearTabStop{}, ClearTabStop{}, ClearAllTabStops{}})
}

func TestResizeTerminalClamps(t *testing.T) {
	rec := parse(t, "\x1b[8;25;80t")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{ResizeTerminal{Height: 25, Width: 80}})

	rec = parse(t, "\x1b[8;0;500t")
	checkCommands(t, rec, []Command{ResizeTerminal{Height: 1, Width: 132}})

	rec = parse(t, "\x1b[8;99;0t")
	checkCommands(t, rec, []Command{ResizeTerminal{Height: 60, Width: 1}})
}

func TestWindowOpTruecolor(t *testing.T) {
	rec := parse(t, "\x1b[1;255;128;0t")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{SetAttribute{Attr: SetForeground{Color: RGBColor(255, 128, 0)}}})

	rec = parse(t, "\x1b[0;1;2;3t")
	checkCommands(t, rec, []Command{SetAttribute{Attr: SetBackground{Color: RGBColor(1, 2, 3)}}})
}

func TestWindowOpMalformed(t *testing.T) {
	for _, input := range []string{"\x1b[t", "\x1b[1;2t", "\x1b[9;25;80t", "\x1b[2;1;2;3t", "\x1b[1;2;3;4;5t"} {
		rec := parse(t, input)
		if len(rec.errors) != 1 {
			t.Errorf("%q: errors = %v, want one", input, rec.errors)
			continue
		}
		if _, ok := rec.errors[0].(MalformedSequenceError); !ok {
			t.Errorf("%q: error = %T, want MalformedSequenceError", input, rec.errors[0])
		}
		if len(rec.commands) != 0 {
			t.Errorf("%q: commands = %#v, want none", input, rec.commands)
		}
	}
}

func TestSpecialKeyAndReports(t *testing.T) {
	rec := parse(t, "\x1b[17~\x1b[c\x1b[5n\x1b[6n")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{
		SpecialKey{N: 17},
		RequestDeviceAttributes{},
		RequestStatusReport{Report: StatusOperating},
		RequestStatusReport{Report: StatusCursorPosition},
	})
}

func TestStatusReportBadParameter(t *testing.T) {
	rec := parse(t, "\x1b[7n")
	want := InvalidParameterError{Command: "RequestStatusReport", Value: 7}
	if len(rec.errors) != 1 || rec.errors[0] != want {
		t.Errorf("errors = %v, want [%v]", rec.errors, want)
	}
	if len(rec.commands) != 0 {
		t.Errorf("commands = %#v, want none", rec.commands)
	}
}

func TestAnsiModes(t *testing.T) {
	rec := parse(t, "\x1b[4h\x1b[4l")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{SetMode{Mode: ModeInsertReplace}, ResetMode{Mode: ModeInsertReplace}})
}

func TestAnsiModeUnknownParameter(t *testing.T) {
	// CSI 4;2;4h: the recognized parameters still take effect, each
	// unknown one reports separately.
	rec := parse(t, "\x1b[4;2;4h")
	want := InvalidParameterError{Command: "SetMode", Value: 2}
	if len(rec.errors) != 1 || rec.errors[0] != want {
		t.Errorf("errors = %v, want [%v]", rec.errors, want)
	}
	checkCommands(t, rec, []Command{SetMode{Mode: ModeInsertReplace}, SetMode{Mode: ModeInsertReplace}})
}

func TestPrivateModes(t *testing.T) {
	rec := parse(t, "\x1b[?25h\x1b[?25l\x1b[?1049l\x1b[?7;1000h")
	checkCommands(t, rec, []Command{
		SetPrivateMode{Mode: ModeCursorVisible},
		ResetPrivateMode{Mode: ModeCursorVisible},
		SetPrivateMode{Mode: ModeAutoWrap},
		SetPrivateMode{Mode: ModeVT200Mouse},
	})
	want := InvalidParameterError{Command: "ResetPrivateMode", Value: 1049}
	if len(rec.errors) != 1 || rec.errors[0] != want {
		t.Errorf("errors = %v, want [%v]", rec.errors, want)
	}
}

func TestPrivateModeBadFinal(t *testing.T) {
	rec := parse(t, "\x1b[?25X")
	if len(rec.errors) != 1 {
		t.Fatalf("errors = %v, want one", rec.errors)
	}
	if _, ok := rec.errors[0].(MalformedSequenceError); !ok {
		t.Errorf("error = %T, want MalformedSequenceError", rec.errors[0])
	}
}

func TestCaretStyle(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"\x1b[ q", SetCaretStyle{Blinking: true, Shape: CaretBlock}},
		{"\x1b[0 q", SetCaretStyle{Blinking: true, Shape: CaretBlock}},
		{"\x1b[1 q", SetCaretStyle{Blinking: true, Shape: CaretBlock}},
		{"\x1b[2 q", SetCaretStyle{Blinking: false, Shape: CaretBlock}},
		{"\x1b[3 q", SetCaretStyle{Blinking: true, Shape: CaretUnderline}},
		{"\x1b[4 q", SetCaretStyle{Blinking: false, Shape: CaretUnderline}},
		{"\x1b[5 q", SetCaretStyle{Blinking: true, Shape: CaretBar}},
		{"\x1b[6 q", SetCaretStyle{Blinking: false, Shape: CaretBar}},
		{"\x1b[99 q", SetCaretStyle{Blinking: true, Shape: CaretBlock}},
	}
	for _, tt := range tests {
		rec := parse(t, tt.input)
		checkNoErrors(t, rec)
		if len(rec.commands) != 1 || rec.commands[0] != tt.want {
			t.Errorf("%q: commands = %#v, want [%#v]", tt.input, rec.commands, tt.want)
		}
	}
}

func TestSpacePrefixedCommands(t *testing.T) {
	rec := parse(t, "\x1b[0;1 D\x1b[2 A\x1b[2 @\x1b[0 d\x1b[1 d")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{
		SelectFont{Primary: 0, Secondary: 1},
		Scroll{Dir: Right, N: 2},
		Scroll{Dir: Left, N: 2},
		ClearTabStop{},
		ClearAllTabStops{},
	})
}

func TestAsteriskPrefixedCommands(t *testing.T) {
	rec := parse(t, "\x1b[1;8*r\x1b[1;0;3;4;5;6*y")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{
		SelectCommunicationSpeed{Speed: 1, Device: 8},
		RequestChecksum{Page: 0, Top: 3, Left: 4, Bottom: 5, Right: 6},
	})
}

func TestRectangleCommands(t *testing.T) {
	rec := parse(t, "\x1b[2$w\x1b[65;1;1;5;10$x\x1b[2;3;4;5$z\x1b[2;3;4;5${")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{
		RequestTabStopReport{Kind: 2},
		FillArea{Char: 65, Top: 1, Left: 1, Bottom: 5, Right: 10},
		EraseArea{Top: 2, Left: 3, Bottom: 4, Right: 5},
		SelectiveEraseArea{Top: 2, Left: 3, Bottom: 4, Right: 5},
	})
}

func TestRectangleDefaults(t *testing.T) {
	rec := parse(t, "\x1b[$x\x1b[$z")
	checkNoErrors(t, rec)
	checkCommands(t, rec, []Command{
		FillArea{Char: 0, Top: 1, Left: 1, Bottom: 1, Right: 1},
		EraseArea{Top: 1, Left: 1, Bottom: 1, Right: 1},
	})
}

func TestUnsupportedPrefixes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\x1b[>0c", "malformed sequence: unsupported CSI > sequence"},
		{"\x1b[!p", "malformed sequence: unsupported CSI ! sequence"},
		{"\x1b[=1h", "malformed sequence: unsupported CSI = sequence"},
	}
	for _, tt := range tests {
		rec := parse(t, tt.input)
		if len(rec.errors) != 1 || rec.errors[0].Error() != tt.want {
			t.Errorf("%q: errors = %v, want [%s]", tt.input, rec.errors, tt.want)
		}
		if len(rec.commands) != 0 {
			t.Errorf("%q: commands = %#v, want none", tt.input, rec.commands)
		}
	}
}

func TestMixedPrefixBytesAbortSilently(t *testing.T) {
	// A private marker followed by a second prefix byte forms no
	// recognized sequence; it is dropped without an error report.
	rec := parse(t, "\x1b[?25 qok")
	checkNoErrors(t, rec)
	if len(rec.commands) != 0 {
		t.Errorf("commands = %#v, want none", rec.commands)
	}
	if len(rec.prints) != 1 || rec.prints[0] != "ok" {
		t.Errorf("prints = %q, want [ok]", rec.prints)
	}
}

func TestUnknownFinalByte(t *testing.T) {
	rec := parse(t, "\x1b[5i")
	if len(rec.errors) != 1 {
		t.Fatalf("errors = %v, want one", rec.errors)
	}
	if _, ok := rec.errors[0].(MalformedSequenceError); !ok {
		t.Errorf("error = %T, want MalformedSequenceError", rec.errors[0])
	}
}
