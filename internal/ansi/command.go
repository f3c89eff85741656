package ansi

// Sink receives the decoded output of the parser. It is implemented by
// the consumer (a screen buffer, a recorder, a transcoder). All slice
// arguments are borrowed: they point into the parser's input buffer or
// scratch buffers and are only valid for the duration of the call.
type Sink interface {
	// Print delivers a maximal run of printable bytes in document order.
	Print(text []byte)
	// Emit delivers a single fully decoded terminal command.
	Emit(cmd Command)
	// DeviceControl delivers a DCS-derived payload.
	DeviceControl(dc DeviceControl)
	// OperatingSystemCommand delivers an OSC-derived payload.
	OperatingSystemCommand(osc OperatingSystemCommand)
	// APS delivers a raw Application Program String body, uninterpreted.
	APS(data []byte)
	// ReportError delivers a non-fatal diagnostic; the stream continues.
	ReportError(err error)
}

// Command is a fully decoded terminal command.
type Command interface {
	isCommand()
}

// Direction of cursor motion or scrolling.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// EraseDisplayMode selects the region of an Erase in Display (CSI n J).
type EraseDisplayMode uint8

const (
	EraseToEnd            EraseDisplayMode = iota // cursor to end of display
	EraseToStart                                  // start of display to cursor
	EraseAll                                      // entire display
	EraseAllAndScrollback                         // entire display and scrollback
)

func eraseDisplayMode(n uint16) (EraseDisplayMode, bool) {
	if n <= 3 {
		return EraseDisplayMode(n), true
	}
	return EraseToEnd, false
}

// EraseLineMode selects the region of an Erase in Line (CSI n K).
type EraseLineMode uint8

const (
	EraseLineToEnd   EraseLineMode = iota // cursor to end of line
	EraseLineToStart                      // start of line to cursor
	EraseLineAll                          // entire line
)

func eraseLineMode(n uint16) (EraseLineMode, bool) {
	if n <= 2 {
		return EraseLineMode(n), true
	}
	return EraseLineToEnd, false
}

// StatusReport identifies a Device Status Report request (CSI n n).
type StatusReport uint8

const (
	StatusOperating      StatusReport = 5 // reply ESC[0n
	StatusCursorPosition StatusReport = 6 // reply ESC[{row};{col}R
)

func statusReport(n uint16) (StatusReport, bool) {
	switch n {
	case 5, 6:
		return StatusReport(n), true
	}
	return 0, false
}

// Mode is a standard ANSI mode for SM/RM (CSI n h / CSI n l).
type Mode uint16

// ModeInsertReplace is IRM: set inserts characters, reset overwrites.
const ModeInsertReplace Mode = 4

func ansiMode(n uint16) (Mode, bool) {
	if n == 4 {
		return ModeInsertReplace, true
	}
	return 0, false
}

// PrivateMode is a DEC private mode for DECSET/DECRST (CSI ? n h / l).
type PrivateMode uint16

const (
	ModeSmoothScroll        PrivateMode = 4    // DECSCLM
	ModeOrigin              PrivateMode = 6    // DECOM
	ModeAutoWrap            PrivateMode = 7    // DECAWM
	ModeX10Mouse            PrivateMode = 9
	ModeCursorVisible       PrivateMode = 25   // DECTCEM
	ModeIceColors           PrivateMode = 33   // background intensity instead of blink
	ModeCursorBlinking      PrivateMode = 35   // ATT610
	ModeLeftRightMargin     PrivateMode = 69   // DECLRMM
	ModeVT200Mouse          PrivateMode = 1000
	ModeVT200HighlightMouse PrivateMode = 1001
	ModeButtonEventMouse    PrivateMode = 1002
	ModeAnyEventMouse       PrivateMode = 1003
	ModeFocusEvent          PrivateMode = 1004
	ModeMouseUTF8           PrivateMode = 1005
	ModeMouseSGR            PrivateMode = 1006
	ModeAlternateScroll     PrivateMode = 1007
	ModeMouseURXVT          PrivateMode = 1015
	ModeMousePixel          PrivateMode = 1016
)

func privateMode(n uint16) (PrivateMode, bool) {
	switch n {
	case 4, 6, 7, 9, 25, 33, 35, 69,
		1000, 1001, 1002, 1003, 1004, 1005, 1006, 1007, 1015, 1016:
		return PrivateMode(n), true
	}
	return 0, false
}

// CaretShape is the visual shape of the text caret (DECSCUSR).
type CaretShape uint8

const (
	CaretBlock CaretShape = iota
	CaretUnderline
	CaretBar
)

// C0 control commands.
type (
	// Bell is BEL (0x07).
	Bell struct{}
	// Backspace is BS (0x08).
	Backspace struct{}
	// Tab is HT (0x09).
	Tab struct{}
	// LineFeed is LF (0x0A).
	LineFeed struct{}
	// FormFeed is FF (0x0C).
	FormFeed struct{}
	// CarriageReturn is CR (0x0D).
	CarriageReturn struct{}
	// Delete is DEL (0x7F).
	Delete struct{}
)

// Single-byte ESC-final commands.
type (
	// Index is IND (ESC D): move down one line, scrolling at the bottom.
	Index struct{}
	// NextLine is NEL (ESC E).
	NextLine struct{}
	// SetTabStop is HTS (ESC H).
	SetTabStop struct{}
	// ReverseIndex is RI (ESC M): move up one line, scrolling at the top.
	ReverseIndex struct{}
	// SaveCursor is DECSC (ESC 7).
	SaveCursor struct{}
	// RestoreCursor is DECRC (ESC 8).
	RestoreCursor struct{}
	// FullReset is RIS (ESC c).
	FullReset struct{}
)

// MoveCursor is CUU/CUD/CUF/CUB (CSI n A/B/C/D).
type MoveCursor struct {
	Dir Direction
	N   uint16
}

// CursorNextLine is CNL (CSI n E).
type CursorNextLine struct{ N uint16 }

// CursorPreviousLine is CPL (CSI n F).
type CursorPreviousLine struct{ N uint16 }

// CursorColumn is CHA (CSI n G).
type CursorColumn struct{ N uint16 }

// CursorPosition is CUP/HVP (CSI row;col H or f). 1-based.
type CursorPosition struct{ Row, Col uint16 }

// LinePosition is VPA (CSI n d).
type LinePosition struct{ N uint16 }

// LinePositionForward is VPR (CSI n e).
type LinePositionForward struct{ N uint16 }

// CharPositionForward is HPR (CSI n a).
type CharPositionForward struct{ N uint16 }

// CharPositionAbsolute is HPA (CSI n ').
type CharPositionAbsolute struct{ N uint16 }

// EraseDisplay is ED (CSI n J).
type EraseDisplay struct{ Mode EraseDisplayMode }

// EraseLine is EL (CSI n K).
type EraseLine struct{ Mode EraseLineMode }

// Scroll is SU/SD (CSI n S/T) and SL/SR (CSI n SP @/A).
type Scroll struct {
	Dir Direction
	N   uint16
}

// SetAttribute is a single decoded SGR attribute. A CSI ... m sequence
// with several parameters emits one SetAttribute per attribute, in order.
type SetAttribute struct{ Attr Attribute }

// SetScrollingRegion is DECSTBM (CSI top;bottom r).
type SetScrollingRegion struct{ Top, Bottom uint16 }

// InsertChars is ICH (CSI n @).
type InsertChars struct{ N uint16 }

// DeleteChars is DCH (CSI n P).
type DeleteChars struct{ N uint16 }

// EraseChars is ECH (CSI n X).
type EraseChars struct{ N uint16 }

// InsertLines is IL (CSI n L).
type InsertLines struct{ N uint16 }

// DeleteLines is DL (CSI n M).
type DeleteLines struct{ N uint16 }

// RepeatPrecedingChar is REP (CSI n b).
type RepeatPrecedingChar struct{ N uint16 }

// SaveCursorPosition is SCP (CSI s).
type SaveCursorPosition struct{}

// RestoreCursorPosition is RCP (CSI u).
type RestoreCursorPosition struct{}

// ClearTabStop clears the tab stop at the cursor (CSI 0 g, CSI 0 SP d).
type ClearTabStop struct{}

// ClearAllTabStops clears every tab stop (CSI n g with n != 0).
type ClearAllTabStops struct{}

// TabForward is CVT (CSI n Y).
type TabForward struct{ N uint16 }

// TabBackward is CBT (CSI n Z).
type TabBackward struct{ N uint16 }

// ResizeTerminal is the CSI 8;h;w t resize request. Height is clamped
// to [1,60] and width to [1,132].
type ResizeTerminal struct{ Height, Width uint16 }

// SpecialKey is the CSI n ~ legacy key form.
type SpecialKey struct{ N uint16 }

// RequestDeviceAttributes is DA (CSI c).
type RequestDeviceAttributes struct{}

// RequestStatusReport is DSR (CSI n n).
type RequestStatusReport struct{ Report StatusReport }

// SetMode is SM (CSI n h), one command per recognized mode.
type SetMode struct{ Mode Mode }

// ResetMode is RM (CSI n l), one command per recognized mode.
type ResetMode struct{ Mode Mode }

// SetPrivateMode is DECSET (CSI ? n h), one command per recognized mode.
type SetPrivateMode struct{ Mode PrivateMode }

// ResetPrivateMode is DECRST (CSI ? n l), one command per recognized mode.
type ResetPrivateMode struct{ Mode PrivateMode }

// SetCaretStyle is DECSCUSR (CSI n SP q).
type SetCaretStyle struct {
	Blinking bool
	Shape    CaretShape
}

// SelectFont is font selection (CSI a;b SP D).
type SelectFont struct{ Primary, Secondary uint16 }

// SelectCommunicationSpeed is DECSCS (CSI a;b * r).
type SelectCommunicationSpeed struct{ Speed, Device uint16 }

// RequestChecksum is DECRQCRA (CSI id;page;t;l;b;r * y).
type RequestChecksum struct {
	Page                     uint8
	Top, Left, Bottom, Right uint16
}

// RequestTabStopReport is DECRQTSR (CSI n $ w).
type RequestTabStopReport struct{ Kind uint16 }

// FillArea is DECFRA (CSI ch;t;l;b;r $ x).
type FillArea struct {
	Char                     uint16
	Top, Left, Bottom, Right uint16
}

// EraseArea is DECERA (CSI t;l;b;r $ z).
type EraseArea struct{ Top, Left, Bottom, Right uint16 }

// SelectiveEraseArea is DECSERA (CSI t;l;b;r $ {).
type SelectiveEraseArea struct{ Top, Left, Bottom, Right uint16 }

func (Bell) isCommand()                     {}
func (Backspace) isCommand()                {}
func (Tab) isCommand()                      {}
func (LineFeed) isCommand()                 {}
func (FormFeed) isCommand()                 {}
func (CarriageReturn) isCommand()           {}
func (Delete) isCommand()                   {}
func (Index) isCommand()                    {}
func (NextLine) isCommand()                 {}
func (SetTabStop) isCommand()               {}
func (ReverseIndex) isCommand()             {}
func (SaveCursor) isCommand()               {}
func (RestoreCursor) isCommand()            {}
func (FullReset) isCommand()                {}
func (MoveCursor) isCommand()               {}
func (CursorNextLine) isCommand()           {}
func (CursorPreviousLine) isCommand()       {}
func (CursorColumn) isCommand()             {}
func (CursorPosition) isCommand()           {}
func (LinePosition) isCommand()             {}
func (LinePositionForward) isCommand()      {}
func (CharPositionForward) isCommand()      {}
func (CharPositionAbsolute) isCommand()     {}
func (EraseDisplay) isCommand()             {}
func (EraseLine) isCommand()                {}
func (Scroll) isCommand()                   {}
func (SetAttribute) isCommand()             {}
func (SetScrollingRegion) isCommand()       {}
func (InsertChars) isCommand()              {}
func (DeleteChars) isCommand()              {}
func (EraseChars) isCommand()               {}
func (InsertLines) isCommand()              {}
func (DeleteLines) isCommand()              {}
func (RepeatPrecedingChar) isCommand()      {}
func (SaveCursorPosition) isCommand()       {}
func (RestoreCursorPosition) isCommand()    {}
func (ClearTabStop) isCommand()             {}
func (ClearAllTabStops) isCommand()         {}
func (TabForward) isCommand()               {}
func (TabBackward) isCommand()              {}
func (ResizeTerminal) isCommand()           {}
func (SpecialKey) isCommand()               {}
func (RequestDeviceAttributes) isCommand()  {}
func (RequestStatusReport) isCommand()      {}
func (SetMode) isCommand()                  {}
func (ResetMode) isCommand()                {}
func (SetPrivateMode) isCommand()           {}
func (ResetPrivateMode) isCommand()         {}
func (SetCaretStyle) isCommand()            {}
func (SelectFont) isCommand()               {}
func (SelectCommunicationSpeed) isCommand() {}
func (RequestChecksum) isCommand()          {}
func (RequestTabStopReport) isCommand()     {}
func (FillArea) isCommand()                 {}
func (EraseArea) isCommand()                {}
func (SelectiveEraseArea) isCommand()       {}

// DeviceControl is a decoded DCS payload.
type DeviceControl interface {
	isDeviceControl()
}

// LoadFont carries a CTerm custom bitmap font (DCS CTerm:Font:slot:base64).
type LoadFont struct {
	Slot int
	Data []byte
}

// SixelGraphics carries the body of a sixel DCS (ESC P ... q data ST).
// VerticalScale is the pixel aspect scale selected by the first parameter.
type SixelGraphics struct {
	VerticalScale int
	Transparent   bool
	Data          []byte
}

func (LoadFont) isDeviceControl()      {}
func (SixelGraphics) isDeviceControl() {}

// OperatingSystemCommand is a decoded OSC payload.
type OperatingSystemCommand interface {
	isOperatingSystemCommand()
}

// SetTitle sets both the icon name and the window title (OSC 0).
type SetTitle struct{ Text []byte }

// SetIconName sets the icon name (OSC 1).
type SetIconName struct{ Text []byte }

// SetWindowTitle sets the window title (OSC 2).
type SetWindowTitle struct{ Text []byte }

// Hyperlink is OSC 8: params and URI separated by the first semicolon
// of the payload; the URI keeps any further semicolons.
type Hyperlink struct {
	Params []byte
	URI    []byte
}

func (SetTitle) isOperatingSystemCommand()       {}
func (SetIconName) isOperatingSystemCommand()    {}
func (SetWindowTitle) isOperatingSystemCommand() {}
func (Hyperlink) isOperatingSystemCommand()      {}
