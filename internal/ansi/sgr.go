package ansi

// Select Graphic Rendition (CSI ... m) decoding. Each recognized SGR
// code maps to one Attribute; a parameter list emits its attributes in
// order through the sink.

// ColorMode discriminates the color variants carried by Color.
type ColorMode uint8

const (
	// ColorDefault is the terminal's configured default color.
	ColorDefault ColorMode = iota
	// ColorBase is one of the 16 base ANSI colors (Index 0-15).
	ColorBase
	// ColorExtended is a 256-palette index (Index 0-255).
	ColorExtended
	// ColorRGB is a 24-bit direct color.
	ColorRGB
)

// Color is a terminal color in one of four modes. The zero value is the
// default color.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

// BaseColor returns one of the 16 base ANSI colors.
func BaseColor(index uint8) Color {
	return Color{Mode: ColorBase, Index: index}
}

// ExtendedColor returns a 256-palette color.
func ExtendedColor(index uint8) Color {
	return Color{Mode: ColorExtended, Index: index}
}

// RGBColor returns a 24-bit direct color.
func RGBColor(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Intensity is the weight selected by SGR 1/2/22.
type Intensity uint8

const (
	IntensityNormal Intensity = iota
	IntensityBold
	IntensityFaint
)

// UnderlineStyle is the underline variant selected by SGR 4/21/24.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
)

// BlinkRate is the blink variant selected by SGR 5/6/25.
type BlinkRate uint8

const (
	BlinkNone BlinkRate = iota
	BlinkSlow
	BlinkRapid
)

// FrameStyle is the framing variant selected by SGR 51/52/54.
type FrameStyle uint8

const (
	FrameNone FrameStyle = iota
	FrameFramed
	FrameEncircled
)

// Ideogram is the ideogram decoration selected by SGR 60-65.
type Ideogram uint8

const (
	IdeogramUnderline Ideogram = iota
	IdeogramDoubleUnderline
	IdeogramOverline
	IdeogramDoubleOverline
	IdeogramStress
	IdeogramOff
)

// Attribute is a single decoded SGR attribute, delivered wrapped in a
// SetAttribute command.
type Attribute interface {
	isAttribute()
}

type (
	// Reset restores all attributes to their defaults (SGR 0).
	Reset struct{}
	// SetIntensity selects bold, faint, or normal weight.
	SetIntensity struct{ Level Intensity }
	// SetItalic turns italic (or fraktur-off) on or off.
	SetItalic struct{ On bool }
	// SetFraktur selects the fraktur typeface (SGR 20).
	SetFraktur struct{}
	// SetUnderline selects the underline style.
	SetUnderline struct{ Style UnderlineStyle }
	// SetCrossedOut turns strike-through on or off.
	SetCrossedOut struct{ On bool }
	// SetBlink selects the blink rate.
	SetBlink struct{ Rate BlinkRate }
	// SetInverse turns reverse video on or off.
	SetInverse struct{ On bool }
	// SetConcealed turns concealed text on or off.
	SetConcealed struct{ On bool }
	// SetFrame selects framed, encircled, or neither.
	SetFrame struct{ Style FrameStyle }
	// SetOverlined turns the overline on or off.
	SetOverlined struct{ On bool }
	// SetFont selects an alternative font, 0 being the primary (SGR 10-19).
	SetFont struct{ N uint8 }
	// SetForeground sets the foreground color.
	SetForeground struct{ Color Color }
	// SetBackground sets the background color.
	SetBackground struct{ Color Color }
	// SetIdeogram selects an ideogram decoration (SGR 60-65).
	SetIdeogram struct{ Kind Ideogram }
)

func (Reset) isAttribute()         {}
func (SetIntensity) isAttribute()  {}
func (SetItalic) isAttribute()     {}
func (SetFraktur) isAttribute()    {}
func (SetUnderline) isAttribute()  {}
func (SetCrossedOut) isAttribute() {}
func (SetBlink) isAttribute()      {}
func (SetInverse) isAttribute()    {}
func (SetConcealed) isAttribute()  {}
func (SetFrame) isAttribute()      {}
func (SetOverlined) isAttribute()  {}
func (SetFont) isAttribute()       {}
func (SetForeground) isAttribute() {}
func (SetBackground) isAttribute() {}
func (SetIdeogram) isAttribute()   {}

// ansiColorOffsets maps SGR digit (30+d, 40+d, 90+d, 100+d) to the base
// color index. The SGR ordering is blue-bit-last; the palette ordering
// is red-bit-last.
var ansiColorOffsets = [8]uint8{0, 4, 2, 6, 1, 5, 3, 7}

type sgrKind uint8

const (
	sgrUndefined sgrKind = iota
	sgrAttribute
	sgrExtendedForeground
	sgrExtendedBackground
)

type sgrEntry struct {
	kind sgrKind
	attr Attribute
}

func attr(a Attribute) sgrEntry { return sgrEntry{kind: sgrAttribute, attr: a} }

// sgrTable maps SGR codes 0-107 to attributes. Codes whose slot stays
// sgrUndefined (26, 50, 56-59, 66-89, 98-99) report InvalidParameterError.
var sgrTable = [108]sgrEntry{
	0:  attr(Reset{}),
	1:  attr(SetIntensity{Level: IntensityBold}),
	2:  attr(SetIntensity{Level: IntensityFaint}),
	3:  attr(SetItalic{On: true}),
	4:  attr(SetUnderline{Style: UnderlineSingle}),
	5:  attr(SetBlink{Rate: BlinkSlow}),
	6:  attr(SetBlink{Rate: BlinkRapid}),
	7:  attr(SetInverse{On: true}),
	8:  attr(SetConcealed{On: true}),
	9:  attr(SetCrossedOut{On: true}),
	10: attr(SetFont{N: 0}),
	11: attr(SetFont{N: 1}),
	12: attr(SetFont{N: 2}),
	13: attr(SetFont{N: 3}),
	14: attr(SetFont{N: 4}),
	15: attr(SetFont{N: 5}),
	16: attr(SetFont{N: 6}),
	17: attr(SetFont{N: 7}),
	18: attr(SetFont{N: 8}),
	19: attr(SetFont{N: 9}),
	20: attr(SetFraktur{}),
	21: attr(SetUnderline{Style: UnderlineDouble}),
	22: attr(SetIntensity{Level: IntensityNormal}),
	23: attr(SetItalic{On: false}),
	24: attr(SetUnderline{Style: UnderlineNone}),
	25: attr(SetBlink{Rate: BlinkNone}),
	27: attr(SetInverse{On: false}),
	28: attr(SetConcealed{On: false}),
	29: attr(SetCrossedOut{On: false}),

	30: attr(SetForeground{Color: BaseColor(ansiColorOffsets[0])}),
	31: attr(SetForeground{Color: BaseColor(ansiColorOffsets[1])}),
	32: attr(SetForeground{Color: BaseColor(ansiColorOffsets[2])}),
	33: attr(SetForeground{Color: BaseColor(ansiColorOffsets[3])}),
	34: attr(SetForeground{Color: BaseColor(ansiColorOffsets[4])}),
	35: attr(SetForeground{Color: BaseColor(ansiColorOffsets[5])}),
	36: attr(SetForeground{Color: BaseColor(ansiColorOffsets[6])}),
	37: attr(SetForeground{Color: BaseColor(ansiColorOffsets[7])}),
	38: {kind: sgrExtendedForeground},
	39: attr(SetForeground{Color: Color{}}),

	40: attr(SetBackground{Color: BaseColor(ansiColorOffsets[0])}),
	41: attr(SetBackground{Color: BaseColor(ansiColorOffsets[1])}),
	42: attr(SetBackground{Color: BaseColor(ansiColorOffsets[2])}),
	43: attr(SetBackground{Color: BaseColor(ansiColorOffsets[3])}),
	44: attr(SetBackground{Color: BaseColor(ansiColorOffsets[4])}),
	45: attr(SetBackground{Color: BaseColor(ansiColorOffsets[5])}),
	46: attr(SetBackground{Color: BaseColor(ansiColorOffsets[6])}),
	47: attr(SetBackground{Color: BaseColor(ansiColorOffsets[7])}),
	48: {kind: sgrExtendedBackground},
	49: attr(SetBackground{Color: Color{}}),

	51: attr(SetFrame{Style: FrameFramed}),
	52: attr(SetFrame{Style: FrameEncircled}),
	53: attr(SetOverlined{On: true}),
	54: attr(SetFrame{Style: FrameNone}),
	55: attr(SetOverlined{On: false}),

	60: attr(SetIdeogram{Kind: IdeogramUnderline}),
	61: attr(SetIdeogram{Kind: IdeogramDoubleUnderline}),
	62: attr(SetIdeogram{Kind: IdeogramOverline}),
	63: attr(SetIdeogram{Kind: IdeogramDoubleOverline}),
	64: attr(SetIdeogram{Kind: IdeogramStress}),
	65: attr(SetIdeogram{Kind: IdeogramOff}),

	90: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[0])}),
	91: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[1])}),
	92: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[2])}),
	93: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[3])}),
	94: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[4])}),
	95: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[5])}),
	96: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[6])}),
	97: attr(SetForeground{Color: BaseColor(8 + ansiColorOffsets[7])}),

	100: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[0])}),
	101: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[1])}),
	102: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[2])}),
	103: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[3])}),
	104: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[4])}),
	105: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[5])}),
	106: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[6])}),
	107: attr(SetBackground{Color: BaseColor(8 + ansiColorOffsets[7])}),
}

// parseSGR decodes a CSI ... m parameter list, emitting one SetAttribute
// per attribute. An empty list means SGR 0.
func parseSGR(params []uint16, sink Sink) {
	if len(params) == 0 {
		sink.Emit(SetAttribute{Attr: Reset{}})
		return
	}
	for i := 0; i < len(params); i++ {
		code := params[i]
		if code >= uint16(len(sgrTable)) {
			sink.ReportError(InvalidParameterError{Command: "SGR", Value: code})
			continue
		}
		switch entry := sgrTable[code]; entry.kind {
		case sgrAttribute:
			sink.Emit(SetAttribute{Attr: entry.attr})
		case sgrExtendedForeground:
			color, consumed, err := extendedColor(params, i)
			i += consumed
			if err != nil {
				sink.ReportError(err)
				continue
			}
			sink.Emit(SetAttribute{Attr: SetForeground{Color: color}})
		case sgrExtendedBackground:
			color, consumed, err := extendedColor(params, i)
			i += consumed
			if err != nil {
				sink.ReportError(err)
				continue
			}
			sink.Emit(SetAttribute{Attr: SetBackground{Color: color}})
		default:
			sink.ReportError(InvalidParameterError{Command: "SGR", Value: code})
		}
	}
}

// extendedColor decodes the 38/48 sub-grammar starting at params[i]
// (which holds 38 or 48 itself). It returns the decoded color and how
// many parameters beyond params[i] were consumed.
func extendedColor(params []uint16, i int) (Color, int, error) {
	if i+1 >= len(params) {
		return Color{}, 0, IncompleteSequenceError{Context: "extended color"}
	}
	switch params[i+1] {
	case 5:
		if i+2 >= len(params) {
			return Color{}, 1, IncompleteSequenceError{Context: "extended color"}
		}
		return ExtendedColor(uint8(params[i+2])), 2, nil
	case 2:
		if i+4 >= len(params) {
			return Color{}, len(params) - i - 1, IncompleteSequenceError{Context: "extended color"}
		}
		return RGBColor(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4])), 4, nil
	default:
		return Color{}, 1, InvalidParameterError{Command: "extended color", Value: params[i+1]}
	}
}
