package ansi

import "math"

type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateCSIEntry
	stateCSIParam
	stateCSIInter
	stateOSCString
	stateDCSString
	stateDCSEscape
	stateAPSString
	stateAPSEscape
)

const esc = 0x1B

// maxMacroDepth bounds macro replay nesting. A macro that invokes
// itself (directly or through another macro) stops here with a
// MacroRecursionError instead of recursing forever.
const maxMacroDepth = 8

// controlCommands maps C0/DEL bytes handled in the Ground state to
// their commands. Unlisted control bytes ride along with printable text.
var controlCommands = [256]Command{
	0x07: Bell{},
	0x08: Backspace{},
	0x09: Tab{},
	0x0A: LineFeed{},
	0x0C: FormFeed{},
	0x0D: CarriageReturn{},
	0x7F: Delete{},
}

// Parser is a streaming escape sequence parser. The zero value is not
// ready to use; call NewParser. A Parser is not safe for concurrent use.
type Parser struct {
	state  parserState
	params []uint16
	inter  []byte
	buf    []byte

	macros     map[int][]byte
	macroDepth int
}

// NewParser returns a parser in the Ground state with an empty macro
// store.
func NewParser() *Parser {
	return &Parser{
		params: make([]uint16, 0, 16),
		inter:  make([]byte, 0, 4),
		buf:    make([]byte, 0, 256),
		macros: make(map[int][]byte),
	}
}

// reset returns to the Ground state and drops per-sequence scratch.
// The string buffer and macro store survive; the buffer is recycled
// when the next string sequence starts.
func (p *Parser) reset() {
	p.params = p.params[:0]
	p.inter = p.inter[:0]
	p.state = stateGround
}

// Flush ends the stream: any partially accumulated sequence is
// abandoned and the parser returns to the Ground state.
func (p *Parser) Flush(_ Sink) {
	p.buf = p.buf[:0]
	p.reset()
}

// Parse consumes one chunk of input. Printable bytes are delivered as
// maximal runs; escape sequences may span chunk boundaries.
func (p *Parser) Parse(input []byte, sink Sink) {
	i := 0
	printableStart := 0

	for i < len(input) {
		b := input[i]

		switch p.state {
		case stateGround:
			if b == esc {
				if i > printableStart {
					sink.Print(input[printableStart:i])
				}
				p.state = stateEscape
			} else if cmd := controlCommands[b]; cmd != nil {
				if i > printableStart {
					sink.Print(input[printableStart:i])
				}
				sink.Emit(cmd)
			} else {
				i++
				continue
			}
			i++
			printableStart = i

		case stateEscape:
			switch b {
			case '[':
				p.params = p.params[:0]
				p.inter = p.inter[:0]
				p.state = stateCSIEntry
			case ']':
				p.buf = p.buf[:0]
				p.state = stateOSCString
			case 'P':
				p.buf = p.buf[:0]
				p.state = stateDCSString
			case '_':
				p.buf = p.buf[:0]
				p.state = stateAPSString
			case 'D':
				sink.Emit(Index{})
				p.reset()
			case 'E':
				sink.Emit(NextLine{})
				p.reset()
			case 'H':
				sink.Emit(SetTabStop{})
				p.reset()
			case 'M':
				sink.Emit(ReverseIndex{})
				p.reset()
			case '7':
				sink.Emit(SaveCursor{})
				p.reset()
			case '8':
				sink.Emit(RestoreCursor{})
				p.reset()
			case 'c':
				sink.Emit(FullReset{})
				p.reset()
			default:
				sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
				p.reset()
			}
			i++
			printableStart = i

		case stateCSIEntry:
			switch {
			case b >= '0' && b <= '9':
				p.params = append(p.params, uint16(b-'0'))
				p.state = stateCSIParam
				i++
			case b == ';':
				p.params = append(p.params, 0)
				i++
			case b >= 0x3C && b <= 0x3F:
				// Private marker (?, >, =, <); stays in entry so
				// parameters may follow.
				p.inter = append(p.inter, b)
				i++
			case b >= 0x20 && b <= 0x2F:
				p.inter = append(p.inter, b)
				p.state = stateCSIInter
				i++
			case b >= 0x40 && b <= 0x7E:
				p.dispatchCSI(b, sink)
				p.reset()
				i++
				printableStart = i
			default:
				p.reset()
				i++
				printableStart = i
			}

		case stateCSIParam:
			switch {
			case b >= '0' && b <= '9':
				if n := len(p.params); n > 0 {
					p.params[n-1] = satDigit(p.params[n-1], b)
				} else {
					p.params = append(p.params, uint16(b-'0'))
				}
				i++
			case b == ';':
				p.params = append(p.params, 0)
				i++
			case b == '\'':
				// Apostrophe final (HPA); checked before the
				// intermediate range it falls into.
				p.dispatchCSI(b, sink)
				p.reset()
				i++
				printableStart = i
			case b >= 0x20 && b <= 0x2F:
				p.inter = append(p.inter, b)
				p.state = stateCSIInter
				i++
			case b >= 0x40 && b <= 0x7E:
				p.dispatchCSI(b, sink)
				p.reset()
				i++
				printableStart = i
			default:
				p.reset()
				i++
				printableStart = i
			}

		case stateCSIInter:
			switch {
			case b >= '0' && b <= '9':
				if n := len(p.params); n > 0 {
					p.params[n-1] = satDigit(p.params[n-1], b)
				} else {
					p.params = append(p.params, uint16(b-'0'))
				}
				i++
			case b == ';':
				p.params = append(p.params, 0)
				i++
			case b >= 0x20 && b <= 0x2F:
				p.inter = append(p.inter, b)
				i++
			case b >= 0x40 && b <= 0x7E:
				p.dispatchCSI(b, sink)
				p.reset()
				i++
				printableStart = i
			default:
				sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
				p.reset()
				i++
				printableStart = i
			}

		case stateOSCString:
			switch b {
			case 0x07:
				p.dispatchOSC(sink)
				p.reset()
				i++
				printableStart = i
			case esc:
				if i+1 < len(input) && input[i+1] == '\\' {
					p.dispatchOSC(sink)
					p.reset()
					i += 2
					printableStart = i
				} else {
					// ESC not followed by \ in this chunk is OSC data.
					p.buf = append(p.buf, b)
					i++
				}
			default:
				p.buf = append(p.buf, b)
				i++
			}

		case stateDCSString:
			if b == esc {
				p.state = stateDCSEscape
			} else {
				p.buf = append(p.buf, b)
			}
			i++

		case stateDCSEscape:
			if b == '\\' {
				p.dispatchDCS(sink)
				p.buf = p.buf[:0]
				p.reset()
				i++
				printableStart = i
			} else {
				// False alarm, the ESC was DCS data.
				p.buf = append(p.buf, esc, b)
				p.state = stateDCSString
				i++
			}

		case stateAPSString:
			if b == esc {
				p.state = stateAPSEscape
			} else {
				p.buf = append(p.buf, b)
			}
			i++

		case stateAPSEscape:
			if b == '\\' {
				sink.APS(p.buf)
				p.reset()
				i++
				printableStart = i
			} else {
				// False alarm, the ESC was APS data.
				p.buf = append(p.buf, esc, b)
				p.state = stateAPSString
				i++
			}
		}
	}

	if i > printableStart && p.state == stateGround {
		sink.Print(input[printableStart:i])
	}
}

// param returns the parameter at idx, or def when absent. A slot an
// explicit empty parameter created counts as present with value 0.
func (p *Parser) param(idx int, def uint16) uint16 {
	if idx < len(p.params) {
		return p.params[idx]
	}
	return def
}

// satDigit folds a decimal digit into cur, saturating at 65535.
func satDigit(cur uint16, b byte) uint16 {
	d := uint16(b - '0')
	if cur > (math.MaxUint16-d)/10 {
		return math.MaxUint16
	}
	return cur*10 + d
}

// invokeMacro replays a stored macro through the parser. Unknown IDs
// are ignored. Depth is bounded by maxMacroDepth.
func (p *Parser) invokeMacro(id int, sink Sink) {
	data, ok := p.macros[id]
	if !ok {
		return
	}
	if p.macroDepth >= maxMacroDepth {
		sink.ReportError(MacroRecursionError{ID: id})
		return
	}
	p.macroDepth++
	p.Parse(data, sink)
	p.macroDepth--
}
