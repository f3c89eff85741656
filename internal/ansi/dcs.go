package ansi

import (
	"bytes"
	"encoding/base64"
	"strconv"
)

var ctermFontPrefix = []byte("CTerm:Font:")

// dispatchDCS decodes a completed Device Control String. The body is
// tried as a CTerm font load, then as a parameterized sequence (macro
// definition or sixel graphics).
func (p *Parser) dispatchDCS(sink Sink) {
	if bytes.HasPrefix(p.buf, ctermFontPrefix) {
		p.dispatchFont(sink)
		return
	}

	// Leading parameters; a DCS always has at least one, defaulting to 0.
	i := 0
	p.params = p.params[:0]
	p.params = append(p.params, 0)
scan:
	for i < len(p.buf) {
		switch b := p.buf[i]; {
		case b >= '0' && b <= '9':
			p.params[len(p.params)-1] = satDigit(p.params[len(p.params)-1], b)
		case b == ';':
			p.params = append(p.params, 0)
		default:
			break scan
		}
		i++
	}

	// Macro definition: ESC P pid;pdt;enc ! z body ST
	if i+2 < len(p.buf) && p.buf[i] == '!' && p.buf[i+1] == 'z' {
		p.defineMacro(p.buf[i+2:])
		return
	}

	// Sixel graphics: ESC P ps... q body ST
	if i < len(p.buf) && p.buf[i] == 'q' {
		var scale int
		switch p.params[0] {
		case 0, 1, 5, 6:
			scale = 2
		case 2:
			scale = 5
		case 3, 4:
			scale = 3
		default:
			scale = 1
		}
		sink.DeviceControl(SixelGraphics{
			VerticalScale: scale,
			Transparent:   p.param(1, 0) == 1,
			Data:          p.buf[i+1:],
		})
		return
	}

	sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
}

// dispatchFont decodes DCS CTerm:Font:{slot}:{base64} ST.
func (p *Parser) dispatchFont(sink Sink) {
	rest := p.buf[len(ctermFontPrefix):]
	colon := bytes.IndexByte(rest, ':')
	if colon >= 0 {
		slot, err := strconv.Atoi(string(rest[:colon]))
		if err == nil && slot >= 0 {
			data, err := base64.StdEncoding.DecodeString(string(rest[colon+1:]))
			if err != nil {
				sink.ReportError(MalformedSequenceError{Description: "invalid base64 in DCS font data"})
				return
			}
			sink.DeviceControl(LoadFont{Slot: slot, Data: data})
			return
		}
	}
	sink.ReportError(MalformedSequenceError{Description: "unknown or malformed DCS sequence"})
}

// defineMacro stores a macro body under params[0] (pid). params[1]
// (pdt) of 1 clears the store first; params[2] selects the encoding:
// 0 stores the body verbatim, 1 hex-decodes it, anything else is
// silently ignored.
func (p *Parser) defineMacro(body []byte) {
	pid := int(p.params[0])
	if p.param(1, 0) == 1 {
		p.macros = make(map[int][]byte)
	}
	switch p.param(2, 0) {
	case 0:
		p.macros[pid] = append([]byte(nil), body...)
	case 1:
		if decoded, ok := decodeHexMacro(body); ok {
			p.macros[pid] = decoded
		}
	}
}

// decodeHexMacro decodes a hex-encoded macro body with embedded
// !{count};{hex};  run-length blocks (the block appears count times in
// total). A byte that is not a hex digit where a pair is expected fails
// the whole decode. A single trailing byte is dropped.
func decodeHexMacro(data []byte) ([]byte, bool) {
	var result []byte
	i := 0
	repeatCount := 0
	inRepeat := false
	repeatStart := 0

	for i < len(data) {
		switch {
		case data[i] == '!':
			i++
			repeatCount = 0
			for i < len(data) && data[i] >= '0' && data[i] <= '9' {
				repeatCount = repeatCount*10 + int(data[i]-'0')
				i++
			}
			if i < len(data) && data[i] == ';' {
				i++
				inRepeat = true
				repeatStart = len(result)
			}
		case inRepeat && data[i] == ';':
			result = repeatBlock(result, repeatStart, repeatCount)
			inRepeat = false
			i++
		case i+1 < len(data):
			hi, ok := hexDigit(data[i])
			if !ok {
				return nil, false
			}
			lo, ok := hexDigit(data[i+1])
			if !ok {
				return nil, false
			}
			result = append(result, hi<<4|lo)
			i += 2
		default:
			i++
		}
	}

	if inRepeat {
		result = repeatBlock(result, repeatStart, repeatCount)
	}
	return result, true
}

// repeatBlock appends count-1 copies of result[start:], so the block
// appears count times in total.
func repeatBlock(result []byte, start, count int) []byte {
	block := append([]byte(nil), result[start:]...)
	for n := 1; n < count; n++ {
		result = append(result, block...)
	}
	return result
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
