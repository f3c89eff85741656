package ansi

import (
	"bytes"
	"strconv"
)

// dispatchOSC decodes a completed Operating System Command of the form
// Ps ; Pt. An empty body is ignored.
func (p *Parser) dispatchOSC(sink Sink) {
	if len(p.buf) == 0 {
		return
	}

	if semi := bytes.IndexByte(p.buf, ';'); semi >= 0 {
		pt := p.buf[semi+1:]
		if ps, err := strconv.ParseUint(string(p.buf[:semi]), 10, 32); err == nil {
			switch ps {
			case 0:
				sink.OperatingSystemCommand(SetTitle{Text: pt})
			case 1:
				sink.OperatingSystemCommand(SetIconName{Text: pt})
			case 2:
				sink.OperatingSystemCommand(SetWindowTitle{Text: pt})
			case 8:
				// OSC 8 ; params ; URI. Without the second separator
				// there is nothing to report.
				if uriPos := bytes.IndexByte(pt, ';'); uriPos >= 0 {
					sink.OperatingSystemCommand(Hyperlink{Params: pt[:uriPos], URI: pt[uriPos+1:]})
				}
			default:
				sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
			}
			return
		}
	}

	sink.ReportError(MalformedSequenceError{Description: "unknown or malformed escape sequence"})
}
