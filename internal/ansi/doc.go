// Package ansi implements a streaming ANSI/VT100 escape sequence parser.
//
// The parser converts an arbitrary byte stream into structured terminal
// commands. It is a push parser: callers feed chunks of bytes through
// Parse and receive decoded output through a Sink. Input may be split at
// any byte boundary, including in the middle of an escape sequence; the
// parser resumes from its saved state on the next call.
//
// # Architecture
//
// The package is organized around these pieces:
//
//   - Parser: the byte-at-a-time state machine (Ground, Escape, CSI,
//     OSC, DCS, APS branches)
//   - Sink: the push interface the parser calls into
//   - Command: decoded terminal commands (cursor motion, erase, modes...)
//   - Attribute: decoded SGR text attributes, driven by a 108-entry table
//   - DeviceControl: DCS payloads (sixel graphics, CTerm fonts)
//   - OperatingSystemCommand: OSC payloads (titles, hyperlinks)
//
// # Usage
//
//	p := ansi.NewParser()
//	p.Parse(chunk, sink)        // repeat for each chunk
//	p.Flush(sink)               // at end of stream
//
// Printable text is delivered as maximal runs via Sink.Print with slices
// into the caller's input buffer; sinks that retain text must copy it.
//
// # Error handling
//
// Malformed input never stops the stream. Errors are reported through
// Sink.ReportError and the parser returns to the Ground state; scratch
// state is cleared on every sequence boundary, success or failure.
//
// # Macros
//
// DCS macro definitions (DECDMAC-style, hex or text encoded) are stored
// in a per-parser macro store and replayed by CSI * z invocations.
// Replay re-enters the parser with the same sink, bounded by a fixed
// recursion depth.
package ansi
