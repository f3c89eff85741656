// Package screen implements a terminal screen buffer that consumes the
// decoded command stream of the ansi package.
//
// Screen implements ansi.Sink: printable text lands in a width x height
// cell grid under the current pen, and commands move the cursor, erase,
// scroll, and adjust attributes. Decoding errors and commands the buffer
// has no use for are counted, never fatal, matching the parser's
// recoverable-error policy.
//
// The base 16 colors follow the classic DOS ordering (blue is index 1,
// red is index 4), which is what the SGR decoder's base color indices
// refer to. Indices 16-255 follow the common 6x6x6 cube plus grayscale
// ramp.
package screen
