// Package main is the ansistream capture viewer: it parses an ANSI/VT100
// byte stream into a screen buffer and shows the result on the terminal,
// or dumps the decoded command stream as text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ansistream/internal/ansi"
	"github.com/dshills/ansistream/internal/screen"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	dump  bool
	cols  int
	rows  int
	delay time.Duration
	files []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	data, err := readInput(opts.files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read input: %v\n", err)
		return 1
	}

	if opts.dump {
		dump(os.Stdout, data)
		return 0
	}
	return view(opts, data)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&opts.dump, "dump", false, "Print the decoded command stream instead of rendering")
	flag.IntVar(&opts.cols, "cols", 80, "Screen width in columns")
	flag.IntVar(&opts.rows, "rows", 25, "Screen height in rows")
	flag.DurationVar(&opts.delay, "delay", 0, "Playback delay per 1KiB chunk (e.g. 50ms)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ansistream - ANSI escape stream viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ansistream [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Reads from stdin when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ansistream art.ans              View a capture\n")
		fmt.Fprintf(os.Stderr, "  ansistream -delay 30ms art.ans  Replay with throttling\n")
		fmt.Fprintf(os.Stderr, "  ansistream -dump art.ans        Show the decoded commands\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ansistream %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.files = flag.Args()
	return opts
}

func readInput(files []string) ([]byte, error) {
	if len(files) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(files[0])
}

// dumpSink writes each decoded item as one line of text.
type dumpSink struct {
	w io.Writer
}

func (d *dumpSink) Print(text []byte) {
	fmt.Fprintf(d.w, "print %q\n", text)
}

func (d *dumpSink) Emit(cmd ansi.Command) {
	fmt.Fprintf(d.w, "%T%+v\n", cmd, cmd)
}

func (d *dumpSink) DeviceControl(dc ansi.DeviceControl) {
	switch v := dc.(type) {
	case ansi.LoadFont:
		fmt.Fprintf(d.w, "ansi.LoadFont{Slot:%d, Data:%d bytes}\n", v.Slot, len(v.Data))
	case ansi.SixelGraphics:
		fmt.Fprintf(d.w, "ansi.SixelGraphics{VerticalScale:%d, Transparent:%v, Data:%d bytes}\n",
			v.VerticalScale, v.Transparent, len(v.Data))
	default:
		fmt.Fprintf(d.w, "%T%+v\n", dc, dc)
	}
}

func (d *dumpSink) OperatingSystemCommand(osc ansi.OperatingSystemCommand) {
	fmt.Fprintf(d.w, "%T%+v\n", osc, osc)
}

func (d *dumpSink) APS(data []byte) {
	fmt.Fprintf(d.w, "aps %q\n", data)
}

func (d *dumpSink) ReportError(err error) {
	fmt.Fprintf(d.w, "error: %v\n", err)
}

func dump(w io.Writer, data []byte) {
	p := ansi.NewParser()
	sink := &dumpSink{w: w}
	p.Parse(data, sink)
	p.Flush(sink)
}

const chunkSize = 1024

func view(opts options, data []byte) int {
	buf := screen.New(opts.cols, opts.rows)
	parser := ansi.NewParser()

	term, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Fini()

	// Handle signals for clean terminal restore
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		term.Fini()
		os.Exit(1)
	}()

	for off := 0; off < len(data); off += chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		parser.Parse(data[off:end], buf)
		if opts.delay > 0 {
			draw(term, buf)
			time.Sleep(opts.delay)
		}
	}
	parser.Flush(buf)
	draw(term, buf)

	for {
		switch ev := term.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return 0
			}
		case *tcell.EventResize:
			term.Sync()
			draw(term, buf)
		}
	}
}

func draw(term tcell.Screen, buf *screen.Screen) {
	term.Clear()
	width, height := buf.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := buf.Cell(x, y)
			if cell.Width == 0 {
				continue
			}
			r := cell.Rune
			if cell.Attributes.Has(screen.AttrConcealed) {
				r = ' '
			}
			term.SetContent(x, y, r, nil, styleFor(cell))
		}
	}
	caret := buf.Caret()
	if caret.Visible {
		x, y := buf.CursorPos()
		term.ShowCursor(x, y)
		term.SetCursorStyle(caretStyle(caret))
	} else {
		term.HideCursor()
	}
	term.Show()
}

func styleFor(cell screen.Cell) tcell.Style {
	fg, bg := cell.DisplayColors()
	style := tcell.StyleDefault.
		Foreground(tcellColor(fg)).
		Background(tcellColor(bg))
	if cell.Attributes.Has(screen.AttrBold) {
		style = style.Bold(true)
	}
	if cell.Attributes.Has(screen.AttrItalic) {
		style = style.Italic(true)
	}
	if cell.Attributes.Has(screen.AttrUnderline) {
		style = style.Underline(true)
	}
	if cell.Attributes.Has(screen.AttrBlink) {
		style = style.Blink(true)
	}
	if cell.Attributes.Has(screen.AttrStrike) {
		style = style.StrikeThrough(true)
	}
	return style
}

func tcellColor(c screen.Color) tcell.Color {
	if c.Default {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func caretStyle(caret screen.CaretState) tcell.CursorStyle {
	switch {
	case caret.Shape == 1 && caret.Blinking:
		return tcell.CursorStyleBlinkingUnderline
	case caret.Shape == 1:
		return tcell.CursorStyleSteadyUnderline
	case caret.Shape == 2 && caret.Blinking:
		return tcell.CursorStyleBlinkingBar
	case caret.Shape == 2:
		return tcell.CursorStyleSteadyBar
	case caret.Blinking:
		return tcell.CursorStyleBlinkingBlock
	default:
		return tcell.CursorStyleSteadyBlock
	}
}
