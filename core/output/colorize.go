package output

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/opensvc/jnodes/core/nodescript"
	"github.com/opensvc/jnodes/util/render/palette"
)

type (
	// StateWriter copies the script console output to a writer, colorizing
	// the "<node>: <state>" and "<node>: <exception>: <message>" lines.
	//
	// Complete lines are written as soon as received, so the progress of
	// long running scripts is visible. Call Flush to write a trailing
	// incomplete line.
	StateWriter struct {
		w        io.Writer
		colorize *palette.ColorPaletteFunc
		buf      []byte
	}
)

var (
	regexpStateLine = regexp.MustCompile(`^(\S+): (` + strings.Join(nodescript.States(), "|") + `)$`)
	regexpErrorLine = regexp.MustCompile(`^(\S+): ([\w.$]+(?:Exception|Error)): (.*)$`)
)

// UseColor returns true if colors are enabled by a yes|no|auto flag value
// for the output to f. auto enables colors if f is a terminal.
func UseColor(flag string, f *os.File) bool {
	switch flag {
	case "yes":
		return true
	case "no":
		return false
	default:
		if f == nil || os.Getenv("TERM") == "dumb" {
			return false
		}
		fd := f.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// SetColor enables or disables the colorization globally, from a
// yes|no|auto flag value for the output to f.
func SetColor(flag string, f *os.File) {
	color.NoColor = !UseColor(flag, f)
}

// NewStateWriter returns a StateWriter writing to w. A nil colorize
// selects the default palette.
func NewStateWriter(w io.Writer, colorize *palette.ColorPaletteFunc) *StateWriter {
	if colorize == nil {
		colorize = palette.DefaultFuncPalette()
	}
	return &StateWriter{
		w:        w,
		colorize: colorize,
	}
}

// Write implements io.Writer.
func (t *StateWriter) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	for {
		i := bytes.IndexByte(t.buf, '\n')
		if i < 0 {
			break
		}
		line := string(t.buf[:i])
		if _, err := io.WriteString(t.w, t.colorizeLine(line)+"\n"); err != nil {
			return len(p), err
		}
		t.buf = t.buf[i+1:]
	}
	return len(p), nil
}

// Flush writes the buffered incomplete line, if any.
func (t *StateWriter) Flush() error {
	if len(t.buf) == 0 {
		return nil
	}
	line := string(t.buf)
	t.buf = t.buf[:0]
	_, err := io.WriteString(t.w, t.colorizeLine(line))
	return err
}

func (t *StateWriter) colorizeLine(line string) string {
	trimmed := strings.TrimRight(line, "\r")
	if m := regexpStateLine.FindStringSubmatch(trimmed); m != nil {
		return m[1] + ": " + t.sprintState(m[2])
	}
	if m := regexpErrorLine.FindStringSubmatch(trimmed); m != nil {
		return m[1] + ": " + t.colorize.Error(m[2]) + ": " + m[3]
	}
	return line
}

func (t *StateWriter) sprintState(s string) string {
	switch s {
	case nodescript.StateOnline, nodescript.StateConnected:
		return t.colorize.Online(s)
	case nodescript.StateOffline:
		return t.colorize.Offline(s)
	case nodescript.StateConnecting:
		return t.colorize.Connecting(s)
	default:
		return t.colorize.Disconnected(s)
	}
}
