package palette

import "github.com/fatih/color"

// The color names as string, usable in configuration files.
const (
	DefaultOnline       = "green"
	DefaultOffline      = "hiyellow"
	DefaultConnecting   = "cyan"
	DefaultDisconnected = "hiblack"
	DefaultError        = "red"
)

type (
	// StringPalette declares the color (as string) to use for each node
	// state.
	StringPalette struct {
		Online       string
		Offline      string
		Connecting   string
		Disconnected string
		Error        string
	}

	// ColorPalette declares the color (as color.Attribute) to use for each
	// node state.
	ColorPalette struct {
		Online       color.Attribute
		Offline      color.Attribute
		Connecting   color.Attribute
		Disconnected color.Attribute
		Error        color.Attribute
	}

	// ColorPaletteFunc exposes a sprint function per node state.
	ColorPaletteFunc struct {
		Online       func(a ...interface{}) string
		Offline      func(a ...interface{}) string
		Connecting   func(a ...interface{}) string
		Disconnected func(a ...interface{}) string
		Error        func(a ...interface{}) string
	}
)

func toFgColor(s string) color.Attribute {
	switch s {
	case "black":
		return color.FgBlack
	case "red":
		return color.FgRed
	case "green":
		return color.FgGreen
	case "yellow":
		return color.FgYellow
	case "blue":
		return color.FgBlue
	case "magenta":
		return color.FgMagenta
	case "cyan":
		return color.FgCyan
	case "white":
		return color.FgWhite
	case "hiblack":
		return color.FgHiBlack
	case "hired":
		return color.FgHiRed
	case "higreen":
		return color.FgHiGreen
	case "hiyellow":
		return color.FgHiYellow
	case "hiblue":
		return color.FgHiBlue
	case "himagenta":
		return color.FgHiMagenta
	case "hicyan":
		return color.FgHiCyan
	case "hiwhite":
		return color.FgHiWhite
	default:
		return color.Reset
	}
}

func orDefault(s, deft string) string {
	if s == "" {
		return deft
	}
	return s
}

// New returns a color palette (as color.Attribute) from a string color
// palette (as read by viper). Empty strings select the default colors.
func New(m StringPalette) ColorPalette {
	return ColorPalette{
		Online:       toFgColor(orDefault(m.Online, DefaultOnline)),
		Offline:      toFgColor(orDefault(m.Offline, DefaultOffline)),
		Connecting:   toFgColor(orDefault(m.Connecting, DefaultConnecting)),
		Disconnected: toFgColor(orDefault(m.Disconnected, DefaultDisconnected)),
		Error:        toFgColor(orDefault(m.Error, DefaultError)),
	}
}

// Func returns the sprint functions of the palette colors.
func (t ColorPalette) Func() *ColorPaletteFunc {
	return &ColorPaletteFunc{
		Online:       color.New(t.Online).SprintFunc(),
		Offline:      color.New(t.Offline).SprintFunc(),
		Connecting:   color.New(t.Connecting).SprintFunc(),
		Disconnected: color.New(t.Disconnected).SprintFunc(),
		Error:        color.New(t.Error).SprintFunc(),
	}
}

// DefaultFuncPalette returns the sprint functions of the default palette.
func DefaultFuncPalette() *ColorPaletteFunc {
	return New(StringPalette{}).Func()
}
