package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Renderer writes command output in the effective mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Styles only emit escape codes when isTTY is true.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// Mode returns the requested mode.
func (r *Renderer) Mode() OutputMode {
	return r.mode
}

// EffectiveMode resolves auto to text on a terminal and markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the text-mode styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Success prints a success line.
func (r *Renderer) Success(msg string) {
	r.status(r.styles.Success, "✓", msg)
}

// Warning prints a warning line to the error writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("! "+msg))
}

// Error prints an error line to the error writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗ "+msg))
}

func (r *Renderer) status(style lipgloss.Style, mark, msg string) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return
	case ModeText:
		r.Println(style.Render(mark + " " + msg))
	default:
		r.Println(msg)
	}
}
