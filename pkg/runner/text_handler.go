package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tper/pkg/domain"
)

// Separator frames the prompt and the FINAL RESULTS block.
var Separator = strings.Repeat("=", 50)

// Prompt is shown before every request is read.
const Prompt = "Enter your request (or 'quit' to exit): "

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer

	pump *linePump

	// midLine is set when a read was abandoned after the prompt was printed.
	midLine bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		pump:   newLinePump(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	// Only show prompt if context is not yet done
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		fmt.Fprintf(h.Writer, "\n%s\n%s", Separator, Prompt)
	}

	text, err := h.pump.next(ctx)
	if err != nil {
		h.midLine = true
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (h *TextHandler) Output(ctx context.Context, result domain.Result) error {
	output := result.String()
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintf(h.Writer, "\n%s\n📋 FINAL RESULTS\n%s\n%s\n",
		Separator, Separator, strings.TrimRight(output, "\n"))
	return err
}

func (h *TextHandler) Error(ctx context.Context, err error) error {
	_, werr := fmt.Fprintf(h.Writer, "❌ Application error: %v\n", err)
	return werr
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	if h.midLine {
		h.midLine = false
		msg = "\n" + msg
	}
	_, err := fmt.Fprintln(h.Writer, msg)
	return err
}
