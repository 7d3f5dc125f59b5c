package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/tper/pkg/domain"
)

// Event is one line of JSON output.
type Event struct {
	Type    string         `json:"type"`
	Result  *domain.Result `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Writer  io.Writer
	Encoder *json.Encoder

	pump *linePump
	mu   sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
		pump:    newLinePump(r),
	}
}

// Input reads one request per line.
// A line may be a JSON string, an object with a "request" field, or raw text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.pump.next(ctx)
	if err != nil {
		return "", err
	}
	return parseJSONRequest(strings.TrimSpace(text)), nil
}

func parseJSONRequest(text string) string {
	switch {
	case strings.HasPrefix(text, `"`):
		var val string
		if err := json.Unmarshal([]byte(text), &val); err == nil {
			return strings.TrimSpace(val)
		}
	case strings.HasPrefix(text, "{"):
		var msg struct {
			Request string `json:"request"`
		}
		if err := json.Unmarshal([]byte(text), &msg); err == nil {
			return strings.TrimSpace(msg.Request)
		}
	}
	// Fallback: return raw text (e.g. if they just sent plain text)
	return text
}

func (h *JSONHandler) Output(ctx context.Context, result domain.Result) error {
	return h.emit(Event{Type: "result", Result: &result})
}

func (h *JSONHandler) Error(ctx context.Context, err error) error {
	return h.emit(Event{Type: "error", Error: err.Error()})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(Event{Type: "system", Message: msg})
}

func (h *JSONHandler) emit(e Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(e)
}
