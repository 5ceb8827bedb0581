package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

// Event types written by JSONHandler.
const (
	EventOutput = "output"
	EventSystem = "system"
)

// JSONEvent is one line written by JSONHandler.
type JSONEvent struct {
	Type    string         `json:"type"`
	Output  *domain.Output `json:"output,omitempty"`
	Message string         `json:"message,omitempty"`
}

// JSONInput is the object form of an input line.
type JSONInput struct {
	Input string `json:"input"`
}

// JSONHandler implements IOHandler over newline-delimited JSON.
// Each output is one JSONEvent line. Input lines may be a JSON string, a
// JSONInput object or raw text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
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
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, out domain.Output) error {
	return h.Encoder.Encode(JSONEvent{Type: EventOutput, Output: &out})
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return val, nil
	}
	var obj JSONInput
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &obj); err == nil {
			return obj.Input, nil
		}
	}
	return text, nil
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(JSONEvent{Type: EventSystem, Message: msg})
}
