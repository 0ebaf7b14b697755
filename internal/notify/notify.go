package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/jakoblorz/go-swfdebug/internal/tui"
)

// Notifier shows a failure to the user. It never affects control flow.
type Notifier interface {
	ShowError(message string)
}

// TerminalNotifier prints styled error messages to a writer, usually stderr.
type TerminalNotifier struct {
	out io.Writer
}

// NewTerminalNotifier creates a new TerminalNotifier
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

func (n *TerminalNotifier) ShowError(message string) {
	_, _ = fmt.Fprintln(n.out, tui.ErrorStyle.Render("✗ "+message))
}

// Recorder keeps every message it is shown. Used by tests.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// NewRecorder creates a new Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
