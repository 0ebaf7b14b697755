package notify

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerminalNotifier_ShowError(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNotifier(&buf)

	n.ShowError("Failed to debug SWF. Program not found.")
	n.ShowError("Failed to debug SWF. A workspace must be open.")

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2)
	require.Contains(t, string(lines[0]), "✗ Failed to debug SWF. Program not found.")
	require.Contains(t, string(lines[1]), "A workspace must be open.")
}

func TestRecorder_Concurrent(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.ShowError("failed")
		}()
	}
	wg.Wait()

	messages := r.Messages()
	require.Len(t, messages, 10)

	messages[0] = "changed"
	require.Equal(t, "failed", r.Messages()[0])
}
