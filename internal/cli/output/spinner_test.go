package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a goroutine-safe bytes.Buffer.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_StartStop(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Loading exams")
	s.Start()
	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Loading exams") || !strings.HasSuffix(out, "\r\033[K") {
		t.Errorf("output = %q", out)
	}
}

func TestSpinner_SuccessFail(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Signing in")
	s.Start()
	s.Success("Signed in")
	if !strings.HasSuffix(buf.String(), "✓ Signed in\n") {
		t.Errorf("output = %q", buf.String())
	}

	s.Start()
	s.Fail("Failed")
	if !strings.HasSuffix(buf.String(), "✗ Failed\n") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinner_Disabled(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, "Loading").Disable()
	s.Start()
	s.Success("done")
	s.Stop()
	if buf.String() != "" {
		t.Errorf("disabled spinner wrote %q", buf.String())
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var buf syncBuffer
	NewSpinner(&buf, "x").Fail("nope")
	if buf.String() != "" {
		t.Errorf("output = %q", buf.String())
	}
}
