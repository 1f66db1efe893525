package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/yndnr/examprep-go/internal/telemetry/logger"
)

// Variant is the visual weight of a notification.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is one transient message for the user.
type Notification struct {
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Variant Variant `json:"variant"`
}

// Notifier receives notifications.
type Notifier interface {
	Notify(n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Error builds a destructive notification.
func Error(title, message string) Notification {
	return Notification{Title: title, Message: message, Variant: VariantDestructive}
}

// Info builds a default notification.
func Info(title, message string) Notification {
	return Notification{Title: title, Message: message, Variant: VariantDefault}
}

// Writer renders notifications as single lines.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer notifier on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify writes "✗ Title: message" or "✓ Title: message".
func (w *Writer) Notify(n Notification) {
	mark := "✓"
	if n.Variant == VariantDestructive {
		mark = "✗"
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if n.Message == "" {
		fmt.Fprintf(w.w, "%s %s\n", mark, n.Title)
		return
	}
	fmt.Fprintf(w.w, "%s %s: %s\n", mark, n.Title, n.Message)
}

// Log forwards notifications to a logger.
type Log struct {
	l logger.Logger
}

// NewLog creates a Log notifier. A nil logger uses the default one.
func NewLog(l logger.Logger) *Log {
	if l == nil {
		l = logger.Default()
	}
	return &Log{l: l}
}

// Notify logs destructive notifications at warn, the rest at debug.
func (l *Log) Notify(n Notification) {
	if n.Variant == VariantDestructive {
		l.l.Warn("notification", "title", n.Title, "message", n.Message)
		return
	}
	l.l.Debug("notification", "title", n.Title, "message", n.Message)
}

// Multi fans a notification out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	list := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}
	return Func(func(n Notification) {
		for _, target := range list {
			target.Notify(n)
		}
	})
}
