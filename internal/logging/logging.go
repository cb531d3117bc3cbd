// Package logging writes the opt-in debug lines of the store and dataset
// packages. The store is updated from the explorer's event loop while the
// command goroutine may still be loading, so writes are serialized.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/idlab-discover/berryroc/internal/ui"
)

// Logger prefixes each line with a colored component tag:
//
//	Store: dataset=scored set {threshold=0.75}
//
// The dataset field is left out when the name is blank. A Logger without a
// writer discards everything.
type Logger struct {
	prefix string
	color  string

	mu sync.Mutex
	w  io.Writer
}

// New returns a disabled Logger tagged with prefix in the given ui color.
func New(prefix, color string) *Logger {
	return &Logger{prefix: prefix, color: color}
}

func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	l.w = w
	l.mu.Unlock()
}

func (l *Logger) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w != nil
}

func (l *Logger) Logf(dataset string, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return
	}

	var b strings.Builder
	tag := l.prefix
	if tag == "" {
		tag = "berryroc:"
	}
	if l.color != "" {
		tag = ui.Color(tag, l.color)
	}
	b.WriteString(tag)
	if d := strings.TrimSpace(dataset); d != "" {
		b.WriteString(" dataset=")
		b.WriteString(d)
	}
	b.WriteByte(' ')
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	io.WriteString(l.w, b.String())
}
