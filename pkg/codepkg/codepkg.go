// Package codepkg generates unique, sequential, human-readable account codes.
package codepkg

import (
	"fmt"
	"sync/atomic"
)

// Defaults applied by New to a zero prefix or width.
const (
	DefaultPrefix = "CPT"
	DefaultWidth  = 5
)

// Generator hands out codes of the form PREFIX-00001, PREFIX-00002, ...
//
// Codes are never reused for the lifetime of the Generator. It is safe for concurrent use.
type Generator struct {
	prefix string
	width  int
	seq    atomic.Uint64
}

// New returns a Generator that zero pads sequence numbers to width digits.
func New(prefix string, width int) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if width <= 0 {
		width = DefaultWidth
	}

	return &Generator{prefix: prefix, width: width}
}

// Next increments the sequence and returns the formatted code.
func (g *Generator) Next() string {
	return Format(g.prefix, g.width, g.seq.Add(1))
}

// Format formats a single code.
func Format(prefix string, width int, n uint64) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, n)
}
