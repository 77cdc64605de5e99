package dashboard

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces widget ids. Boards call it under their own lock and retry
// while the candidate collides with an existing widget.
type IDGenerator interface {
	Next(t WidgetType) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(t WidgetType) string

// Next implements IDGenerator.
func (f IDGeneratorFunc) Next(t WidgetType) string { return f(t) }

// SequenceGenerator yields {type}-{n} with a monotonic counter per type.
type SequenceGenerator struct {
	counters map[WidgetType]int
}

// NewSequenceGenerator builds a generator whose counters start at 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counters: map[WidgetType]int{}}
}

// Next implements IDGenerator.
func (g *SequenceGenerator) Next(t WidgetType) string {
	g.counters[t]++
	return string(t) + "-" + strconv.Itoa(g.counters[t])
}

// NewUUIDGenerator yields {type}-{uuid}.
func NewUUIDGenerator() IDGenerator {
	return IDGeneratorFunc(func(t WidgetType) string {
		return string(t) + "-" + uuid.NewString()
	})
}
