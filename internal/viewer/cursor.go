package viewer

import (
	"fmt"
	"strings"
)

// Step names a navigation action.
type Step string

const (
	StepNone  Step = ""
	StepFirst Step = "first"
	StepPrev  Step = "prev"
	StepNext  Step = "next"
	StepLast  Step = "last"
)

// ParseStep accepts the step names case-insensitively; "" is StepNone.
func ParseStep(s string) (Step, error) {
	switch st := Step(strings.ToLower(strings.TrimSpace(s))); st {
	case StepNone, StepFirst, StepPrev, StepNext, StepLast:
		return st, nil
	}
	return StepNone, fmt.Errorf("%w: unknown step %q", ErrInvalidRequest, s)
}

// Cursor is a position in a move list. Pos counts applied turns, so 0 is
// the starting board and Total the final one.
type Cursor struct {
	Pos   int
	Total int
}

// Clamp returns the cursor with Pos forced into [0, Total].
func (c Cursor) Clamp() Cursor {
	c.Total = max(c.Total, 0)
	c.Pos = min(max(c.Pos, 0), c.Total)
	return c
}

func (c Cursor) First() Cursor { return Cursor{Pos: 0, Total: c.Total}.Clamp() }
func (c Cursor) Last() Cursor  { return Cursor{Pos: c.Total, Total: c.Total}.Clamp() }
func (c Cursor) Prev() Cursor  { return Cursor{Pos: c.Clamp().Pos - 1, Total: c.Total}.Clamp() }
func (c Cursor) Next() Cursor  { return Cursor{Pos: c.Clamp().Pos + 1, Total: c.Total}.Clamp() }

// Apply moves the cursor by step and clamps it.
func (c Cursor) Apply(step Step) Cursor {
	switch step {
	case StepFirst:
		return c.First()
	case StepPrev:
		return c.Prev()
	case StepNext:
		return c.Next()
	case StepLast:
		return c.Last()
	}
	return c.Clamp()
}
