package batch

// Cursor is a restartable, finite sequence of row batches. Producers rebuild
// their state (including pseudorandom streams) on every open, so a Reset
// replays the exact same sequence — which is what makes retrying or
// re-partitioning a table deterministic.
type Cursor[T any] struct {
	open func() func() ([]T, bool)
	next func() ([]T, bool)
}

// NewCursor wraps an open function returning a step function. The step
// function yields the next batch and false when the sequence is exhausted.
func NewCursor[T any](open func() func() ([]T, bool)) *Cursor[T] {
	return &Cursor[T]{open: open}
}

// FromSlice exposes an in-memory table as a single-batch cursor.
func FromSlice[T any](rows []T) *Cursor[T] {
	return NewCursor(func() func() ([]T, bool) {
		done := false
		return func() ([]T, bool) {
			if done || len(rows) == 0 {
				return nil, false
			}
			done = true
			return rows, true
		}
	})
}

// Concat yields every batch of a, then every batch of b.
func Concat[T any](a, b *Cursor[T]) *Cursor[T] {
	return NewCursor(func() func() ([]T, bool) {
		a.Reset()
		b.Reset()
		return func() ([]T, bool) {
			if rows, ok := a.Next(); ok {
				return rows, true
			}
			return b.Next()
		}
	})
}

// Next returns the next batch, opening the sequence on first use.
func (c *Cursor[T]) Next() ([]T, bool) {
	if c.next == nil {
		c.next = c.open()
	}
	return c.next()
}

// Reset rewinds the cursor to the start of the sequence.
func (c *Cursor[T]) Reset() {
	c.next = nil
}

// Drain consumes the whole sequence and returns the total row count. Used by
// tests and reports, never by the bounded-memory write path.
func Drain[T any](c *Cursor[T]) []T {
	c.Reset()
	var all []T
	for {
		rows, ok := c.Next()
		if !ok {
			return all
		}
		all = append(all, rows...)
	}
}
