package utils

import (
	"io"
)

// Closers releases resources opened one after another, newest first. It is
// meant to be deferred next to a chain of constructors that can each fail.
type Closers []io.Closer

func (c *Closers) Add(closer io.Closer) {
	*c = append(*c, closer)
}

// Close closes everything added so far and empties the list. Every failure
// is logged, the first one is returned.
func (c *Closers) Close() error {
	var first error
	for i := len(*c) - 1; i >= 0; i-- {
		err := (*c)[i].Close()
		Logwe(err)
		if first == nil {
			first = err
		}
	}
	*c = nil
	return first
}
