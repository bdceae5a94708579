package analysis

import "sync/atomic"

// CancelToken is the cooperative cancellation handle a driver polls
// between snapshots: a plain atomic flag rather than a context.Context,
// since a long-running analysis only ever needs a single stop signal,
// not deadlines or value propagation.
type CancelToken struct {
	flag atomic.Bool
}

func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests cancellation. Safe to call from another goroutine.
func (c *CancelToken) Cancel() {
	c.flag.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	return c.flag.Load()
}
