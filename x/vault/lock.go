package vault

import "sync/atomic"

// guard rejects nested entries instead of blocking on them.
type guard struct {
	busy int32
}

// enter returns false if the guard is already held.
func (g *guard) enter() bool {
	return atomic.CompareAndSwapInt32(&g.busy, 0, 1)
}

func (g *guard) leave() {
	atomic.StoreInt32(&g.busy, 0)
}
