package boundary

import (
	"fmt"
	"sync"

	"github.com/aweris/objstore"
)

func newBufferTooSmallError(need, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", objstore.ErrBufferTooSmall, need, have)
}

// errTable holds one last-error slot per caller identity. A single shared
// slot would let concurrent callers clobber each other's failure messages
// between a failing call and the GetLastError that follows it.
//
// Slots are never removed; the table grows with the number of distinct
// caller threads, which is bounded by the embedding process's thread pool.
type errTable struct {
	slots sync.Map // uint64 -> string
}

func (t *errTable) set(caller uint64, err error) {
	t.slots.Store(caller, err.Error())
}

func (t *errTable) get(caller uint64) (string, bool) {
	msg, ok := t.slots.Load(caller)
	if !ok {
		return "", false
	}
	return msg.(string), true
}
