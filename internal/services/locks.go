package services

import "sync"

const lockStripes = 64

// reviewLocks serializes mutation of a single review's counters and
// flag across concurrent requests. Striped so the map never grows with
// the review count.
type reviewLocks struct {
	stripes [lockStripes]sync.Mutex
}

func newReviewLocks() *reviewLocks {
	return &reviewLocks{}
}

func (l *reviewLocks) Lock(id uint) {
	l.stripes[id%lockStripes].Lock()
}

func (l *reviewLocks) Unlock(id uint) {
	l.stripes[id%lockStripes].Unlock()
}
