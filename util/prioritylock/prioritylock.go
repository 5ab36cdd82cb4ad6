package prioritylock

import (
	"sync"
)

// Mutex is a read/write lock whose writers come in two priorities. Holders
// of the high priority locks (write or read) go first: a low priority writer
// waits until no high priority holder or waiter is left.
type Mutex struct {
	dataMutex           sync.RWMutex
	lowPriorityMutex    sync.Mutex
	highPriorityWaiting sync.WaitGroup
}

// New returns a new unlocked Mutex
func New() *Mutex {
	return &Mutex{}
}

// LowPriorityWriteLock acquires a low priority write lock. It waits for the
// other low priority writers and for every high priority holder and waiter.
func (mtx *Mutex) LowPriorityWriteLock() {
	mtx.lowPriorityMutex.Lock()
	mtx.highPriorityWaiting.Wait()
	mtx.dataMutex.Lock()
}

// LowPriorityWriteUnlock releases the low priority write lock
func (mtx *Mutex) LowPriorityWriteUnlock() {
	mtx.dataMutex.Unlock()
	mtx.lowPriorityMutex.Unlock()
}

// HighPriorityWriteLock acquires a high priority write lock. It still waits
// for a low priority writer that already holds the lock.
func (mtx *Mutex) HighPriorityWriteLock() {
	mtx.highPriorityWaiting.Add(1)
	mtx.dataMutex.Lock()
}

// HighPriorityWriteUnlock releases the high priority write lock
func (mtx *Mutex) HighPriorityWriteUnlock() {
	mtx.dataMutex.Unlock()
	mtx.highPriorityWaiting.Done()
}

// HighPriorityReadLock acquires a high priority read lock, which can be
// held together with other read locks
func (mtx *Mutex) HighPriorityReadLock() {
	mtx.highPriorityWaiting.Add(1)
	mtx.dataMutex.RLock()
}

// HighPriorityReadUnlock releases the high priority read lock
func (mtx *Mutex) HighPriorityReadUnlock() {
	mtx.highPriorityWaiting.Done()
	mtx.dataMutex.RUnlock()
}
