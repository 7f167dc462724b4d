package bundle

import (
	"path/filepath"
	"sync"
)

// Locker serializes installs and deletes aimed at the same bundle folder
// within one process. Other processes are not coordinated with.
type Locker struct {
	mutex sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocker() *Locker {
	return &Locker{locks: map[string]*sync.Mutex{}}
}

// Lock blocks until path is free and returns the matching unlock func. A nil
// Locker does not lock at all.
func (l *Locker) Lock(path string) func() {
	if l == nil {
		return func() {}
	}

	key := filepath.Clean(path)

	l.mutex.Lock()
	lock, found := l.locks[key]
	if !found {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mutex.Unlock()

	lock.Lock()
	return lock.Unlock
}
