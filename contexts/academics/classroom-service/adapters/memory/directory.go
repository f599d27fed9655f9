package memory

import (
	"context"
	"sync"
)

// Directory is a fixed member directory for tests and standalone runs.
type Directory struct {
	mu    sync.RWMutex
	roles map[int64]string
}

func NewDirectory() *Directory {
	return &Directory{roles: make(map[int64]string)}
}

func (d *Directory) Put(userID int64, role string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[userID] = role
}

func (d *Directory) LookupRole(_ context.Context, userID int64) (string, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	role, ok := d.roles[userID]
	return role, ok, nil
}
