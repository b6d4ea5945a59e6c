package service

import (
	"sync"

	"house_management/internal/tree"
)

type lockedWorld struct {
	mu    sync.RWMutex
	world *tree.World
}

func (l *lockedWorld) read(fn func(w *tree.World)) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn(l.world)
}

func (l *lockedWorld) write(fn func(w *tree.World) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.world)
}
