package game

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrNoSession 找不到对应的对局
var ErrNoSession = errors.New("no such session")

// Registry 以会话ID为key的对局集合，每局互不影响
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Game
	factory  func() *Game
}

// NewRegistry factory 用于创建新的对局
func NewRegistry(factory func() *Game) *Registry {
	return &Registry{
		sessions: make(map[string]*Game),
		factory:  factory,
	}
}

// Create 用新的 uuid 创建一局
func (r *Registry) Create() (string, *Game) {
	id := uuid.NewString()
	g := r.factory()
	r.mu.Lock()
	r.sessions[id] = g
	r.mu.Unlock()
	return id, g
}

func (r *Registry) Get(id string) (*Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	return g, nil
}

// Delete 删除对局，返回是否存在
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Each 按ID顺序访问每一局。回调期间不持有集合的锁。
func (r *Registry) Each(fn func(id string, g *Game)) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	games := make(map[string]*Game, len(r.sessions))
	for id, g := range r.sessions {
		ids = append(ids, id)
		games[id] = g
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	for _, id := range ids {
		fn(id, games[id])
	}
}
