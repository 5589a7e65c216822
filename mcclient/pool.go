// Pool is adapted from the teacher's transport.ConnPool. That pool
// hands out *exclusive-use* connections borrowed for one request and
// returned afterward, because its transport multiplexes many
// concurrent RPC calls onto few sockets. A Minecraft session is the
// opposite: one TCP connection is bound to one bot identity for the
// session's entire lifetime, so there is no borrow/return cycle here —
// Pool is a registry of live sessions keyed by name, bounded the same
// way the teacher bounds concurrent connections (maxConns), with the
// same lazy-create-up-to-the-limit behavior.
package mcclient

import (
	"fmt"
	"sync"
)

// Pool manages a bounded set of named, independent bot sessions against
// a single server address.
type Pool struct {
	mu       sync.Mutex
	addr     string
	max      int
	sessions map[string]*Connection
	factory  func(addr string) (*Connection, error)
}

// NewPool creates a session pool for addr. factory defaults to Dial
// when nil.
func NewPool(addr string, max int, factory func(addr string) (*Connection, error)) *Pool {
	if factory == nil {
		factory = func(addr string) (*Connection, error) { return Dial(addr) }
	}
	return &Pool{
		addr:     addr,
		max:      max,
		sessions: make(map[string]*Connection),
		factory:  factory,
	}
}

// Spawn dials a new session under name. It fails if name is already in
// use or the pool is at capacity.
func (p *Pool) Spawn(name string) (*Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.sessions[name]; exists {
		return nil, fmt.Errorf("mcclient: session %q already exists", name)
	}
	if len(p.sessions) >= p.max {
		return nil, fmt.Errorf("mcclient: session pool exhausted (max %d)", p.max)
	}

	conn, err := p.factory(p.addr)
	if err != nil {
		return nil, err
	}
	p.sessions[name] = conn
	return conn, nil
}

// Get returns the named session, if it is still open.
func (p *Pool) Get(name string) (*Connection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	conn, ok := p.sessions[name]
	return conn, ok
}

// Release closes and forgets the named session.
func (p *Pool) Release(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	conn, ok := p.sessions[name]
	if !ok {
		return nil
	}
	delete(p.sessions, name)
	return conn.Close()
}

// Len reports the number of currently open sessions.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sessions)
}

// CloseAll closes every session and empties the pool.
func (p *Pool) CloseAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for name, conn := range p.sessions {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.sessions, name)
	}
	return firstErr
}
