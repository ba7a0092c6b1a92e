package handlers

import (
	"strconv"
	"sync"

	"github.com/vancomm/minesweeper-ai/internal/game"
)

// Session is one interactive game. Lock it around every access to Game.
type Session struct {
	sync.Mutex
	Id   string
	Game *game.Game
}

// Sessions is an in-memory session registry. Games are gone when the
// process exits; there is deliberately no cross-process persistence.
type Sessions struct {
	mu  sync.Mutex
	seq int
	m   map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*Session)}
}

func (s *Sessions) Create(g *game.Game) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	session := &Session{Id: strconv.Itoa(s.seq), Game: g}
	s.m[session.Id] = session
	return session
}

func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.m[id]
	return session, ok
}
