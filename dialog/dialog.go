// Package dialog tracks per-user conversation state for the operator
// flows. A user has at most one session; arming a new step supersedes
// whatever was pending, and idle sessions expire silently.
package dialog

import (
	"sync"
	"time"
)

type Step int

const (
	StepIdle Step = iota
	StepMenu
	StepAwaitingInput
	StepAwaitingStemChoice
)

type InputKind int

const (
	InputAddChat InputKind = iota
	InputRemoveChat
	InputAddKeyword
	InputRemoveKeyword
	InputResolveOnly
)

// Session is a snapshot of one user's conversation state.
type Session struct {
	UserID int64
	Step   Step
	Kind   InputKind
	// Term is the keyword awaiting the yes/no stemming choice.
	Term string
}

type session struct {
	Session
	timer *time.Timer
}

type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session
	ttl      time.Duration
}

const DefaultTTL = 5 * time.Minute

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[int64]*session),
		ttl:      ttl,
	}
}

// ShowMenu starts (or restarts) a session at the menu, superseding any
// pending input for the user.
func (m *Manager) ShowMenu(userID int64) {
	m.put(userID, Session{UserID: userID, Step: StepMenu})
}

// Arm puts the user into AwaitingInput(kind): the next free-text message
// from them will be consumed by that flow. Any previously armed step for
// the same user is discarded.
func (m *Manager) Arm(userID int64, kind InputKind) {
	m.put(userID, Session{UserID: userID, Step: StepAwaitingInput, Kind: kind})
}

// ArmStemChoice parks the lowercased term until the user answers the
// yes/no stemming question.
func (m *Manager) ArmStemChoice(userID int64, term string) {
	m.put(userID, Session{UserID: userID, Step: StepAwaitingStemChoice, Kind: InputAddKeyword, Term: term})
}

// ConsumeInput disarms and returns the pending AwaitingInput session, if
// any. A session in any other step is left untouched.
func (m *Manager) ConsumeInput(userID int64) (Session, bool) {
	return m.consume(userID, StepAwaitingInput)
}

// ConsumeStemChoice disarms and returns the pending stem choice. Stale
// button presses after supersession find nothing here.
func (m *Manager) ConsumeStemChoice(userID int64) (Session, bool) {
	return m.consume(userID, StepAwaitingStemChoice)
}

// Cancel drops the user's session entirely.
func (m *Manager) Cancel(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		s.timer.Stop()
		delete(m.sessions, userID)
	}
}

// Peek returns the current session without consuming it.
func (m *Manager) Peek(userID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s.Session, true
	}
	return Session{}, false
}

func (m *Manager) put(userID int64, snap Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[userID]; ok {
		old.timer.Stop()
	}
	s := &session{Session: snap}
	s.timer = time.AfterFunc(m.ttl, func() {
		m.expire(userID, s)
	})
	m.sessions[userID] = s
}

func (m *Manager) consume(userID int64, step Step) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || s.Step != step {
		return Session{}, false
	}
	s.timer.Stop()
	delete(m.sessions, userID)
	return s.Session, true
}

// expire removes the session only if it is still the one the timer was
// armed for; a superseding session keeps its own timer.
func (m *Manager) expire(userID int64, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[userID]; ok && cur == s {
		delete(m.sessions, userID)
	}
}
