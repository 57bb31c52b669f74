// Package session holds the in-process conversation registry. Sessions
// live for the process lifetime: ended sessions are deactivated, never
// removed, and no eviction policy exists. Callers depend on the Store so
// an eviction policy could be added here without touching the relay.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"susafchat/internal/models"
)

var (
	// ErrNotFound signals an unknown session id.
	ErrNotFound = errors.New("session not found")
	// ErrInvalid signals a session that is unknown or already ended.
	ErrInvalid = errors.New("invalid or expired session")
)

// Session is a single multi-turn dialogue. The message history always
// starts with one system entry and one assistant welcome entry; every
// later pair is (user, assistant) in turn order.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	turnMu   sync.Mutex
	active   bool
	messages []models.Message
}

// Active reports whether the session still accepts turns.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Messages returns a snapshot copy of the history.
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) append(role models.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrInvalid
	}
	s.messages = append(s.messages, models.Message{Role: role, Content: content})
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// Store is the process-wide session registry.
type Store struct {
	systemPrompt string
	welcome      string

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore builds an empty registry. Every created session is seeded with
// the given system prompt and assistant welcome message.
func NewStore(systemPrompt, welcome string) *Store {
	return &Store{
		systemPrompt: systemPrompt,
		welcome:      welcome,
		sessions:     make(map[string]*Session),
	}
}

// Create registers a fresh active session and returns it. It cannot fail.
func (st *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		active:    true,
		messages: []models.Message{
			{Role: models.RoleSystem, Content: st.systemPrompt},
			{Role: models.RoleAssistant, Content: st.welcome},
		},
	}
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// History returns a snapshot of the session's ordered messages.
func (st *Store) History(id string) ([]models.Message, error) {
	sess, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.Messages(), nil
}

// AppendUser appends a user message. Fails with ErrInvalid when the id is
// unknown or the session has ended.
func (st *Store) AppendUser(id, content string) error {
	return st.appendByID(id, models.RoleUser, content)
}

// AppendAssistant appends a fully assembled assistant message. Fails with
// ErrInvalid when the id is unknown or the session has ended.
func (st *Store) AppendAssistant(id, content string) error {
	return st.appendByID(id, models.RoleAssistant, content)
}

func (st *Store) appendByID(id string, role models.Role, content string) error {
	sess, err := st.Get(id)
	if err != nil {
		return ErrInvalid
	}
	return sess.append(role, content)
}

// BeginTurn acquires the per-session turn lock so concurrent turns on one
// session id cannot interleave their appends. The returned release must be
// called once the turn is committed or abandoned.
func (st *Store) BeginTurn(id string) (func(), error) {
	sess, err := st.Get(id)
	if err != nil {
		return nil, ErrInvalid
	}
	sess.turnMu.Lock()
	if !sess.Active() {
		sess.turnMu.Unlock()
		return nil, ErrInvalid
	}
	return func() { sess.turnMu.Unlock() }, nil
}

// End deactivates a session. Ending an already-ended session succeeds;
// only an unknown id is an error.
func (st *Store) End(id string) error {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	sess.end()
	return nil
}

// Len reports how many sessions are resident, active or not.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
