package dictionary

import (
	"strconv"
	"sync"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one turn of the conversation about the current entry.
// Messages are append-only; the whole log is cleared when a new lookup starts.
type ChatMessage struct {
	ID   string
	Role Role
	Text string
}

// Session tracks the current entry and the conversation about it. Each lookup
// obtains a generation token from Begin; a completion carrying a stale token
// is discarded, so a slow first lookup can never overwrite the result of a
// second one issued after it.
type Session struct {
	mu        sync.Mutex
	token     uint64
	current   *Entry
	messages  []ChatMessage
	messageID int64
}

func NewSession() *Session {
	return &Session{}
}

// Begin starts a new lookup: the current entry and the chat log are cleared
// and a fresh generation token is issued.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.current = nil
	s.messages = nil
	return s.token
}

// Complete installs the entry produced by the lookup holding token. It
// reports false, leaving the session untouched, when the token is stale.
func (s *Session) Complete(token uint64, entry *Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.current = entry
	return true
}

// Current returns the active entry, or nil when no lookup has completed.
func (s *Session) Current() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Append adds a message to the conversation log and returns it.
func (s *Session) Append(role Role, text string) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID++
	message := ChatMessage{
		ID:   strconv.FormatInt(s.messageID, 10),
		Role: role,
		Text: text,
	}
	s.messages = append(s.messages, message)
	return message
}

// Messages returns a copy of the conversation log in append order.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]ChatMessage, len(s.messages))
	copy(result, s.messages)
	return result
}
