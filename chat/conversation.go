// Package chat is the scripted plant-care FAQ behind the chat widget.
package chat

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"greenbloom/models"
)

type State int

const (
	AwaitInput State = iota
	Responding
)

func (s State) String() string {
	if s == Responding {
		return "responding"
	}
	return "await-input"
}

const (
	DefaultReplyDelay = time.Second
	// TranscriptLimit caps the messages kept per visitor.
	TranscriptLimit = 50
)

var strict = bluemonday.StrictPolicy()

// Normalize strips markup from raw widget input, then trims and lowercases it.
func Normalize(raw string) string {
	text := html.UnescapeString(strict.Sanitize(raw))
	return strings.ToLower(strings.TrimSpace(text))
}

// Conversation is one visitor's transcript. Each submitted message schedules
// exactly one bot reply; a scheduled reply cannot be cancelled.
type Conversation struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	pending  int
	lastSeen time.Time

	delay   time.Duration
	now     func() time.Time
	replies *sync.WaitGroup
}

func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending > 0 {
		return Responding
	}
	return AwaitInput
}

// Submit echoes the message and schedules the reply. Input that is empty
// after normalising is ignored and false is returned.
func (c *Conversation) Submit(raw string) bool {
	msg := Normalize(raw)
	if msg == "" {
		return false
	}

	c.mu.Lock()
	now := c.now()
	c.appendLocked(models.ChatMessage{Role: models.RoleUser, Text: msg, At: now})
	c.pending++
	c.lastSeen = now
	c.mu.Unlock()

	c.replies.Add(1)
	time.AfterFunc(c.delay, func() {
		defer c.replies.Done()
		answer := Respond(msg)

		c.mu.Lock()
		c.appendLocked(models.ChatMessage{Role: models.RoleBot, Text: answer, At: c.now()})
		c.pending--
		c.mu.Unlock()
	})
	return true
}

func (c *Conversation) appendLocked(m models.ChatMessage) {
	c.messages = append(c.messages, m)
	if over := len(c.messages) - TranscriptLimit; over > 0 {
		c.messages = append([]models.ChatMessage(nil), c.messages[over:]...)
	}
}

// Messages returns a copy of the transcript, oldest first.
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage{}, c.messages...)
}

func (c *Conversation) idleSince(t time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending == 0 && c.lastSeen.Before(t)
}
