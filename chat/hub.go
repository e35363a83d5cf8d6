package chat

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"greenbloom/models"
)

// Hub holds the conversations of every visitor, in memory only.
type Hub struct {
	mu    sync.Mutex
	convs map[string]*Conversation

	delay   time.Duration
	now     func() time.Time
	replies sync.WaitGroup
}

func NewHub(delay time.Duration) *Hub {
	if delay < 0 {
		delay = DefaultReplyDelay
	}
	return &Hub{convs: map[string]*Conversation{}, delay: delay, now: time.Now}
}

// Conversation returns the visitor's conversation, creating it on first use.
func (h *Hub) Conversation(visitor string) *Conversation {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.convs[visitor]
	if !ok {
		c = &Conversation{delay: h.delay, now: h.now, replies: &h.replies, lastSeen: h.now()}
		h.convs[visitor] = c
	}
	return c
}

func (h *Hub) Submit(visitor, raw string) bool {
	return h.Conversation(visitor).Submit(raw)
}

// Transcript is empty for a visitor who never chatted.
func (h *Hub) Transcript(visitor string) []models.ChatMessage {
	h.mu.Lock()
	c, ok := h.convs[visitor]
	h.mu.Unlock()
	if !ok {
		return []models.ChatMessage{}
	}
	return c.Messages()
}

// Pending reports whether a reply is still on its way to the visitor.
func (h *Hub) Pending(visitor string) bool {
	h.mu.Lock()
	c, ok := h.convs[visitor]
	h.mu.Unlock()
	return ok && c.State() == Responding
}

// Prune drops conversations with no activity for idle and no reply pending.
func (h *Hub) Prune(idle time.Duration) int {
	cutoff := h.now().Add(-idle)
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for visitor, c := range h.convs {
		if c.idleSince(cutoff) {
			delete(h.convs, visitor)
			n++
		}
	}
	if n > 0 {
		zap.L().Debug("pruned idle chats", zap.Int("count", n), zap.Int("remaining", len(h.convs)))
	}
	return n
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.convs)
}

// Wait blocks until every scheduled reply has been delivered.
func (h *Hub) Wait() {
	h.replies.Wait()
}
