package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/univflow/admission-api/internal/cache"
	"github.com/univflow/admission-api/internal/models"
)

// DefaultRetention is how many messages the log keeps. Older messages fall
// off the front; the chat is a side-channel, not an archive.
const DefaultRetention = 200

// Log is the team chat side-channel: an in-memory message list bounded by a
// retention cap, persisted under the chat cache key and pushed to
// subscribers as messages arrive.
type Log struct {
	store     cache.Store
	retention int

	mu       sync.Mutex
	messages []models.ChatMessage
	subs     map[int]chan models.ChatMessage
	nextSub  int
}

func NewLog(store cache.Store, retention int) *Log {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Log{
		store:     store,
		retention: retention,
		subs:      make(map[int]chan models.ChatMessage),
	}
}

// Load restores the persisted log. A missing or unparseable snapshot leaves
// the log empty.
func (l *Log) Load(ctx context.Context) {
	raw, ok, err := l.store.Get(ctx, cache.KeyChat)
	if err != nil {
		log.Printf("chat: read log: %v", err)
		return
	}
	if !ok {
		return
	}
	var messages []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		log.Printf("chat: parse log: %v", err)
		return
	}
	l.mu.Lock()
	l.messages = messages
	l.trimLocked()
	l.mu.Unlock()
}

// Append stamps, stores and fans out one message.
func (l *Log) Append(ctx context.Context, sender models.User, text string) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender.Name,
		Role:      sender.Role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	if msg.Sender == "" {
		msg.Sender = sender.Username
	}

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.trimLocked()
	l.persistLocked(ctx)
	for _, ch := range l.subs {
		select {
		case ch <- msg:
		default:
			// Slow subscriber; it will catch up from Messages.
		}
	}
	l.mu.Unlock()
	return msg
}

// Messages returns a copy of the current log.
func (l *Log) Messages() []models.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.ChatMessage(nil), l.messages...)
}

// Subscribe registers a listener for appended messages. The returned cancel
// function closes the channel.
func (l *Log) Subscribe() (<-chan models.ChatMessage, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	ch := make(chan models.ChatMessage, 16)
	l.subs[id] = ch
	return ch, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if sub, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub)
		}
	}
}

func (l *Log) trimLocked() {
	if len(l.messages) > l.retention {
		l.messages = append([]models.ChatMessage(nil), l.messages[len(l.messages)-l.retention:]...)
	}
}

func (l *Log) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(l.messages)
	if err != nil {
		return
	}
	if err := l.store.Set(ctx, cache.KeyChat, string(raw)); err != nil {
		log.Printf("chat: persist log: %v", err)
	}
}
