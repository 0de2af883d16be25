package feed

import (
	"strings"
	"sync"
	"unicode"
)

// MaxMessages is the display window size of the message queue.
const MaxMessages = 5

// Origin tags where a status message came from.
type Origin string

const (
	OriginGeneric Origin = "generic"
	OriginPush    Origin = "push"
	OriginStep    Origin = "step"
)

// Message is one live entry in the deduplicated display queue.
type Message struct {
	ID           string
	Text         string // cleaned, leading marker stripped
	Origin       Origin
	ArrivalOrder int
}

// MessageQueue ingests a bursty stream of human-readable status strings,
// drops duplicates and keeps a bounded ordered window of the most recent
// distinct messages. Safe for concurrent use.
type MessageQueue struct {
	mu      sync.Mutex
	entries []Message
	ids     IDGenerator
	arrival int
}

// NewMessageQueue creates an empty queue. A nil ids falls back to the
// production generator.
func NewMessageQueue(ids IDGenerator) *MessageQueue {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &MessageQueue{ids: ids}
}

// Add ingests one raw message. Empty text after cleaning is dropped, as is
// any message whose (cleaned text, origin) pair is already live in the
// queue. Once an entry has been evicted the same text may enter again.
func (q *MessageQueue) Add(raw string, origin Origin) {
	text := CleanMessage(raw)
	if text == "" {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, m := range q.entries {
		if m.Text == text && m.Origin == origin {
			return
		}
	}

	q.arrival++
	q.entries = append(q.entries, Message{
		ID:           q.ids.NewID(),
		Text:         text,
		Origin:       origin,
		ArrivalOrder: q.arrival,
	})
	if n := len(q.entries) - MaxMessages; n > 0 {
		q.entries = append([]Message(nil), q.entries[n:]...)
	}
}

// Snapshot returns the live entries in arrival order.
func (q *MessageQueue) Snapshot() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Message, len(q.entries))
	copy(out, q.entries)
	return out
}

// Len returns the number of live entries.
func (q *MessageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// CleanMessage strips any leading pictographic marker (emoji, dingbats,
// other symbol runes) and surrounding whitespace from a raw status string.
func CleanMessage(raw string) string {
	s := strings.TrimSpace(raw)
	for s != "" {
		r := []rune(s)[0]
		if !isPictographic(r) {
			break
		}
		s = strings.TrimLeft(strings.TrimPrefix(s, string(r)), " \t")
	}
	return s
}

func isPictographic(r rune) bool {
	if unicode.IsSymbol(r) {
		return true
	}
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // emoji blocks
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	}
	return false
}
