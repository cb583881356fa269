package chat

import (
	"encoding/json"
	"strings"
)

// Sender labels accepted on history entries.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

const (
	// MaxHistoryEntries bounds the conversation window kept per request.
	MaxHistoryEntries = 12
	// MaxMessageRunes bounds the length of a single history entry.
	MaxMessageRunes = 600
)

// Message is a single conversation turn supplied by the client.
// The server keeps no history of its own; the client resends the
// window on every request.
type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Request is the inbound chat payload.
type Request struct {
	Message     string          `json:"message"`
	CharacterID string          `json:"characterId"`
	History     json.RawMessage `json:"history"`
}

// Response is the outbound chat payload. Sources is reserved and
// always empty: evidence is consulted internally but never surfaced.
type Response struct {
	Reply         string   `json:"reply"`
	Sources       []string `json:"sources"`
	UsedWebSearch bool     `json:"used_web_search"`
	UsedFallback  bool     `json:"used_fallback"`
}

// NewResponse builds a Response with the reserved sources field
// populated so it serializes as [] rather than null.
func NewResponse(reply string, usedWebSearch, usedFallback bool) Response {
	return Response{
		Reply:         reply,
		Sources:       []string{},
		UsedWebSearch: usedWebSearch,
		UsedFallback:  usedFallback,
	}
}

// rawHistoryEntry tolerates arbitrarily shaped client entries.
type rawHistoryEntry struct {
	From any `json:"from"`
	Text any `json:"text"`
}

// NormalizeHistory sanitizes an externally supplied history value into
// a bounded, well-typed window. Entries with an unknown sender, a
// non-string text, or text that is empty after trimming are dropped
// rather than rejected; surviving texts are truncated to MaxMessageRunes
// and only the last MaxHistoryEntries entries are kept, in order.
// Malformed input yields an empty history, never an error.
func NormalizeHistory(raw json.RawMessage) []Message {
	if len(raw) == 0 {
		return nil
	}

	var entries []rawHistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	out := make([]Message, 0, len(entries))
	for _, entry := range entries {
		from, ok := entry.From.(string)
		if !ok || (from != SenderUser && from != SenderBot) {
			continue
		}

		text, ok := entry.Text.(string)
		if !ok {
			continue
		}

		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}

		if runes := []rune(trimmed); len(runes) > MaxMessageRunes {
			trimmed = string(runes[:MaxMessageRunes])
		}

		out = append(out, Message{From: from, Text: trimmed})
	}

	if len(out) > MaxHistoryEntries {
		out = out[len(out)-MaxHistoryEntries:]
	}
	return out
}
