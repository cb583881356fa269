package intent

import (
	"strings"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
)

// shortSearchCommands are the bare "go look it up" synonyms. A message
// matching one of these carries no query of its own.
var shortSearchCommands = []string{
	"찾아", "찾아줘", "찾아봐",
	"검색", "검색해", "검색해줘",
	"서치", "서치해", "서치해줘",
}

// lookupDirective is appended to a recovered prior question so the
// generator knows the user asked to actually look it up.
const lookupDirective = "(사용자가 '찾아/검색'이라고 했으니 실제로 찾아서 알려줘)"

// minResolvableRunes is the shortest prior question worth recovering.
const minResolvableRunes = 4

// IsShortSearchCommand reports whether the trimmed message is exactly
// one of the bare search-command synonyms.
func IsShortSearchCommand(message string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(message))
	for _, cmd := range shortSearchCommands {
		if trimmed == cmd {
			return true
		}
	}
	return false
}

// ResolveEffectiveMessage turns a bare search command into the most
// recent substantive prior user question, with the lookup directive
// appended. The tail of the history usually holds the command itself,
// so the scan skips commands and too-short entries. When nothing
// qualifies, or the message was not a bare command, the trimmed
// original is returned unchanged.
func ResolveEffectiveMessage(message string, history []chat.Message) string {
	effective := strings.TrimSpace(message)
	if !IsShortSearchCommand(effective) {
		return effective
	}

	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		if entry.From != chat.SenderUser {
			continue
		}
		text := strings.TrimSpace(entry.Text)
		if text == "" || IsShortSearchCommand(text) {
			continue
		}
		if len([]rune(text)) < minResolvableRunes {
			continue
		}
		return text + "\n" + lookupDirective
	}

	return effective
}
