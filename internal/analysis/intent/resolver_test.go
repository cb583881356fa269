package intent

import (
	"strings"
	"testing"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
)

func TestResolveEffectiveMessageRecoversPriorQuestion(t *testing.T) {
	history := []chat.Message{
		{From: chat.SenderUser, Text: "건대 후문 맛집 추천해줘"},
		{From: chat.SenderBot, Text: "어디 쪽이 좋아?"},
		{From: chat.SenderUser, Text: "찾아줘"},
	}

	got := ResolveEffectiveMessage("찾아줘", history)
	if !strings.Contains(got, "건대 후문 맛집 추천해줘") {
		t.Fatalf("expected prior question in effective message, got %q", got)
	}
	if !strings.Contains(got, "실제로 찾아서 알려줘") {
		t.Fatalf("expected lookup directive in effective message, got %q", got)
	}

	// The recovered question must classify as search intent (scenario B).
	if !NewDefaultClassifier().NeedsWebSearch(got) {
		t.Fatal("expected search intent for resolved message")
	}
}

func TestResolveEffectiveMessageSkipsCommandsAndShortEntries(t *testing.T) {
	history := []chat.Message{
		{From: chat.SenderUser, Text: "ㅇㅋ"},
		{From: chat.SenderUser, Text: "검색해"},
	}

	if got := ResolveEffectiveMessage("찾아줘", history); got != "찾아줘" {
		t.Fatalf("expected unchanged message when nothing qualifies, got %q", got)
	}
}

func TestResolveEffectiveMessageIgnoresBotEntries(t *testing.T) {
	history := []chat.Message{
		{From: chat.SenderBot, Text: "건대 후문 맛집은 많아"},
	}

	if got := ResolveEffectiveMessage("검색", history); got != "검색" {
		t.Fatalf("expected unchanged message, got %q", got)
	}
}

func TestResolveEffectiveMessagePassThrough(t *testing.T) {
	if got := ResolveEffectiveMessage("  내일 비 와?  ", nil); got != "내일 비 와?" {
		t.Fatalf("expected trimmed original, got %q", got)
	}
}

func TestIsShortSearchCommand(t *testing.T) {
	for _, msg := range []string{"찾아", "검색해줘", " 서치 "} {
		if !IsShortSearchCommand(msg) {
			t.Fatalf("expected %q to be a short search command", msg)
		}
	}
	for _, msg := range []string{"찾아줘 건대 맛집", "그냥 궁금해"} {
		if IsShortSearchCommand(msg) {
			t.Fatalf("expected %q not to be a short search command", msg)
		}
	}
}
