package ai

import (
	"strings"
	"testing"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
	"github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
)

func TestBuildInstructionsEmbedsPersonaAndRules(t *testing.T) {
	var goose character.Character
	for _, c := range character.Seed() {
		if c.ID == "goose" {
			goose = c
		}
	}
	if goose.ID == "" {
		t.Fatal("goose not seeded")
	}

	got := BuildInstructions(goose)

	for _, want := range []string{
		"건국대학교 마스코트 캐릭터 챗봇",
		goose.Name,
		goose.Persona,
		goose.StyleRules[0],
		"절대 지어내지 말고",
		"URL/출처/링크를 절대 포함하지 않는다",
		"한국어로만.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("instructions missing %q:\n%s", want, got)
		}
	}
}

func TestBuildInstructionsIsDeterministic(t *testing.T) {
	c := character.Seed()[0]
	if BuildInstructions(c) != BuildInstructions(c) {
		t.Fatal("instructions differ between identical calls")
	}
}

func TestBuildTranscriptLabelsTurns(t *testing.T) {
	history := []chat.Message{
		{From: chat.SenderUser, Text: "배고파"},
		{From: chat.SenderBot, Text: "뭐 먹고 싶어?"},
	}

	got := BuildTranscript(history, "국밥")

	for _, want := range []string{"[대화 기록]", "사용자: 배고파", "너: 뭐 먹고 싶어?", "사용자: 국밥", "[지침]"} {
		if !strings.Contains(got, want) {
			t.Fatalf("transcript missing %q:\n%s", want, got)
		}
	}
}

func TestBuildTranscriptSkipsDuplicateTailMessage(t *testing.T) {
	history := []chat.Message{
		{From: chat.SenderUser, Text: "건대 맛집 알려줘"},
	}

	got := BuildTranscript(history, "건대 맛집 알려줘")

	if strings.Count(got, "건대 맛집 알려줘") != 1 {
		t.Fatalf("message duplicated in transcript:\n%s", got)
	}
}
