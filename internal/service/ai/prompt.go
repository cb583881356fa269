package ai

import (
	"strings"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
	"github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
)

// truthfulnessRules are the anti-fabrication rules embedded in every
// instruction block.
var truthfulnessRules = []string{
	"사실을 모르면 절대 지어내지 말고 '확실하지 않다'고 말한다.",
	"학교/실제 정보(규정/운영시간/위치/행사 일정/전화/가격/메뉴 등)는 근거 없으면 단정하지 않는다.",
	"필요하면 웹검색을 사용해 사실을 확인하되, 답변에는 URL/출처/링크를 절대 포함하지 않는다.",
	"검색 결과가 애매하면 단정하지 말고 확인 방법/추가 질문으로 마무리한다.",
	"사용자가 네 답이 틀렸다고 지적하면 즉시 인정하고 정정한다.",
}

// outputRules pin the reply shape the post-processor later enforces.
var outputRules = []string{
	"- 한국어로만.",
	"- 2~4줄, 최대 3문장 + 질문 1개 정도.",
	"- 목록/장문/문서형 설명 금지.",
	"- 객관 정보(맛집/학교/영업시간/위치/규정/일정/가격/전화 등)는 반드시 확인된 사실만 답한다.",
	"- 하지만 답변에는 URL/링크/출처/도메인/괄호 링크를 절대 포함하지 않는다.",
	"- 링크를 말하고 싶다면 \"공식 홈페이지/지도/공지에서 확인해줘\"처럼 말로만 안내한다.",
	"- 사용자가 네 답이 틀렸다고 하면 변명하지 말고 바로 인정하고 고쳐라.",
	"- 확인 결과가 불확실하면 단정하지 말고 '확실하지 않다'고 말하고 확인 방법을 안내해.",
}

// BuildInstructions renders the full system instruction block for a
// character: role framing, persona, style rules, truthfulness rules and
// output-format rules, in that order. Deterministic for a given character.
func BuildInstructions(c character.Character) string {
	var b strings.Builder
	b.WriteString("너는 '건국대학교 마스코트 캐릭터 챗봇'이다.\n")
	b.WriteString("캐릭터 이름: " + c.Name + "\n")
	b.WriteString("캐릭터 설명/말투 참고:\n" + c.Persona + "\n\n")
	b.WriteString("말투 지침:\n" + strings.Join(c.StyleRules, "\n") + "\n\n")
	b.WriteString("진실성 규칙:\n" + strings.Join(truthfulnessRules, "\n") + "\n\n")
	b.WriteString("출력 규칙(매우 중요):\n" + strings.Join(outputRules, "\n") + "\n")
	return b.String()
}

// BuildTranscript merges the history window and the effective message
// into one labeled transcript block, followed by the continuation
// directive. When the effective message already sits at the tail of the
// history as the last user turn, it is not repeated.
func BuildTranscript(history []chat.Message, message string) string {
	msg := strings.TrimSpace(message)

	merged := history
	if !messageIsLastUserTurn(history, msg) {
		merged = append(append([]chat.Message(nil), history...), chat.Message{From: chat.SenderUser, Text: msg})
	}

	lines := make([]string, 0, len(merged)+3)
	lines = append(lines, "[대화 기록]")
	for _, m := range merged {
		label := "너"
		if m.From == chat.SenderUser {
			label = "사용자"
		}
		lines = append(lines, label+": "+m.Text)
	}
	lines = append(lines, "")
	lines = append(lines, "[지침] 대화 기록을 참고해서 직전 맥락을 이어서 답하고, 사용자가 정정하면 즉시 인정하고 수정해.")

	return strings.Join(lines, "\n")
}

func messageIsLastUserTurn(history []chat.Message, msg string) bool {
	if len(history) == 0 {
		return false
	}
	last := history[len(history)-1]
	return last.From == chat.SenderUser && strings.TrimSpace(last.Text) == msg
}
