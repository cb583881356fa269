// Package intent decides, with bounded heuristics, whether a message
// needs externally grounded facts before answering, and resolves bare
// "찾아/검색" commands against the conversation window.
package intent

import (
	"fmt"
	"regexp"
	"strings"
)

// Config holds the classifier's keyword and pattern sets. The lists are
// data rather than constants: their recall/precision tradeoff is a
// tuning knob, not a fixed contract.
type Config struct {
	// TriggerPhrases force search intent whenever one appears anywhere
	// in the message (explicit "look it up" vocabulary).
	TriggerPhrases []string
	// FactualKeywords mark place/venue/hours/price/campus vocabulary.
	FactualKeywords []string
	// Patterns are regular expressions capturing location/time/"tell me"
	// question forms.
	Patterns []string
}

// DefaultConfig returns the built-in Korean campus keyword sets.
func DefaultConfig() Config {
	return Config{
		TriggerPhrases: []string{
			"검색", "검색해", "검색해줘", "찾아", "찾아줘", "찾아봐", "서치",
			"네이버", "지도", "구글맵", "근거", "정확", "실제", "진짜", "최신",
		},
		FactualKeywords: []string{
			// 맛집/장소/영업정보
			"맛집", "추천", "가게", "식당", "카페", "후문", "정문",
			"영업", "영업시간", "운영시간", "몇시", "언제", "오늘", "내일",
			"주소", "위치", "어디", "어딨어", "어딘", "전화", "연락처",
			"가격", "요금", "비용", "메뉴", "예약", "웨이팅", "리뷰", "주차",
			"가는법", "길", "노선", "출구", "역",
			// 학교/행정/시설
			"학교", "건국대", "건대", "도서관", "열람실", "프린트", "시설",
			"셔틀", "학사", "등록", "등록금", "장학", "공지", "규정", "규칙",
			"수칙", "학식", "식단", "운영", "시간표", "일정", "행사", "마감",
		},
		Patterns: []string{
			`(어디|어딨어|어딘|위치|주소|영업|운영|몇시|언제|알려줘|찾아줘|검색해)`,
		},
	}
}

// Classifier is a deterministic, side-effect-free search-intent
// heuristic. Any single rule match yields true; there is no ranking.
type Classifier struct {
	triggers []string
	keywords []string
	patterns []*regexp.Regexp
}

// NewClassifier compiles the configured patterns.
func NewClassifier(cfg Config) (*Classifier, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid intent pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return &Classifier{
		triggers: append([]string(nil), cfg.TriggerPhrases...),
		keywords: append([]string(nil), cfg.FactualKeywords...),
		patterns: patterns,
	}, nil
}

// NewDefaultClassifier builds a classifier from DefaultConfig.
// The default patterns are fixed, so compilation cannot fail.
func NewDefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}

// NeedsWebSearch reports whether the message asks for objective,
// verifiable facts and should be answered with external grounding.
func (c *Classifier) NeedsWebSearch(message string) bool {
	lowered := strings.ToLower(message)

	for _, phrase := range c.triggers {
		if phrase != "" && strings.Contains(lowered, phrase) {
			return true
		}
	}

	for _, keyword := range c.keywords {
		if keyword != "" && strings.Contains(lowered, keyword) {
			return true
		}
	}

	for _, re := range c.patterns {
		if re.MatchString(message) {
			return true
		}
	}

	return false
}
