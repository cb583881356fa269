// Package reply enforces the output contract on generated text and
// produces the rule-based replies used when generation is unavailable.
// Every transform is pure; randomness enters only through the injected
// Rand source.
package reply

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
)

const (
	maxSentences = 3
	maxLines     = 4

	defaultEndingQuestion = "지금 상황을 한 줄로 말해줄래?"
)

var (
	fencedCodeRE = regexp.MustCompile("(?s)```.*?```")
	boldRE       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	inlineCodeRE = regexp.MustCompile("`([^`]+)`")
	bulletRE     = regexp.MustCompile(`(?m)^[-*]\s+`)
	numberedRE   = regexp.MustCompile(`(?m)^\d+[.)]\s+`)
	hSpaceRE     = regexp.MustCompile(`[ \t]+`)
	blankRunRE   = regexp.MustCompile(`\n{3,}`)

	sourceLabelRE  = regexp.MustCompile(`(?m)^출처\s*:\s*.*$`)
	sourcesLabelRE = regexp.MustCompile(`(?mi)^sources?\s*:\s*.*$`)
	urlRE          = regexp.MustCompile(`https?://\S+`)
	wwwRE          = regexp.MustCompile(`www\.\S+`)
	trackingRE     = regexp.MustCompile(`utm_\w+=\S+`)
	emptyParenRE   = regexp.MustCompile(`\(\s*\)`)
)

// PostProcess rewrites raw generated text into the strict conversational
// shape: markup stripped, sources and links scrubbed, at most 3
// sentences on at most 4 lines, a trailing question guaranteed, and the
// persona voice applied. The scrub runs again last in case the voice
// transform reassembled a stray artifact.
func PostProcess(c character.Character, raw string, rng Rand) string {
	text := StripMarkup(raw)
	text = ScrubSources(text)
	text = limitSentences(text, maxSentences)
	text = clampLines(text, maxLines)
	text = ensureConversationalEnding(c, text)
	text = applyVoice(c.Voice, text, rng)
	return strings.TrimSpace(ScrubSources(text))
}

// StripMarkup removes markdown structure the generator tends to emit:
// fenced code blocks, bold and inline-code delimiters, list bullets and
// numbered-list markers. Runs of horizontal whitespace collapse to one
// space and runs of blank lines to a single blank line.
func StripMarkup(text string) string {
	text = fencedCodeRE.ReplaceAllString(text, "")
	text = boldRE.ReplaceAllString(text, "$1")
	text = inlineCodeRE.ReplaceAllString(text, "$1")
	text = bulletRE.ReplaceAllString(text, "")
	text = numberedRE.ReplaceAllString(text, "")
	text = hSpaceRE.ReplaceAllString(text, " ")
	text = blankRunRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ScrubSources deletes source-label lines, URLs, bare www hosts and
// tracking-parameter fragments, then collapses the parentheses and
// blank lines left behind. Idempotent: scrubbing already-scrubbed text
// is a no-op.
func ScrubSources(text string) string {
	text = sourceLabelRE.ReplaceAllString(text, "")
	text = sourcesLabelRE.ReplaceAllString(text, "")
	text = urlRE.ReplaceAllString(text, "")
	text = wwwRE.ReplaceAllString(text, "")
	text = trackingRE.ReplaceAllString(text, "")
	text = emptyParenRE.ReplaceAllString(text, "")
	text = blankRunRE.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// limitSentences keeps the first max sentence units. A unit ends at a
// newline, or at sentence punctuation (. ! ? 。) followed by whitespace
// or end of text; the Korean polite ending "요." terminates in "." and
// needs no special case. Units are rejoined with newlines.
func limitSentences(text string, max int) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
	runes := []rune(cleaned)

	var units []string
	var current strings.Builder
	flush := func() {
		if unit := strings.TrimSpace(current.String()); unit != "" {
			units = append(units, unit)
		}
		current.Reset()
	}

	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		current.WriteRune(r)
		if strings.ContainsRune(".!?。", r) {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()

	if len(units) > max {
		units = units[:max]
	}
	return strings.Join(units, "\n")
}

// clampLines drops blank lines and keeps only the first max lines.
func clampLines(text string, max int) string {
	kept := make([]string, 0, max)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == max {
			break
		}
	}
	return strings.Join(kept, "\n")
}

// ensureConversationalEnding appends the persona's follow-up question
// when no line carries a question mark (ASCII or full-width).
func ensureConversationalEnding(c character.Character, text string) string {
	if strings.Contains(text, "?") || strings.Contains(text, "？") {
		return text
	}
	ending := c.EndingQuestion
	if ending == "" {
		ending = defaultEndingQuestion
	}
	if text == "" {
		return ending
	}
	return text + "\n" + ending
}
