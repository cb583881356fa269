package reply

import (
	"strings"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
)

// applyVoice runs the persona's declared speech tic over the text.
// Personas without a voice style pass through unchanged.
func applyVoice(style character.VoiceStyle, text string, rng Rand) string {
	switch style.Kind {
	case character.VoiceRepeatTag:
		return repeatTagLines(text, style.Tag)
	case character.VoiceSuffixRewrite:
		return rewriteSuffixes(text, style, rng)
	default:
		return text
	}
}

// repeatTagLines appends the tag token to every non-empty line unless
// the line already ends with it, with or without a question mark.
func repeatTagLines(text, tag string) string {
	if tag == "" {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, tag) || strings.HasSuffix(line, tag+"?") || strings.HasSuffix(line, tag+"？") {
			out = append(out, line)
			continue
		}
		out = append(out, line+" "+tag)
	}
	return strings.Join(out, "\n")
}

// rewriteSuffixes rewrites each line ending with the persona suffixes:
// recognized endings stay, question marks become the question suffix,
// and everything else gains the statement suffix. With the configured
// probability one trailing suffix is upgraded to the persona idiom, at
// most once per response.
func rewriteSuffixes(text string, style character.VoiceStyle, rng Rand) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case endsWithRecognizedSuffix(line, style.RecognizedSuffixes):
			out = append(out, line)
		case strings.HasSuffix(line, "?") || strings.HasSuffix(line, "？"):
			out = append(out, strings.TrimRight(line, "?？")+style.QuestionSuffix)
		default:
			out = append(out, line+style.StatementSuffix)
		}
	}

	joined := strings.Join(out, "\n")
	if style.Idiom != "" && !strings.Contains(joined, style.Idiom) && rng.Float64() < style.IdiomChance {
		if strings.HasSuffix(joined, style.QuestionSuffix) {
			joined = strings.TrimSuffix(joined, style.QuestionSuffix) + style.Idiom + "?"
		}
	}
	return joined
}

func endsWithRecognizedSuffix(line string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix == "" {
			continue
		}
		if strings.HasSuffix(line, suffix) || strings.HasSuffix(line, suffix+"?") || strings.HasSuffix(line, suffix+"？") {
			return true
		}
	}
	return false
}
