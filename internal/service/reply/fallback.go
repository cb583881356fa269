package reply

import (
	"math/rand"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
)

// Canned replies for the short-circuit paths. Always delivered as a
// normal response, never an HTTP error.
const (
	EmptyMessageReply     = "음… 메시지가 비어있어 😵‍💫"
	UnknownCharacterReply = "앗… 캐릭터 id가 이상해 😵‍💫 (cow/zara/cat/goose 중 하나여야 해!)"
)

// Rand is the randomness source for template picks and idiom
// substitution. *math/rand.Rand satisfies it; tests inject a fixed
// source to pin exact output.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// systemRand delegates to the package-level math/rand functions, which
// are safe for concurrent use.
type systemRand struct{}

func (systemRand) Intn(n int) int   { return rand.Intn(n) }
func (systemRand) Float64() float64 { return rand.Float64() }

// SystemRand returns the process-wide randomness source.
func SystemRand() Rand { return systemRand{} }

// Responder produces short templated persona replies without any
// external call, used when generation is skipped or fails.
type Responder struct {
	rng Rand
}

// NewResponder builds a Responder; a nil rng falls back to SystemRand.
func NewResponder(rng Rand) *Responder {
	if rng == nil {
		rng = SystemRand()
	}
	return &Responder{rng: rng}
}

// Reply picks one of the persona's fallback templates uniformly and
// applies the persona voice. A stop directive in the (resolved) user
// message overrides the template with the fixed acknowledgment.
func (r *Responder) Reply(c character.Character, userMessage string) string {
	if c.StopAck != "" && c.MatchesStopDirective(userMessage) {
		return c.StopAck
	}

	if len(c.FallbackTemplates) == 0 {
		return UnknownCharacterReply
	}

	template := c.FallbackTemplates[r.rng.Intn(len(c.FallbackTemplates))]
	return applyVoice(c.Voice, template, r.rng)
}
