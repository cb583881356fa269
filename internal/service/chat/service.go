// Package chat sequences one request through validation, short-circuit
// directives, generation, post-processing and fallback, always ending
// in a response unless the request itself was superseded.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yeonwoo-dev/kumascot/backend/internal/analysis/intent"
	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
	chatmodel "github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
	"github.com/yeonwoo-dev/kumascot/backend/internal/service/ai"
	"github.com/yeonwoo-dev/kumascot/backend/internal/service/reply"
)

// ErrCanceled marks a request abandoned because its context was
// canceled (client gone or turn superseded). Callers emit nothing for
// it: no fallback, no response.
var ErrCanceled = errors.New("request canceled")

const defaultGenerateTimeout = 25 * time.Second

// Generator is the external generation collaborator. A nil Generator
// means credentials are not configured and every request falls back.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerateRequest) (string, error)
}

// Config tunes the orchestrator. Zero values select the defaults.
type Config struct {
	// GenerateTimeout bounds the single generation call.
	GenerateTimeout time.Duration
	// Classifier overrides the search-intent keyword sets.
	Classifier *intent.Classifier
	// Rand overrides the randomness source for fallback template picks
	// and voice idioms.
	Rand reply.Rand
}

// Service orchestrates the response pipeline. It holds only read-only
// collaborators; each request is handled independently.
type Service struct {
	characters character.Store
	generator  Generator
	classifier *intent.Classifier
	responder  *reply.Responder
	rng        reply.Rand
	timeout    time.Duration
}

// NewService wires the pipeline around the character registry and an
// optional generator.
func NewService(characters character.Store, generator Generator, cfg Config) *Service {
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = intent.NewDefaultClassifier()
	}

	rng := cfg.Rand
	if rng == nil {
		rng = reply.SystemRand()
	}

	timeout := cfg.GenerateTimeout
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}

	return &Service{
		characters: characters,
		generator:  generator,
		classifier: classifier,
		responder:  reply.NewResponder(rng),
		rng:        rng,
		timeout:    timeout,
	}
}

// Respond runs one message through the pipeline and always returns a
// Response, except when the request context was canceled, which yields
// ErrCanceled and no response at all.
func (s *Service) Respond(ctx context.Context, req chatmodel.Request) (chatmodel.Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return chatmodel.NewResponse(reply.EmptyMessageReply, false, true), nil
	}

	history := chatmodel.NormalizeHistory(req.History)

	char, ok := s.characters.FindByID(req.CharacterID)
	if !ok {
		log.Printf("[chat] unknown character id %q", req.CharacterID)
		return chatmodel.NewResponse(reply.UnknownCharacterReply, false, true), nil
	}

	// Explicit user directives win over everything, generation included.
	if char.StopAck != "" && char.MatchesStopDirective(message) {
		return chatmodel.NewResponse(char.StopAck, false, true), nil
	}

	effective := intent.ResolveEffectiveMessage(message, history)

	if s.generator != nil {
		resp, err := s.generate(ctx, char, history, effective)
		if err == nil {
			return resp, nil
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return chatmodel.Response{}, ErrCanceled
		}
		log.Printf("[chat] generation failed for character=%s: %v", char.ID, err)
	}

	return chatmodel.NewResponse(s.responder.Reply(char, effective), false, true), nil
}

// generate performs the single bounded generation call and post-processes
// its output. Any error routes the caller to the fallback path.
func (s *Service) generate(ctx context.Context, char character.Character, history []chatmodel.Message, effective string) (chatmodel.Response, error) {
	needsSearch := s.classifier.NeedsWebSearch(effective)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.generator.Generate(genCtx, ai.GenerateRequest{
		Instructions: ai.BuildInstructions(char),
		Transcript:   ai.BuildTranscript(history, effective),
		EnableLookup: needsSearch,
	})
	if err != nil {
		return chatmodel.Response{}, err
	}

	return chatmodel.NewResponse(reply.PostProcess(char, raw, s.rng), needsSearch, false), nil
}
