package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/yeonwoo-dev/kumascot/backend/internal/config"
)

// ErrEmptyOutput marks a generation call that succeeded at the
// transport level but produced no usable text.
var ErrEmptyOutput = errors.New("empty model output")

// lookupInstruction is folded into the system instructions when the
// search-intent classifier asked for external grounding.
const lookupInstruction = "이번 질문은 객관 정보 질문이다. 확인된 최신 사실에 근거해서 답하고, 확실하지 않으면 그렇다고 말해."

// GenerateRequest carries one composed generation call.
type GenerateRequest struct {
	Instructions string
	Transcript   string
	EnableLookup bool
}

// Service is the generation collaborator backed by an ark chat model
// behind an eino chain. Exactly one Invoke per request, no retries; the
// caller bounds the call with a context deadline.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the instruction/transcript chain once at startup.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{instructions}"),
		schema.UserMessage("{transcript}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile generation chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// Generate runs one generation call and returns the raw model text.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	instructions := req.Instructions
	if req.EnableLookup {
		instructions = instructions + "\n" + lookupInstruction
	}

	response, err := s.chain.Invoke(ctx, map[string]any{
		"instructions": instructions,
		"transcript":   req.Transcript,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	raw := strings.TrimSpace(response.Content)
	if raw == "" {
		return "", ErrEmptyOutput
	}

	log.Printf("[ai] generated response, lookup=%t, length=%d", req.EnableLookup, len(raw))
	return raw, nil
}
