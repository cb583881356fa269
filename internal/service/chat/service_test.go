package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yeonwoo-dev/kumascot/backend/internal/model/character"
	chatmodel "github.com/yeonwoo-dev/kumascot/backend/internal/model/chat"
	"github.com/yeonwoo-dev/kumascot/backend/internal/service/ai"
	chat "github.com/yeonwoo-dev/kumascot/backend/internal/service/chat"
	"github.com/yeonwoo-dev/kumascot/backend/internal/service/reply"
)

// fakeGenerator records calls and returns a fixed output or error.
type fakeGenerator struct {
	calls   int
	lastReq ai.GenerateRequest
	output  string
	err     error
}

func (g *fakeGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	g.calls++
	g.lastReq = req
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.output, g.err
}

type fixedRand struct {
	pick int
	roll float64
}

func (r fixedRand) Intn(n int) int {
	if r.pick < n {
		return r.pick
	}
	return 0
}

func (r fixedRand) Float64() float64 { return r.roll }

func newService(gen chat.Generator) *chat.Service {
	store := character.NewMemoryStore(character.Seed())
	return chat.NewService(store, gen, chat.Config{Rand: fixedRand{roll: 1}})
}

func seedByID(t *testing.T, id string) character.Character {
	t.Helper()
	for _, c := range character.Seed() {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("character %s not seeded", id)
	return character.Character{}
}

func TestRespondEmptyMessage(t *testing.T) {
	gen := &fakeGenerator{output: "무시됨"}
	svc := newService(gen)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "   ", CharacterID: "cow"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !resp.UsedFallback {
		t.Fatal("expected fallback for empty message")
	}
	if resp.Reply != reply.EmptyMessageReply {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if gen.calls != 0 {
		t.Fatalf("generation must not run for empty messages, got %d calls", gen.calls)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Fatalf("sources must be empty, got %v", resp.Sources)
	}
}

func TestRespondFallbackWithoutGenerator(t *testing.T) {
	// Scenario: factual question, no credentials configured.
	svc := newService(nil)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "영업시간", CharacterID: "cow"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !resp.UsedFallback {
		t.Fatal("expected fallback without generator")
	}
	if resp.UsedWebSearch {
		t.Fatal("fallback replies never report web search")
	}

	cow := seedByID(t, "cow")
	found := false
	for _, tpl := range cow.FallbackTemplates {
		if resp.Reply == tpl {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("reply %q is not one of cow's fallback templates", resp.Reply)
	}
}

func TestRespondStopDirectiveSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{output: "무시됨"}
	svc := newService(gen)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "이제 꽉 빼 줘", CharacterID: "goose"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generation must not run for stop directives, got %d calls", gen.calls)
	}
	if resp.Reply != seedByID(t, "goose").StopAck {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if !resp.UsedFallback {
		t.Fatal("stop acknowledgment counts as fallback")
	}
}

func TestRespondUnknownCharacter(t *testing.T) {
	gen := &fakeGenerator{output: "무시됨"}
	svc := newService(gen)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "안녕", CharacterID: "dragon"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if resp.Reply != reply.UnknownCharacterReply {
		t.Fatalf("unexpected reply: %q", resp.Reply)
	}
	if gen.calls != 0 {
		t.Fatalf("generation must not run for unknown characters, got %d calls", gen.calls)
	}
}

func TestRespondGenerationSuccess(t *testing.T) {
	gen := &fakeGenerator{output: "후문 쪽에 국밥집이 있어. 자세한 건 https://map.example.com 봐.\n가격도 괜찮은 편이야."}
	svc := newService(gen)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "건대 후문 맛집 추천해줘", CharacterID: "cow"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if resp.UsedFallback {
		t.Fatal("expected generated reply, not fallback")
	}
	if !resp.UsedWebSearch {
		t.Fatal("expected web-search intent for restaurant question")
	}
	if !gen.lastReq.EnableLookup {
		t.Fatal("expected lookup enabled on the generation request")
	}
	if strings.Contains(resp.Reply, "http") {
		t.Fatalf("reply still carries a URL: %q", resp.Reply)
	}
	if gen.calls != 1 {
		t.Fatalf("expected exactly one generation call, got %d", gen.calls)
	}
}

func TestRespondResolvesShortSearchCommand(t *testing.T) {
	gen := &fakeGenerator{output: "찾아봤어, 후문 쪽 국밥집이 평이 좋아."}
	svc := newService(gen)

	history := []byte(`[{"from":"user","text":"건대 후문 맛집 추천해줘"},{"from":"bot","text":"잠깐만!"},{"from":"user","text":"찾아줘"}]`)
	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "찾아줘", CharacterID: "cow", History: history})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !strings.Contains(gen.lastReq.Transcript, "건대 후문 맛집 추천해줘") {
		t.Fatalf("transcript missing recovered question:\n%s", gen.lastReq.Transcript)
	}
	if !resp.UsedWebSearch {
		t.Fatal("expected web-search intent for resolved message")
	}
}

func TestRespondGenerationFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	svc := newService(gen)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "공부 도와줘", CharacterID: "zara"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !resp.UsedFallback {
		t.Fatal("expected fallback after generation failure")
	}
}

func TestRespondEmptyOutputFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: ai.ErrEmptyOutput}
	svc := newService(gen)

	resp, err := svc.Respond(context.Background(), chatmodel.Request{Message: "심심해", CharacterID: "cat"})
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !resp.UsedFallback {
		t.Fatal("expected fallback after empty model output")
	}
}

func TestRespondCanceledRequestEmitsNothing(t *testing.T) {
	gen := &fakeGenerator{output: "무시됨"}
	svc := newService(gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.Respond(ctx, chatmodel.Request{Message: "안녕", CharacterID: "cow"})
	if !errors.Is(err, chat.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if resp.Reply != "" {
		t.Fatalf("canceled request must produce no reply, got %q", resp.Reply)
	}
}
