package synth

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/contentops/goenhance/internal/store"
)

type fakeClient struct {
	resp    string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.resp}},
		},
	}, nil
}

func validBody() string {
	return "<h2>Heading</h2>" + strings.Repeat("<p>enhanced paragraph</p>", 30)
}

func TestRewrite_BuildsSingleTurnPrompt(t *testing.T) {
	fc := &fakeClient{resp: validBody()}
	s := &Synthesizer{Client: fc, Model: "test-model"}
	original := &store.Article{ID: 7, Title: "Original Title", Content: "<p>original body</p>"}
	refs := []Reference{
		{Title: "Ref One", URL: "https://example.com/one", Text: strings.Repeat("x", 3000)},
		{Title: "Ref Two", URL: "https://example.org/two", Text: "short reference text"},
	}

	got, err := s.Rewrite(context.Background(), original, refs)
	if err != nil {
		t.Fatalf("rewrite error: %v", err)
	}
	if got != validBody() {
		t.Fatalf("response not passed through verbatim")
	}
	if len(fc.lastReq.Messages) != 1 {
		t.Fatalf("expected a single-turn request, got %d messages", len(fc.lastReq.Messages))
	}
	if fc.lastReq.MaxTokens != 4096 {
		t.Fatalf("expected bounded output, got MaxTokens=%d", fc.lastReq.MaxTokens)
	}
	prompt := fc.lastReq.Messages[0].Content
	for _, want := range []string{"Original Title", "<p>original body</p>", "Ref One", "https://example.com/one", "Ref Two"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	// The first reference is 3000 chars; only the first 2000 may be embedded.
	if strings.Contains(prompt, strings.Repeat("x", 2001)) {
		t.Fatal("reference preview not truncated to 2000 chars")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 2000)) {
		t.Fatal("reference preview missing")
	}
}

func TestRewrite_ReferencesKeepInputOrder(t *testing.T) {
	fc := &fakeClient{resp: validBody()}
	s := &Synthesizer{Client: fc, Model: "test-model"}
	refs := []Reference{
		{Title: "Alpha", URL: "https://a.example", Text: "alpha text"},
		{Title: "Beta", URL: "https://b.example", Text: "beta text"},
	}
	if _, err := s.Rewrite(context.Background(), &store.Article{Title: "T", Content: "C"}, refs); err != nil {
		t.Fatalf("rewrite error: %v", err)
	}
	prompt := fc.lastReq.Messages[0].Content
	if strings.Index(prompt, "Alpha") > strings.Index(prompt, "Beta") {
		t.Fatal("references reordered in prompt")
	}
}

func TestRewrite_RejectsShortBody(t *testing.T) {
	fc := &fakeClient{resp: "<p>too short</p>"}
	s := &Synthesizer{Client: fc, Model: "test-model"}
	_, err := s.Rewrite(context.Background(), &store.Article{Title: "T", Content: "C"}, nil)
	if !errors.Is(err, ErrBodyTooShort) {
		t.Fatalf("expected ErrBodyTooShort, got %v", err)
	}
}

func TestRewrite_AcceptsPlainTextBody(t *testing.T) {
	fc := &fakeClient{resp: strings.Repeat("plain prose with no markup at all ", 20)}
	s := &Synthesizer{Client: fc, Model: "test-model"}
	if _, err := s.Rewrite(context.Background(), &store.Article{Title: "T", Content: "C"}, nil); err != nil {
		t.Fatalf("plain-text body should be accepted with a warning, got %v", err)
	}
}

func TestRewrite_WrapsCallFailure(t *testing.T) {
	underlying := errors.New("quota exceeded")
	fc := &fakeClient{err: underlying}
	s := &Synthesizer{Client: fc, Model: "test-model"}
	_, err := s.Rewrite(context.Background(), &store.Article{Title: "T", Content: "C"}, nil)
	if !errors.Is(err, underlying) {
		t.Fatalf("expected wrapped underlying error, got %v", err)
	}
}

func TestRewrite_Unconfigured(t *testing.T) {
	s := &Synthesizer{}
	if _, err := s.Rewrite(context.Background(), &store.Article{}, nil); err == nil {
		t.Fatal("expected error when client/model missing")
	}
}
