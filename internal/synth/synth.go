package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/contentops/goenhance/internal/llm"
	"github.com/contentops/goenhance/internal/store"
)

// Reference is one successfully scraped competitor document fed to the model
// as a style and quality example.
type Reference struct {
	Title string
	URL   string
	Text  string
}

// ErrBodyTooShort indicates the model returned no usable enhanced body.
var ErrBodyTooShort = errors.New("enhanced body too short")

// Synthesizer asks a chat model to rewrite an article to match the structure
// and quality of reference documents. The request shape is fixed: single
// turn, bounded output, no caller state leaks into the prompt.
type Synthesizer struct {
	Client llm.Client
	Model  string
	// MaxTokens bounds the response. Zero means 4096.
	MaxTokens int
	// PreviewChars caps how much of each reference is embedded. Zero means 2000.
	PreviewChars int
	// MinBodyChars is the acceptance threshold for the response. Zero means 500.
	MinBodyChars int
}

// Rewrite builds the enhancement prompt, calls the model once, and returns
// the response text verbatim as the enhanced body.
func (s *Synthesizer) Rewrite(ctx context.Context, original *store.Article, refs []Reference) (string, error) {
	if s.Client == nil || strings.TrimSpace(s.Model) == "" {
		return "", errors.New("synthesizer not configured")
	}
	maxTokens := s.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: s.buildPrompt(original, refs)},
		},
		MaxTokens: maxTokens,
		N:         1,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("synthesis call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrBodyTooShort
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	minBody := s.MinBodyChars
	if minBody <= 0 {
		minBody = 500
	}
	if len(out) < minBody {
		return "", fmt.Errorf("%w: %d chars", ErrBodyTooShort, len(out))
	}
	if !strings.Contains(out, "<") || !strings.Contains(out, ">") {
		// Quality warning only; a plain-text body is accepted.
		log.Warn().Int("chars", len(out)).Msg("enhanced body contains no markup tags")
	}
	return out, nil
}

func (s *Synthesizer) buildPrompt(original *store.Article, refs []Reference) string {
	previewChars := s.PreviewChars
	if previewChars <= 0 {
		previewChars = 2000
	}
	var sb strings.Builder
	sb.WriteString("You are an expert content writer and SEO specialist. Your task is to rewrite and enhance an article to match the style, formatting, and quality of top-ranking search results.\n\n")
	sb.WriteString("ORIGINAL ARTICLE:\n")
	sb.WriteString("Title: ")
	sb.WriteString(original.Title)
	sb.WriteString("\nContent: ")
	sb.WriteString(original.Content)
	sb.WriteString("\n\nTOP-RANKING REFERENCE ARTICLES:\n")
	for i, ref := range refs {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		preview := ref.Text
		if len(preview) > previewChars {
			preview = preview[:previewChars]
		}
		sb.WriteString(fmt.Sprintf("\nReference Article %d:\nTitle: %s\nURL: %s\nContent Preview: %s...\n", i+1, ref.Title, ref.URL, preview))
	}
	sb.WriteString("\nINSTRUCTIONS:\n")
	sb.WriteString("1. Analyze the structure, formatting, and writing style of the reference articles\n")
	sb.WriteString("2. Rewrite the original article to match the quality and style of these top-ranking articles\n")
	sb.WriteString("3. Improve SEO optimization while maintaining accuracy\n")
	sb.WriteString("4. Use similar heading structures, paragraph lengths, and formatting\n")
	sb.WriteString("5. Keep the core message and facts from the original article\n")
	sb.WriteString("6. Make the content more engaging and easier to read\n")
	sb.WriteString("7. Ensure proper HTML formatting with headings (h2, h3), paragraphs, lists, etc.\n")
	sb.WriteString("8. Add a \"References\" section at the end citing the source articles\n")
	sb.WriteString("\nIMPORTANT:\n")
	sb.WriteString("- Output ONLY the enhanced article content in HTML format\n")
	sb.WriteString("- Do NOT include any preamble or explanation\n")
	sb.WriteString("- Start directly with the article content\n")
	sb.WriteString("- Include proper HTML tags: <h2>, <h3>, <p>, <ul>, <ol>, <strong>, <em>\n")
	sb.WriteString("- End with a References section listing the URLs\n")
	sb.WriteString("\nBegin the enhanced article now:")
	return sb.String()
}
