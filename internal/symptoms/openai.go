package symptoms

import (
	"context"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const extractorSystemPrompt = `You classify a patient's free-text description into fixed category tokens.
Reply with matching tokens only, comma separated, no other text.
Reply "none" when nothing applies.`

// OpenAIParser classifies free text with a chat model, constrained to
// the keyword vocabulary. Any failure falls back to the keyword parser
// so extraction never depends on the API being up.
type OpenAIParser struct {
	client   *openai.Client
	model    string
	fallback Parser
}

// NewOpenAIParser builds the LLM-backed extractor.
func NewOpenAIParser(apiKey, model string, fallback Parser) *OpenAIParser {
	return &OpenAIParser{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: fallback,
	}
}

func (p *OpenAIParser) ParseSymptoms(ctx context.Context, text string) ([]string, error) {
	tokens, err := p.classify(ctx, text, Vocabulary())
	if err != nil {
		log.Printf("symptom extraction via %s failed, using keywords: %v", p.model, err)
		return p.fallback.ParseSymptoms(ctx, text)
	}
	if len(tokens) == 0 {
		return []string{OtherSymptom}, nil
	}
	return tokens, nil
}

func (p *OpenAIParser) ParseHistory(ctx context.Context, text string) ([]string, error) {
	if noHistoryAnswers[strings.ToLower(strings.TrimSpace(text))] {
		return nil, nil
	}
	tokens, err := p.classify(ctx, text, HistoryVocabulary())
	if err != nil {
		log.Printf("history extraction via %s failed, using keywords: %v", p.model, err)
		return p.fallback.ParseHistory(ctx, text)
	}
	return tokens, nil
}

func (p *OpenAIParser) classify(ctx context.Context, text string, vocab []string) ([]string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractorSystemPrompt + "\nTokens: " + strings.Join(vocab, ", ")},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	allowed := make(map[string]bool, len(vocab))
	for _, t := range vocab {
		allowed[t] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(resp.Choices[0].Message.Content, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		// The model occasionally echoes tokens it invented; keep only
		// vocabulary entries.
		if allowed[token] && !seen[token] {
			seen[token] = true
			out = append(out, token)
		}
	}
	return out, nil
}
