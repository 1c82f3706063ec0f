package provider

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

type openaiProvider struct {
	cfg    Config
	client *openai.Client
}

func newOpenAI(cfg Config) *openaiProvider {
	return &openaiProvider{cfg: cfg, client: openai.NewClient(cfg.APIKey)}
}

func (p *openaiProvider) Name() string  { return string(OpenAI) }
func (p *openaiProvider) Model() string { return p.cfg.EffectiveModel(OpenAI) }

func (p *openaiProvider) request(systemPrompt, userPrompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:     p.Model(),
		MaxTokens: p.cfg.EffectiveTokenLimit(OpenAI),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
}

func (p *openaiProvider) GenerateMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.request(systemPrompt, userPrompt))
	if err != nil {
		return "", &Error{Provider: p.Name(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: p.Name(), Err: io.ErrUnexpectedEOF}
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *openaiProvider) GenerateStream(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errc)

		req := p.request(systemPrompt, userPrompt)
		req.Stream = true
		stream, err := p.client.CreateChatCompletionStream(ctx, req)
		if err != nil {
			errc <- &Error{Provider: p.Name(), Err: err}
			return
		}
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if err == io.EOF {
				return
			}
			if err != nil {
				errc <- &Error{Provider: p.Name(), Err: err}
				return
			}
			if len(resp.Choices) > 0 {
				chunks <- resp.Choices[0].Delta.Content
			}
		}
	}()

	return chunks, errc
}
