package provider

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicProvider struct {
	cfg    Config
	client anthropic.Client
}

func newAnthropic(cfg Config) *anthropicProvider {
	return &anthropicProvider{
		cfg:    cfg,
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
	}
}

func (p *anthropicProvider) Name() string  { return string(Anthropic) }
func (p *anthropicProvider) Model() string { return p.cfg.EffectiveModel(Anthropic) }

func (p *anthropicProvider) GenerateMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.Model()),
		MaxTokens: int64(p.cfg.EffectiveTokenLimit(Anthropic)),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", &Error{Provider: p.Name(), Err: err}
	}
	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out, nil
}

func (p *anthropicProvider) GenerateStream(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errc)

		stream := p.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(p.Model()),
			MaxTokens: int64(p.cfg.EffectiveTokenLimit(Anthropic)),
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
			},
		})
		for stream.Next() {
			event := stream.Current()
			if delta, ok := event.AsAny().(anthropic.ContentBlockDeltaEvent); ok {
				if delta.Delta.Text != "" {
					chunks <- delta.Delta.Text
				}
			}
		}
		if err := stream.Err(); err != nil {
			errc <- &Error{Provider: p.Name(), Err: err}
		}
	}()

	return chunks, errc
}
