package provider

import (
	"context"

	"google.golang.org/genai"
)

type googleProvider struct {
	cfg Config
}

func newGoogle(cfg Config) *googleProvider {
	return &googleProvider{cfg: cfg}
}

func (p *googleProvider) Name() string  { return string(Google) }
func (p *googleProvider) Model() string { return p.cfg.EffectiveModel(Google) }

func (p *googleProvider) newClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// config builds the generation config, setting response_mime_type to
// "application/json" when the user prompt mentions JSON and no override
// is present in additional_params.
func (p *googleProvider) config(userPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText("", genai.RoleUser),
	}
	if _, overridden := p.cfg.AdditionalParams["response_mime_type"]; !overridden && wantsJSON(userPrompt) {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func (p *googleProvider) GenerateMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return "", &Error{Provider: p.Name(), Err: err}
	}
	cfg := p.config(userPrompt)
	cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)

	resp, err := client.Models.GenerateContent(ctx, p.Model(), genai.Text(userPrompt), cfg)
	if err != nil {
		return "", &Error{Provider: p.Name(), Err: err}
	}
	return resp.Text(), nil
}

func (p *googleProvider) GenerateStream(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errc)

		client, err := p.newClient(ctx)
		if err != nil {
			errc <- &Error{Provider: p.Name(), Err: err}
			return
		}
		cfg := p.config(userPrompt)
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)

		for resp, err := range client.Models.GenerateContentStream(ctx, p.Model(), genai.Text(userPrompt), cfg) {
			if err != nil {
				errc <- &Error{Provider: p.Name(), Err: err}
				return
			}
			chunks <- resp.Text()
		}
	}()

	return chunks, errc
}
