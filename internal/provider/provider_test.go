package provider

import "testing"

func TestParseKindMapsLegacyClaude(t *testing.T) {
	k, err := ParseKind("claude")
	if err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
	if k != Anthropic {
		t.Errorf("ParseKind(claude) = %v, want Anthropic", k)
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	if _, err := ParseKind("nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestEffectiveModelFallsBackToDefault(t *testing.T) {
	cfg := Config{}
	if got := cfg.EffectiveModel(OpenAI); got != defaults[OpenAI].PrimaryModel {
		t.Errorf("EffectiveModel = %q, want default", got)
	}
	cfg.Model = "custom-model"
	if got := cfg.EffectiveModel(OpenAI); got != "custom-model" {
		t.Errorf("EffectiveModel = %q, want custom-model", got)
	}
}

func TestCoercedParamsAutoCoerces(t *testing.T) {
	cfg := Config{AdditionalParams: map[string]string{
		"temperature": "0.7",
		"stream":      "true",
		"name":        "iris",
	}}
	got := cfg.CoercedParams()
	if got["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", got["temperature"])
	}
	if got["stream"] != true {
		t.Errorf("stream = %v, want true", got["stream"])
	}
	if got["name"] != "iris" {
		t.Errorf("name = %v, want iris", got["name"])
	}
}

func TestWantsJSONDetectsKeyword(t *testing.T) {
	if !wantsJSON("Respond with JSON only") {
		t.Error("expected wantsJSON to detect JSON keyword")
	}
	if wantsJSON("Respond in plain text") {
		t.Error("expected wantsJSON to be false without JSON keyword")
	}
}
