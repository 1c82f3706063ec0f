package validator

import "testing"

func msgSchema() Schema {
	return Schema{Fields: []Field{
		{Name: "title", Type: TString, Required: true},
		{Name: "message", Type: TString, Required: true},
		{Name: "tags", Type: TArray, Required: false},
		{Name: "count", Type: TNumber, Required: false},
	}}
}

func TestValidateAndParseSuccess(t *testing.T) {
	res := ValidateAndParse(`{"title":"Fix","message":"ok"}`, msgSchema())
	if res.Outcome != Success {
		t.Fatalf("Outcome = %v, want Success (err=%v)", res.Outcome, res.Err)
	}
}

func TestValidateAndParseRecoversScalarAndNumericString(t *testing.T) {
	res := ValidateAndParse(`{"title":"Fix","message":"ok","tags":"single","count":"42"}`, msgSchema())
	if res.Outcome != Recovered {
		t.Fatalf("Outcome = %v, want Recovered (err=%v)", res.Outcome, res.Err)
	}
	tags, ok := res.Value["tags"].([]any)
	if !ok || len(tags) != 1 || tags[0] != "single" {
		t.Errorf("tags = %v, want [single]", res.Value["tags"])
	}
	if res.Value["count"] != float64(42) {
		t.Errorf("count = %v, want 42", res.Value["count"])
	}
	if len(res.Warnings) != 2 {
		t.Errorf("Warnings = %v, want 2 entries", res.Warnings)
	}
}

func TestValidateAndParseMissingRequiredBecomesEmptyString(t *testing.T) {
	res := ValidateAndParse(`{"message":"ok"}`, msgSchema())
	if res.Outcome != Recovered {
		t.Fatalf("Outcome = %v, want Recovered", res.Outcome)
	}
	if res.Value["title"] != "" {
		t.Errorf("title = %v, want empty string", res.Value["title"])
	}
}

func TestValidateAndParseInvalidJSONFails(t *testing.T) {
	res := ValidateAndParse(`not json at all {`, msgSchema())
	if res.Outcome != Failure {
		t.Fatalf("Outcome = %v, want Failure", res.Outcome)
	}
}

func TestValidateAndParseNullBecomesDefault(t *testing.T) {
	res := ValidateAndParse(`{"title":null,"message":"ok"}`, msgSchema())
	if res.Outcome != Recovered {
		t.Fatalf("Outcome = %v, want Recovered", res.Outcome)
	}
	if res.Value["title"] != "" {
		t.Errorf("title = %v, want empty string", res.Value["title"])
	}
}
