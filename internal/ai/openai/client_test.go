package openai

import "testing"

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", nil); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("sk-test", "  ", nil); err == nil {
		t.Fatal("expected error for missing model")
	}
	c, err := NewClient("sk-test", "gpt-4o-mini", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.model != "gpt-4o-mini" {
		t.Fatalf("unexpected default model %q", c.model)
	}
}
