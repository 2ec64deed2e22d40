package llm

import (
	"errors"
	"testing"
)

func TestExtractContentPartsEnvelope(t *testing.T) {
	raw := []byte(`{
		"output": [
			{"type": "message", "content": [
				{"type": "output_text", "text": "{\"market_price_low\":1}"}
			]}
		]
	}`)

	text, err := ExtractText(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"market_price_low":1}` {
		t.Errorf("wrong text extracted: %q", text)
	}
}

func TestExtractFlatOutputText(t *testing.T) {
	text, err := ExtractText([]byte(`{"output_text": "hello"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Errorf("wrong text: %q", text)
	}
}

func TestExtractChatMessageEnvelope(t *testing.T) {
	raw := []byte(`{"choices": [{"message": {"content": "chat reply"}}]}`)

	text, err := ExtractText(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "chat reply" {
		t.Errorf("wrong text: %q", text)
	}
}

func TestExtractPriorityOrderPrefersContentParts(t *testing.T) {
	raw := []byte(`{
		"output": [{"content": [{"text": "from parts"}]}],
		"output_text": "from flat",
		"choices": [{"message": {"content": "from chat"}}]
	}`)

	text, err := ExtractText(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "from parts" {
		t.Errorf("priority order broken, got %q", text)
	}
}

func TestExtractEmptyEnvelope(t *testing.T) {
	_, err := ExtractText([]byte(`{"output": []}`))
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestExtractInvalidJSONEnvelope(t *testing.T) {
	if _, err := ExtractText([]byte(`not json at all`)); err == nil {
		t.Fatal("expected error for non-JSON envelope")
	}
}
