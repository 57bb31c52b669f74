package backlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"susafchat/internal/llm"
	"susafchat/internal/models"
)

type fakeBackend struct {
	completion string
	err        error

	calls    int
	lastMsgs []models.Message
}

func (f *fakeBackend) Complete(ctx context.Context, msgs []models.Message, params llm.Params) (string, error) {
	f.calls++
	f.lastMsgs = msgs
	return f.completion, f.err
}

const susafDoc = `{"project_name":"X","synthesis":{"link-1":{"recommendation":{"opportunities":{"o1":"accessibility"}}}}}`

const oneItem = `{"title":"Implement Accessibility Features","description":"Make X usable by everyone.","type":"positive","impact":["social"],"priority":"High","status":"To Do"}`

func generate(t *testing.T, backend *fakeBackend) ([]models.BacklogItem, error) {
	t.Helper()
	svc := NewService(backend, nil)
	return svc.Generate(context.Background(), json.RawMessage(susafDoc))
}

func TestGenerateConformingResponse(t *testing.T) {
	backend := &fakeBackend{completion: oneItem + "]"}
	items, err := generate(t, backend)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Status != models.StatusToDo {
		t.Fatalf("expected status %q, got %q", models.StatusToDo, item.Status)
	}
	if item.Metrics == nil || len(item.Metrics) != 0 {
		t.Fatalf("expected empty metrics list, got %#v", item.Metrics)
	}
	if len(item.Impact) == 0 {
		t.Fatalf("expected non-empty impact set")
	}
}

func TestGenerateSeedsAssistantBracket(t *testing.T) {
	backend := &fakeBackend{completion: oneItem + "]"}
	if _, err := generate(t, backend); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(backend.lastMsgs) != 3 {
		t.Fatalf("expected 3 seeded messages, got %d", len(backend.lastMsgs))
	}
	if backend.lastMsgs[0].Role != models.RoleSystem {
		t.Fatalf("first seeded message must be the system prompt")
	}
	if backend.lastMsgs[1].Role != models.RoleUser || backend.lastMsgs[1].Content != susafDoc {
		t.Fatalf("document not forwarded verbatim: %+v", backend.lastMsgs[1])
	}
	if backend.lastMsgs[2].Role != models.RoleAssistant || backend.lastMsgs[2].Content != "[" {
		t.Fatalf("assistant turn must be pre-seeded with the opening bracket: %+v", backend.lastMsgs[2])
	}
}

func TestGenerateRepairsMarkdownFences(t *testing.T) {
	backend := &fakeBackend{completion: "```json\n[" + oneItem + "]\n```"}
	items, err := generate(t, backend)
	if err != nil {
		t.Fatalf("generate with fenced completion: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestGenerateRepairsTrailingComma(t *testing.T) {
	backend := &fakeBackend{completion: oneItem + ",]"}
	items, err := generate(t, backend)
	if err != nil {
		t.Fatalf("generate with trailing comma: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestGenerateRepairsMissingClosingBracket(t *testing.T) {
	backend := &fakeBackend{completion: oneItem}
	items, err := generate(t, backend)
	if err != nil {
		t.Fatalf("generate with truncated completion: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestGenerateRejectsUnparseableCompletion(t *testing.T) {
	backend := &fakeBackend{completion: "I am sorry, I cannot help with that."}
	_, err := generate(t, backend)
	var transformErr *TransformError
	if !errors.As(err, &transformErr) {
		t.Fatalf("expected *TransformError, got %v", err)
	}
}

func TestGenerateAllOrNothingValidation(t *testing.T) {
	badItem := `{"title":"No impact","description":"d","type":"negative","impact":[],"priority":"Low","status":"To Do"}`
	backend := &fakeBackend{completion: oneItem + "," + badItem + "]"}
	items, err := generate(t, backend)
	var transformErr *TransformError
	if !errors.As(err, &transformErr) {
		t.Fatalf("expected *TransformError for invalid element, got %v", err)
	}
	if items != nil {
		t.Fatalf("partial backlog must never be returned, got %#v", items)
	}
}

func TestGenerateRejectsUnknownEnumValues(t *testing.T) {
	cases := map[string]string{
		"type":     `{"title":"t","description":"d","type":"neutral","impact":["social"],"priority":"High","status":"To Do"}`,
		"priority": `{"title":"t","description":"d","type":"positive","impact":["social"],"priority":"Urgent","status":"To Do"}`,
		"impact":   `{"title":"t","description":"d","type":"positive","impact":["cosmic"],"priority":"High","status":"To Do"}`,
	}
	for name, item := range cases {
		backend := &fakeBackend{completion: item + "]"}
		if _, err := generate(t, backend); err == nil {
			t.Fatalf("expected validation failure for bad %s", name)
		}
	}
}

func TestGenerateBackendErrorPassesThrough(t *testing.T) {
	wantErr := errors.New("backend down")
	backend := &fakeBackend{err: wantErr}
	_, err := generate(t, backend)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error to surface, got %v", err)
	}
	var transformErr *TransformError
	if errors.As(err, &transformErr) {
		t.Fatalf("backend failure must not be reported as a transform failure")
	}
}

func TestRepairArray(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "[```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"trailing comma", `[{"a":1},]`, `[{"a":1}]`},
		{"missing bracket", `[{"a":1}`, `[{"a":1}]`},
		{"clean", `[{"a":1}]`, `[{"a":1}]`},
	}
	for _, tc := range cases {
		if got := repairArray(tc.in); got != tc.want {
			t.Fatalf("%s: repairArray(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}
