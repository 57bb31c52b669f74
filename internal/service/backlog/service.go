// Package backlog turns a SuSAF sustainability-analysis document into a
// normalized backlog-item list by delegating the transformation to the
// completion backend and coercing the untrusted reply into the contract.
package backlog

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"susafchat/internal/llm"
	"susafchat/internal/models"
)

// TransformError reports a completion that could not be coerced into a
// valid backlog array. The response is all-or-nothing: a partial backlog
// is never returned.
type TransformError struct {
	Err error
}

func (e *TransformError) Error() string { return e.Err.Error() }

func (e *TransformError) Unwrap() error { return e.Err }

// Completer is the one-shot completion capability the transformer uses.
type Completer interface {
	Complete(ctx context.Context, msgs []models.Message, params llm.Params) (string, error)
}

// Service is the stateless backlog transformer. It touches no session
// state.
type Service struct {
	backend Completer
	logger  *zap.Logger
}

// NewService builds the transformer.
func NewService(backend Completer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{backend: backend, logger: logger}
}

// Generate issues one completion seeded with the serialized document and
// an assistant turn opened with "[", biasing the model toward a bare JSON
// array, then parses and validates the result. Every element gets
// status "To Do" and an empty metrics list.
func (s *Service) Generate(ctx context.Context, document json.RawMessage) ([]models.BacklogItem, error) {
	msgs := []models.Message{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: string(document)},
		{Role: models.RoleAssistant, Content: "["},
	}
	completion, err := s.backend.Complete(ctx, msgs, llm.DefaultParams)
	if err != nil {
		return nil, err
	}

	items, err := parseItems("[" + completion)
	if err != nil {
		s.logger.Warn("backlog completion not parseable", zap.Error(err))
		return nil, &TransformError{Err: err}
	}
	for i := range items {
		if err := validateItem(i, items[i]); err != nil {
			return nil, &TransformError{Err: err}
		}
		items[i].Status = models.StatusToDo
		items[i].Metrics = []string{}
	}
	if items == nil {
		items = []models.BacklogItem{}
	}
	return items, nil
}

var validImpacts = map[models.Impact]bool{
	models.ImpactSocial:        true,
	models.ImpactEconomic:      true,
	models.ImpactEnvironmental: true,
	models.ImpactIndividual:    true,
	models.ImpactTechnical:     true,
}

// validateItem enforces the backlog-item contract. One failing element
// invalidates the whole response.
func validateItem(i int, item models.BacklogItem) error {
	if item.Title == "" {
		return fmt.Errorf("item %d: title is required", i)
	}
	if item.Type != models.ItemPositive && item.Type != models.ItemNegative {
		return fmt.Errorf("item %d: invalid type %q", i, item.Type)
	}
	switch item.Priority {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
	default:
		return fmt.Errorf("item %d: invalid priority %q", i, item.Priority)
	}
	if len(item.Impact) == 0 {
		return fmt.Errorf("item %d: impact cannot be empty", i)
	}
	for _, imp := range item.Impact {
		if !validImpacts[imp] {
			return fmt.Errorf("item %d: invalid impact %q", i, imp)
		}
	}
	return nil
}
