// Package chat orchestrates single conversation turns: append the user
// message, stream the completion to the caller fragment by fragment, and
// commit the assembled assistant message once the stream finishes.
package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"susafchat/internal/llm"
	"susafchat/internal/models"
	"susafchat/internal/session"
)

// Completer is the completion backend capability the relay depends on.
type Completer interface {
	CompleteStream(ctx context.Context, msgs []models.Message, params llm.Params, fn func(fragment string) error) error
}

// Service relays turns between the session store and the completion
// backend.
type Service struct {
	store   *session.Store
	backend Completer
	logger  *zap.Logger
	timeout time.Duration
}

// NewService builds the relay. timeout bounds one whole streamed turn;
// zero disables the bound.
func NewService(store *session.Store, backend Completer, logger *zap.Logger, timeout time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, backend: backend, logger: logger, timeout: timeout}
}

// Stream runs one turn on the given session. Each arriving fragment is
// passed to emit in order; after the stream completes the concatenation
// is committed as a single assistant message. A failed stream commits
// nothing, but fragments already emitted are not retracted.
func (s *Service) Stream(ctx context.Context, sessionID, message string, emit func(fragment string) error) error {
	release, err := s.store.BeginTurn(sessionID)
	if err != nil {
		return err
	}
	defer release()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// The user message is visible to any read before the stream begins.
	if err := s.store.AppendUser(sessionID, message); err != nil {
		return err
	}
	history, err := s.store.History(sessionID)
	if err != nil {
		return err
	}

	var full strings.Builder
	err = s.backend.CompleteStream(ctx, history, llm.DefaultParams, func(fragment string) error {
		if err := emit(fragment); err != nil {
			return err
		}
		full.WriteString(fragment)
		return nil
	})
	if err != nil {
		s.logger.Warn("completion stream failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return err
	}

	if err := s.store.AppendAssistant(sessionID, full.String()); err != nil {
		return err
	}
	s.logger.Info("turn committed",
		zap.String("session_id", sessionID),
		zap.Int("history_len", len(history)+1))
	return nil
}
