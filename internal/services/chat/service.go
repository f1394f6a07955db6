// Package chat manages free-form conversation sessions with the model.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/finbuddy/finbuddy/internal/common"
	"github.com/finbuddy/finbuddy/internal/interfaces"
)

// session is one user's open conversation.
type session struct {
	id   string
	chat interfaces.ChatSession
}

// Service keeps at most one live chat session per user. History lives inside
// the model-side session; the service only tracks the handle.
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger

	mu       sync.Mutex
	sessions map[int64]*session
}

// ServiceOption configures the chat service.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the service.
func WithLogger(logger *common.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the chat service.
func NewService(gemini interfaces.GeminiClient, opts ...ServiceOption) *Service {
	s := &Service{
		gemini:   gemini,
		sessions: make(map[int64]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = common.NewSilentLogger()
	}
	return s
}

// Start opens a fresh session for the user, discarding any existing one, and
// returns the fixed welcome message. The persona prompt primes the session
// invisibly; a priming failure is logged but does not block the session,
// since the next turn still reaches the model.
func (s *Service) Start(ctx context.Context, userID int64) (string, error) {
	chat, err := s.gemini.StartChat(ctx)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Chat session open failed")
		return "", err
	}

	if _, err := chat.Send(ctx, personaPrompt); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("Persona priming failed")
	}

	sess := &session{id: uuid.NewString(), chat: chat}
	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	s.logger.Info().Int64("user_id", userID).Str("session_id", sess.id).Msg("Chat session started")
	return welcomeMessage, nil
}

// Send forwards user text into the session and returns the reply as plain
// text. Any failure, including a missing session, yields the fixed apology
// string so the conversation never surfaces raw errors.
func (s *Service) Send(ctx context.Context, userID int64, text string) string {
	s.mu.Lock()
	sess := s.sessions[userID]
	s.mu.Unlock()

	if sess == nil {
		s.logger.Warn().Int64("user_id", userID).Msg("Chat message without an open session")
		return apologyReply
	}

	reply, err := sess.chat.Send(ctx, text)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Str("session_id", sess.id).Msg("Chat turn failed")
		return apologyReply
	}
	return stripMarkup(reply)
}

// Active reports whether the user has an open session.
func (s *Service) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID] != nil
}

// End discards the user's session. Safe to call when none exists.
func (s *Service) End(userID int64) {
	s.mu.Lock()
	sess := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if sess != nil {
		s.logger.Info().Int64("user_id", userID).Str("session_id", sess.id).Msg("Chat session ended")
	}
}

// stripMarkup removes markdown characters the model may emit despite the
// persona instructions. Chat replies are delivered as plain text, so any
// stray marker would render literally.
var markupStripper = strings.NewReplacer(
	"*", "",
	"_", "",
	"`", "",
	"[", "",
	"]", "",
)

func stripMarkup(text string) string {
	return strings.TrimSpace(markupStripper.Replace(text))
}

var _ interfaces.ChatService = (*Service)(nil)
