package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finbuddy/internal/interfaces"
)

type mockChatSession struct {
	replies  []string
	err      error
	received []string
}

func (m *mockChatSession) Send(ctx context.Context, text string) (string, error) {
	m.received = append(m.received, text)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "ok", nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

type mockGemini struct {
	session  *mockChatSession
	startErr error
	started  int
}

func (m *mockGemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockGemini) StartChat(ctx context.Context) (interfaces.ChatSession, error) {
	m.started++
	if m.startErr != nil {
		return nil, m.startErr
	}
	return m.session, nil
}

func TestStartPrimesPersonaInvisibly(t *testing.T) {
	sess := &mockChatSession{replies: []string{"understood"}}
	svc := NewService(&mockGemini{session: sess})

	welcome, err := svc.Start(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, welcomeMessage, welcome)
	assert.True(t, svc.Active(42))
	// The persona prompt went into the session but is not the welcome text.
	require.Len(t, sess.received, 1)
	assert.Contains(t, sess.received[0], "You are FinBuddy")
}

func TestStartSurvivesPrimingFailure(t *testing.T) {
	sess := &mockChatSession{err: errors.New("transient")}
	svc := NewService(&mockGemini{session: sess})

	welcome, err := svc.Start(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, welcomeMessage, welcome)
	assert.True(t, svc.Active(42))
}

func TestStartReplacesExistingSession(t *testing.T) {
	first := &mockChatSession{replies: []string{"hello one"}}
	gemini := &mockGemini{session: first}
	svc := NewService(gemini)

	_, err := svc.Start(context.Background(), 42)
	require.NoError(t, err)

	second := &mockChatSession{replies: []string{"hello two"}}
	gemini.session = second
	_, err = svc.Start(context.Background(), 42)
	require.NoError(t, err)

	svc.Send(context.Background(), 42, "hi")
	assert.Len(t, second.received, 2, "turn goes to the new session")
	assert.Len(t, first.received, 1, "old session only saw the persona prompt")
}

func TestStartFailure(t *testing.T) {
	svc := NewService(&mockGemini{startErr: errors.New("quota exhausted")})

	_, err := svc.Start(context.Background(), 42)

	require.Error(t, err)
	assert.False(t, svc.Active(42))
}

func TestSendStripsMarkup(t *testing.T) {
	sess := &mockChatSession{replies: []string{"welcome", "SIPs are *great* for `averaging` [costs]"}}
	svc := NewService(&mockGemini{session: sess})
	_, err := svc.Start(context.Background(), 42)
	require.NoError(t, err)

	reply := svc.Send(context.Background(), 42, "what is a SIP?")

	assert.Equal(t, "SIPs are great for averaging costs", reply)
}

func TestSendReturnsApologyOnFailure(t *testing.T) {
	sess := &mockChatSession{replies: []string{"welcome"}}
	svc := NewService(&mockGemini{session: sess})
	_, err := svc.Start(context.Background(), 42)
	require.NoError(t, err)

	sess.err = errors.New("model timeout")
	reply := svc.Send(context.Background(), 42, "hi")

	assert.Equal(t, apologyReply, reply)
	assert.True(t, svc.Active(42), "a failed turn does not close the session")
}

func TestSendWithoutSession(t *testing.T) {
	svc := NewService(&mockGemini{})
	assert.Equal(t, apologyReply, svc.Send(context.Background(), 42, "hello"))
}

func TestEndDiscardsSession(t *testing.T) {
	sess := &mockChatSession{replies: []string{"welcome"}}
	svc := NewService(&mockGemini{session: sess})
	_, err := svc.Start(context.Background(), 42)
	require.NoError(t, err)

	svc.End(42)

	assert.False(t, svc.Active(42))
	assert.Equal(t, apologyReply, svc.Send(context.Background(), 42, "still there?"))

	// Ending twice is harmless.
	svc.End(42)
}
