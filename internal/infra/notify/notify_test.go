//go:build unit

package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"court-reservations/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	keys   []string
	bodies [][]byte
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, b)
	return nil
}

type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sampleReservationEvent() shared.ReservationEvent {
	return shared.ReservationEvent{
		ReservationID: uuid.New(),
		UserID:        uuid.New(),
		Email:         "member@example.com",
		Username:      "member",
		CourtID:       uuid.New(),
		CourtName:     "Court 1",
		LocationName:  "Riverside Club",
		Date:          "2025-03-12",
		StartTime:     "09:00",
		EndTime:       "10:00",
		OccurredAt:    time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}
}

func TestAMQPNotifier_RoutesEvents(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	n := NewAMQPNotifier(pub)

	require.NoError(t, n.ReservationCreated(ctx, sampleReservationEvent()))
	require.NoError(t, n.ReservationCancelled(ctx, sampleReservationEvent()))
	require.NoError(t, n.CodeIssued(ctx, shared.CodeEvent{SubjectID: uuid.New()}))
	require.NoError(t, n.CodeResent(ctx, shared.CodeEvent{SubjectID: uuid.New()}))

	assert.Equal(t, RoutingKeys, pub.keys)
}

func TestHandler_RendersAndSends(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	n := NewAMQPNotifier(pub)
	ev := sampleReservationEvent()
	code := shared.CodeEvent{
		SubjectID: uuid.New(),
		Email:     "new@example.com",
		Code:      "482913",
		ExpiresAt: time.Date(2025, 3, 10, 9, 3, 0, 0, time.UTC),
	}
	require.NoError(t, n.ReservationCreated(ctx, ev))
	require.NoError(t, n.ReservationCancelled(ctx, ev))
	require.NoError(t, n.CodeIssued(ctx, code))
	require.NoError(t, n.CodeResent(ctx, code))

	mailer := &recordingMailer{}
	h := NewHandler(mailer)
	for i, key := range pub.keys {
		require.NoError(t, h.Handle(ctx, key, pub.bodies[i]))
	}

	require.Len(t, mailer.sent, 4)
	assert.Equal(t, SubjectReservationCreated, mailer.sent[0].Subject)
	assert.Equal(t, "member@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "Court 1 (Riverside Club)")
	assert.Contains(t, mailer.sent[0].Body, "09:00 - 10:00")
	assert.Equal(t, SubjectReservationCancelled, mailer.sent[1].Subject)
	assert.Equal(t, SubjectCodeIssued, mailer.sent[2].Subject)
	assert.Contains(t, mailer.sent[2].Body, "482913")
	assert.Equal(t, SubjectCodeResent, mailer.sent[3].Subject)
	assert.Contains(t, mailer.sent[3].Body, "09:03")
}

func TestHandler_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed body is permanent", func(t *testing.T) {
		err := NewHandler(&recordingMailer{}).Handle(ctx, RKReservationCreated, []byte("{"))
		require.Error(t, err)
		assert.True(t, IsPermanent(err))
	})

	t.Run("mailer failure is transient", func(t *testing.T) {
		body, _ := json.Marshal(sampleReservationEvent())
		err := NewHandler(&recordingMailer{err: errors.New("smtp down")}).Handle(ctx, RKReservationCreated, body)
		require.Error(t, err)
		assert.False(t, IsPermanent(err))
	})

	t.Run("unknown key is skipped", func(t *testing.T) {
		mailer := &recordingMailer{}
		require.NoError(t, NewHandler(mailer).Handle(ctx, "payment.paid", []byte("{}")))
		assert.Empty(t, mailer.sent)
	})
}

func TestDecode_WrapsCause(t *testing.T) {
	_, err := decode[shared.ReservationEvent]([]byte("{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode event")

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
