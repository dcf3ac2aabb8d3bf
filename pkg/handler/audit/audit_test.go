package audit

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vagnerwentz/bankapi/pkg/domain/events"
)

type otherEvent struct{}

func (otherEvent) Type() string { return "other" }

func TestHandleTransactionRecorded(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := HandleTransactionRecorded(logger)

	src, dst := int64(1001), int64(1002)
	id := uuid.New()
	err := handler(context.Background(), &events.TransactionRecorded{
		TransactionID:  id,
		Kind:           "TRANSFER",
		Amount:         150,
		SourceNumber:   &src,
		ReceiverNumber: &dst,
		OccurredAt:     time.Now(),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"transaction recorded"`)
	assert.Contains(t, out, id.String())
	assert.Contains(t, out, `"source":1001`)
	assert.Contains(t, out, `"receiver":1002`)
}

func TestHandleTransactionRecorded_ValueEventWithoutSource(t *testing.T) {
	var buf bytes.Buffer
	handler := HandleTransactionRecorded(slog.New(slog.NewJSONHandler(&buf, nil)))

	dst := int64(7)
	err := handler(context.Background(), events.TransactionRecorded{Kind: "DEPOSIT", Amount: 10, ReceiverNumber: &dst})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), `"source"`)
	assert.Contains(t, buf.String(), `"receiver":7`)
}

func TestHandleTransactionRecorded_RejectsOtherEvents(t *testing.T) {
	var buf bytes.Buffer
	handler := HandleTransactionRecorded(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := handler(context.Background(), otherEvent{})
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "unexpected event type")
}
