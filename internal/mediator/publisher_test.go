package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/greeter-go/internal/mediator"
)

type orderShippedEvent struct {
	OrderID string
}

// appendingHandler records its label into a shared log so tests can assert
// invocation order across handlers
type appendingHandler struct {
	label string
	log   *[]string
	err   error
}

func (h *appendingHandler) Handle(ctx context.Context, event *orderShippedEvent) error {
	*h.log = append(*h.log, h.label)
	return h.err
}

func TestPublisher_FanOutInRegistrationOrder(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	var log []string
	for _, label := range []string{"first", "second", "third"} {
		handler := &appendingHandler{label: label, log: &log}
		require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, handler))
	}
	med := mediator.New(b.Build())

	// Act
	err := med.Publish(context.Background(), &orderShippedEvent{OrderID: "o-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, log)
}

func TestPublisher_NoHandlersIsNoOp(t *testing.T) {
	// Arrange
	med := mediator.New(mediator.NewBuilder().Build())

	// Act
	err := med.Publish(context.Background(), &orderShippedEvent{OrderID: "o-2"})

	// Assert
	assert.NoError(t, err)
}

func TestPublisher_NilNotification(t *testing.T) {
	med := mediator.New(mediator.NewBuilder().Build())

	err := med.Publish(context.Background(), nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "notification cannot be nil")
}

func TestPublisher_FailFastStopsAtFirstFailure(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	var log []string
	handlerErr := errors.New("projection out of date")
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "first", log: &log}))
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "second", log: &log, err: handlerErr}))
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "third", log: &log}))
	med := mediator.New(b.Build())

	// Act
	err := med.Publish(context.Background(), &orderShippedEvent{OrderID: "o-3"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, handlerErr, err)
	assert.Equal(t, []string{"first", "second"}, log)
}

func TestPublisher_BestEffortRunsAllAndJoinsErrors(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	var log []string
	errSecond := errors.New("second failed")
	errThird := errors.New("third failed")
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "first", log: &log}))
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "second", log: &log, err: errSecond}))
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "third", log: &log, err: errThird}))
	med := mediator.New(b.Build(), mediator.WithPublishStrategy(mediator.PublishBestEffort))

	// Act
	err := med.Publish(context.Background(), &orderShippedEvent{OrderID: "o-4"})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errSecond)
	assert.ErrorIs(t, err, errThird)
	assert.Equal(t, []string{"first", "second", "third"}, log)
}

func TestPublisher_ResolutionFailureCountsAsHandlerFailure(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	var log []string
	cause := errors.New("handler pool exhausted")
	err := mediator.RegisterNotificationHandlerFactory(b, func() (mediator.NotificationHandler[*orderShippedEvent], error) {
		return nil, cause
	})
	require.NoError(t, err)
	require.NoError(t, mediator.RegisterNotificationHandler[*orderShippedEvent](b, &appendingHandler{label: "second", log: &log}))
	med := mediator.New(b.Build())

	// Act
	publishErr := med.Publish(context.Background(), &orderShippedEvent{OrderID: "o-5"})

	// Assert
	require.Error(t, publishErr)
	assert.ErrorIs(t, publishErr, mediator.ErrHandlerResolutionFailed)
	assert.ErrorIs(t, publishErr, cause)
	assert.Empty(t, log, "fail-fast should stop before the second handler")
}

func TestParsePublishStrategy(t *testing.T) {
	tests := []struct {
		value    string
		expected mediator.PublishStrategy
		wantErr  bool
	}{
		{"fail_fast", mediator.PublishFailFast, false},
		{"best_effort", mediator.PublishBestEffort, false},
		{"", mediator.PublishFailFast, false},
		{"retry", mediator.PublishFailFast, true},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			strategy, err := mediator.ParsePublishStrategy(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strategy)
		})
	}
}

func TestPublishStrategy_String(t *testing.T) {
	assert.Equal(t, "fail_fast", mediator.PublishFailFast.String())
	assert.Equal(t, "best_effort", mediator.PublishBestEffort.String())
}
