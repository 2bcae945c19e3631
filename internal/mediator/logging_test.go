package mediator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/greeter-go/internal/mediator"
)

type logRecord struct {
	level   string
	message string
	fields  map[string]interface{}
}

// recordingLogger captures log records for assertions
type recordingLogger struct {
	mu      sync.Mutex
	records []logRecord
}

func (l *recordingLogger) Log(level, message string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, logRecord{level: level, message: message, fields: fields})
}

func (l *recordingLogger) Records() []logRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logRecord{}, l.records...)
}

func newLoggedMediator(t *testing.T, logger mediator.Logger, handlerErr error) mediator.Mediator {
	t.Helper()

	b := mediator.NewBuilder()
	handler := mediator.RequestHandlerFunc[*echoCommand, *echoResponse](func(ctx context.Context, cmd *echoCommand) (*echoResponse, error) {
		if handlerErr != nil {
			return nil, handlerErr
		}
		return &echoResponse{Echo: cmd.Value}, nil
	})
	require.NoError(t, mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, handler))

	return mediator.Compose(mediator.New(b.Build()), mediator.WithLogging(logger))
}

func TestLogging_EmitsStartAndFinishExactlyOnce(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	med := newLoggedMediator(t, logger, nil)

	// Act
	_, err := med.Send(context.Background(), &echoCommand{Value: "hi"})

	// Assert
	require.NoError(t, err)
	records := logger.Records()
	require.Len(t, records, 2)

	start, finish := records[0], records[1]
	assert.Equal(t, "INFO", start.level)
	assert.Equal(t, "dispatching echoCommand", start.message)
	assert.Equal(t, "echoCommand", start.fields["request_type"])
	assert.NotEmpty(t, start.fields["dispatch_id"])

	assert.Equal(t, "INFO", finish.level)
	assert.Equal(t, "echoCommand completed", finish.message)
	assert.Contains(t, finish.fields, "duration_ms")
	assert.Equal(t, start.fields["dispatch_id"], finish.fields["dispatch_id"])
}

func TestLogging_EmitsFinishOnFailure(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	handlerErr := errors.New("greeting store rejected the write")
	med := newLoggedMediator(t, logger, handlerErr)

	// Act
	_, err := med.Send(context.Background(), &echoCommand{Value: "hi"})

	// Assert - the error is untouched and still logged with its duration
	require.Error(t, err)
	assert.Equal(t, handlerErr, err)

	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "ERROR", records[1].level)
	assert.Equal(t, "echoCommand failed", records[1].message)
	assert.Contains(t, records[1].fields, "duration_ms")
	assert.Equal(t, handlerErr.Error(), records[1].fields["error"])
}

func TestLogging_FailedLookupIsStillLogged(t *testing.T) {
	// Arrange - nothing registered, so the inner dispatcher fails
	logger := &recordingLogger{}
	med := mediator.Compose(mediator.New(mediator.NewBuilder().Build()), mediator.WithLogging(logger))

	// Act
	_, err := med.Send(context.Background(), &echoCommand{Value: "nobody home"})

	// Assert
	assert.ErrorIs(t, err, mediator.ErrHandlerNotFound)
	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "ERROR", records[1].level)
}

func TestLogging_SendVoidEmitsStartAndFinish(t *testing.T) {
	// Arrange
	logger := &recordingLogger{}
	b := mediator.NewBuilder()
	void := mediator.VoidHandlerFunc[*auditCommand](func(ctx context.Context, cmd *auditCommand) error {
		return nil
	})
	require.NoError(t, mediator.RegisterVoidHandler[*auditCommand](b, void))
	med := mediator.Compose(mediator.New(b.Build()), mediator.WithLogging(logger))

	// Act
	err := med.SendVoid(context.Background(), &auditCommand{Actor: "ada"})

	// Assert
	require.NoError(t, err)
	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "dispatching auditCommand", records[0].message)
	assert.Equal(t, "auditCommand completed", records[1].message)
}

func TestLogging_NilLoggerFallsBackToNop(t *testing.T) {
	// Arrange
	med := newLoggedMediator(t, nil, nil)

	// Act
	result, err := med.Send(context.Background(), &echoCommand{Value: "quiet"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "quiet", result.(*echoResponse).Echo)
}
