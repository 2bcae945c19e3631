package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/greeter-go/internal/mediator"
)

type renameCommand struct {
	From string
	To   string
}

type renameResponse struct {
	Renamed bool
}

type renamedEvent struct {
	To string
}

func TestBuilder_RejectsDuplicateRequestRegistration(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	first := mediator.RequestHandlerFunc[*renameCommand, *renameResponse](func(ctx context.Context, cmd *renameCommand) (*renameResponse, error) {
		return &renameResponse{Renamed: true}, nil
	})
	second := mediator.RequestHandlerFunc[*renameCommand, *renameResponse](func(ctx context.Context, cmd *renameCommand) (*renameResponse, error) {
		return &renameResponse{Renamed: false}, nil
	})
	require.NoError(t, mediator.RegisterRequestHandler[*renameCommand, *renameResponse](b, first))

	// Act
	err := mediator.RegisterRequestHandler[*renameCommand, *renameResponse](b, second)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, mediator.ErrDuplicateHandler)
	assert.Contains(t, err.Error(), "renameCommand")

	// The first registration stays bound
	med := mediator.New(b.Build())
	result, sendErr := med.Send(context.Background(), &renameCommand{From: "a", To: "b"})
	require.NoError(t, sendErr)
	assert.True(t, result.(*renameResponse).Renamed)
}

func TestBuilder_VoidAndResultBindingsShareTheCatalog(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	void := mediator.VoidHandlerFunc[*renameCommand](func(ctx context.Context, cmd *renameCommand) error {
		return nil
	})
	require.NoError(t, mediator.RegisterVoidHandler[*renameCommand](b, void))

	result := mediator.RequestHandlerFunc[*renameCommand, *renameResponse](func(ctx context.Context, cmd *renameCommand) (*renameResponse, error) {
		return nil, nil
	})

	// Act
	err := mediator.RegisterRequestHandler[*renameCommand, *renameResponse](b, result)

	// Assert
	assert.ErrorIs(t, err, mediator.ErrDuplicateHandler)
}

func TestBuilder_RejectsNilRegistrations(t *testing.T) {
	b := mediator.NewBuilder()

	assert.Error(t, mediator.RegisterRequestHandler[*renameCommand, *renameResponse](b, nil))
	assert.Error(t, mediator.RegisterRequestHandlerFactory[*renameCommand, *renameResponse](b, nil))
	assert.Error(t, mediator.RegisterVoidHandler[*renameCommand](b, nil))
	assert.Error(t, mediator.RegisterVoidHandlerFactory[*renameCommand](b, nil))
	assert.Error(t, mediator.RegisterNotificationHandler[*renamedEvent](b, nil))
	assert.Error(t, mediator.RegisterNotificationHandlerFactory[*renamedEvent](b, nil))
	assert.Error(t, mediator.RegisterValidator[*renameCommand](b, nil))
}

func TestBuilder_RejectsInterfaceRequestTypes(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	handler := mediator.RequestHandlerFunc[mediator.Request, mediator.Response](func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, nil
	})

	// Act
	err := mediator.RegisterRequestHandler[mediator.Request, mediator.Response](b, handler)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot register interface type")
}

func TestBuilder_BuildFreezesRegistrations(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	handler := mediator.RequestHandlerFunc[*renameCommand, *renameResponse](func(ctx context.Context, cmd *renameCommand) (*renameResponse, error) {
		return &renameResponse{Renamed: true}, nil
	})
	require.NoError(t, mediator.RegisterRequestHandler[*renameCommand, *renameResponse](b, handler))
	med := mediator.New(b.Build())

	// Act - register another type after the registry was built
	void := mediator.VoidHandlerFunc[*echoCommand](func(ctx context.Context, cmd *echoCommand) error {
		return nil
	})
	require.NoError(t, mediator.RegisterVoidHandler[*echoCommand](b, void))

	// Assert - the earlier build does not see the late registration
	_, err := med.Send(context.Background(), &echoCommand{Value: "late"})
	assert.ErrorIs(t, err, mediator.ErrHandlerNotFound)
}

func TestRegistry_Counts(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	handler := mediator.RequestHandlerFunc[*renameCommand, *renameResponse](func(ctx context.Context, cmd *renameCommand) (*renameResponse, error) {
		return nil, nil
	})
	notif := mediator.NotificationHandlerFunc[*renamedEvent](func(ctx context.Context, event *renamedEvent) error {
		return nil
	})
	require.NoError(t, mediator.RegisterRequestHandler[*renameCommand, *renameResponse](b, handler))
	require.NoError(t, mediator.RegisterNotificationHandler[*renamedEvent](b, notif))
	require.NoError(t, mediator.RegisterNotificationHandler[*renamedEvent](b, notif))

	// Act
	registry := b.Build()

	// Assert
	assert.Equal(t, 1, registry.RequestCount())
	assert.Equal(t, 1, registry.NotificationCount())
}
