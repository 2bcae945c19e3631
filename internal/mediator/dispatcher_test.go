package mediator_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/greeter-go/internal/mediator"
)

type echoCommand struct {
	Value string
}

type echoResponse struct {
	Echo string
}

type echoHandler struct {
	calls int
}

func (h *echoHandler) Handle(ctx context.Context, cmd *echoCommand) (*echoResponse, error) {
	h.calls++
	return &echoResponse{Echo: cmd.Value}, nil
}

type auditCommand struct {
	Actor string
}

type auditHandler struct {
	calls int
	last  string
}

func (h *auditHandler) Handle(ctx context.Context, cmd *auditCommand) error {
	h.calls++
	h.last = cmd.Actor
	return nil
}

func TestDispatcher_SendInvokesHandlerExactlyOnce(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	handler := &echoHandler{}
	require.NoError(t, mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, handler))
	med := mediator.New(b.Build())

	// Act
	result, err := med.Send(context.Background(), &echoCommand{Value: "hello"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, handler.calls)
	response, ok := result.(*echoResponse)
	require.True(t, ok)
	assert.Equal(t, "hello", response.Echo)
}

func TestDispatcher_SendUnregisteredTypeFailsDeterministically(t *testing.T) {
	// Arrange
	med := mediator.New(mediator.NewBuilder().Build())

	// Act
	_, firstErr := med.Send(context.Background(), &echoCommand{Value: "a"})
	_, secondErr := med.Send(context.Background(), &echoCommand{Value: "b"})

	// Assert
	require.Error(t, firstErr)
	require.Error(t, secondErr)
	assert.ErrorIs(t, firstErr, mediator.ErrHandlerNotFound)
	assert.ErrorIs(t, secondErr, mediator.ErrHandlerNotFound)
	assert.Contains(t, firstErr.Error(), "echoCommand")
}

func TestDispatcher_SendNilRequest(t *testing.T) {
	// Arrange
	med := mediator.New(mediator.NewBuilder().Build())

	// Act
	_, err := med.Send(context.Background(), nil)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "request cannot be nil")
}

func TestDispatcher_FactoryResolvesHandlerPerDispatch(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	factoryCalls := 0
	err := mediator.RegisterRequestHandlerFactory(b, func() (mediator.RequestHandler[*echoCommand, *echoResponse], error) {
		factoryCalls++
		return &echoHandler{}, nil
	})
	require.NoError(t, err)
	med := mediator.New(b.Build())

	// Act
	_, err1 := med.Send(context.Background(), &echoCommand{Value: "one"})
	_, err2 := med.Send(context.Background(), &echoCommand{Value: "two"})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 2, factoryCalls)
}

func TestDispatcher_FactoryFailureSurfacesAsResolutionError(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	cause := errors.New("container not ready")
	err := mediator.RegisterRequestHandlerFactory(b, func() (mediator.RequestHandler[*echoCommand, *echoResponse], error) {
		return nil, cause
	})
	require.NoError(t, err)
	med := mediator.New(b.Build())

	// Act
	_, sendErr := med.Send(context.Background(), &echoCommand{Value: "x"})

	// Assert
	require.Error(t, sendErr)
	assert.ErrorIs(t, sendErr, mediator.ErrHandlerResolutionFailed)
	assert.ErrorIs(t, sendErr, cause)
	assert.NotErrorIs(t, sendErr, mediator.ErrHandlerNotFound)
}

func TestDispatcher_HandlerErrorPassesThroughUnchanged(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	domainErr := errors.New("balance too low")
	handler := mediator.RequestHandlerFunc[*echoCommand, *echoResponse](func(ctx context.Context, cmd *echoCommand) (*echoResponse, error) {
		return nil, domainErr
	})
	require.NoError(t, mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, handler))
	med := mediator.New(b.Build())

	// Act
	_, err := med.Send(context.Background(), &echoCommand{Value: "x"})

	// Assert
	require.Error(t, err)
	assert.Equal(t, domainErr, err)
	assert.NotErrorIs(t, err, mediator.ErrHandlerResolutionFailed)
}

func TestDispatcher_SendVoidDispatchesVoidHandler(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	handler := &auditHandler{}
	require.NoError(t, mediator.RegisterVoidHandler[*auditCommand](b, handler))
	med := mediator.New(b.Build())

	// Act
	err := med.SendVoid(context.Background(), &auditCommand{Actor: "ada"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, handler.calls)
	assert.Equal(t, "ada", handler.last)
}

func TestDispatcher_SendVoidOnResultBindingDiscardsResult(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	handler := &echoHandler{}
	require.NoError(t, mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, handler))
	med := mediator.New(b.Build())

	// Act
	err := med.SendVoid(context.Background(), &echoCommand{Value: "discarded"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, handler.calls)
}

func TestDispatcher_SendOnVoidBindingReturnsNilResponse(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterVoidHandler[*auditCommand](b, &auditHandler{}))
	med := mediator.New(b.Build())

	// Act
	result, err := med.Send(context.Background(), &auditCommand{Actor: "ada"})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestSend_AssertsResponseType(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, &echoHandler{}))
	med := mediator.New(b.Build())

	// Act
	response, err := mediator.Send[*echoResponse](context.Background(), med, &echoCommand{Value: "typed"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "typed", response.Echo)
}

func TestSend_ReportsResponseTypeMismatch(t *testing.T) {
	// Arrange
	b := mediator.NewBuilder()
	require.NoError(t, mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, &echoHandler{}))
	med := mediator.New(b.Build())

	// Act
	_, err := mediator.Send[*auditCommand](context.Background(), med, &echoCommand{Value: "typed"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response type")
}

func TestRequestName(t *testing.T) {
	tests := []struct {
		name     string
		request  interface{}
		expected string
	}{
		{"pointer request", &echoCommand{}, "echoCommand"},
		{"value request", echoCommand{}, "echoCommand"},
		{"nil request", nil, "UnknownRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mediator.RequestName(tt.request))
		})
	}
}

func ExampleSend() {
	b := mediator.NewBuilder()
	handler := mediator.RequestHandlerFunc[*echoCommand, *echoResponse](func(ctx context.Context, cmd *echoCommand) (*echoResponse, error) {
		return &echoResponse{Echo: "Hello " + cmd.Value + "!"}, nil
	})
	if err := mediator.RegisterRequestHandler[*echoCommand, *echoResponse](b, handler); err != nil {
		panic(err)
	}

	med := mediator.New(b.Build())
	response, err := mediator.Send[*echoResponse](context.Background(), med, &echoCommand{Value: "Ada"})
	if err != nil {
		panic(err)
	}

	fmt.Println(response.Echo)
	// Output: Hello Ada!
}
