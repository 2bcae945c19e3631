// Package mediator provides in-process request dispatch and notification
// fan-out for command/query style applications.
//
// Callers submit typed requests (commands and queries) and typed
// notifications (event facts). The mediator resolves the single handler bound
// to a request's concrete type, or the ordered set of handlers bound to a
// notification's type, and invokes them synchronously. Cross-cutting behavior
// such as validation and dispatch logging is layered on with decorators,
// invisible to both callers and handlers.
//
// # Quick Start
//
// Define a request and its handler:
//
//	type GreetCommand struct {
//	    Name string
//	}
//
//	type GreetResponse struct {
//	    Message string
//	}
//
//	type GreetHandler struct{}
//
//	func (h *GreetHandler) Handle(ctx context.Context, cmd *GreetCommand) (*GreetResponse, error) {
//	    return &GreetResponse{Message: "Hello " + cmd.Name + "!"}, nil
//	}
//
// Register it explicitly, build the catalog, and compose the chain:
//
//	b := mediator.NewBuilder()
//	if err := mediator.RegisterRequestHandler[*GreetCommand, *GreetResponse](b, &GreetHandler{}); err != nil {
//	    return err
//	}
//
//	registry := b.Build()
//	med := mediator.Compose(
//	    mediator.New(registry),
//	    mediator.WithValidation(registry),
//	    mediator.WithLogging(logger),
//	)
//
//	response, err := mediator.Send[*GreetResponse](ctx, med, &GreetCommand{Name: "Ada"})
//
// # Registration Model
//
// There is no scanning and no runtime discovery. Startup code registers every
// binding through the typed Register functions, which capture a strongly
// typed invocation closure per binding. Dispatch is then a single map lookup
// keyed on the request's exact concrete type followed by a direct call.
// A request type has exactly one handler and duplicate registrations are
// rejected; notification types take any number of handlers, invoked in
// registration order.
//
// Handlers can be registered as instances or as factories. A factory runs on
// every dispatch and is the integration point for external dependency
// resolution; a factory error surfaces as ErrHandlerResolutionFailed.
//
// # Error Classes
//
// Dispatch failures are distinguishable with errors.Is and errors.As:
// ErrHandlerNotFound for unbound request types, ErrHandlerResolutionFailed
// for factory failures, and *ValidationError for requests rejected by the
// validation decorator. Errors returned by handlers themselves pass through
// unchanged.
package mediator
