package mediator

// Decorator wraps a Sender with cross-cutting behavior.
// Decorators see every Send and SendVoid but never the Publish path;
// notification fan-out stays on the base dispatcher.
type Decorator func(next Sender) Sender

// Compose wraps the base mediator's dispatch path with the given decorators.
// The first decorator becomes the outermost layer, so
//
//	Compose(base, WithValidation(reg), WithLogging(logger))
//
// validates before logging and logs before dispatching. Composition happens
// once at build time; the returned Mediator is immutable.
func Compose(base Mediator, decorators ...Decorator) Mediator {
	sender := Sender(base)
	for i := len(decorators) - 1; i >= 0; i-- {
		sender = decorators[i](sender)
	}
	return &composed{Sender: sender, Publisher: base}
}

type composed struct {
	Sender
	Publisher
}
