package greeting

import (
	"context"
	"strings"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// reservedNames are identities the greeter refuses to address
var reservedNames = map[string]struct{}{
	"system":  {},
	"root":    {},
	"null":    {},
	"nobody":  {},
	"unknown": {},
}

// ReservedNameValidator rejects greetings aimed at reserved identities.
// It runs alongside the struct tag validator; failures from both are
// aggregated per field.
type ReservedNameValidator struct{}

// NewReservedNameValidator creates a new ReservedNameValidator
func NewReservedNameValidator() *ReservedNameValidator {
	return &ReservedNameValidator{}
}

// Validate reports a failure when the name is reserved
func (v *ReservedNameValidator) Validate(ctx context.Context, cmd *commands.GreetCommand) ([]mediator.FieldFailure, error) {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if _, reserved := reservedNames[name]; reserved {
		return []mediator.FieldFailure{
			{Field: "name", Message: "is reserved"},
		}, nil
	}
	return nil, nil
}

// PurgeHistoryValidator checks purge parameters before they reach the handler
type PurgeHistoryValidator struct{}

// NewPurgeHistoryValidator creates a new PurgeHistoryValidator
func NewPurgeHistoryValidator() *PurgeHistoryValidator {
	return &PurgeHistoryValidator{}
}

// Validate reports a failure when the purge age is not positive
func (v *PurgeHistoryValidator) Validate(ctx context.Context, cmd *commands.PurgeHistoryCommand) ([]mediator.FieldFailure, error) {
	if cmd.OlderThan <= 0 {
		return []mediator.FieldFailure{
			{Field: "older_than", Message: "must be a positive duration"},
		}, nil
	}
	return nil, nil
}
