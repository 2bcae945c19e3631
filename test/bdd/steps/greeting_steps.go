package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
	"gorm.io/gorm"

	"github.com/andrescamacho/greeter-go/internal/adapters/persistence"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/queries"
	"github.com/andrescamacho/greeter-go/internal/application/setup"
	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
	"github.com/andrescamacho/greeter-go/internal/domain/shared"
	"github.com/andrescamacho/greeter-go/internal/mediator"
	"github.com/andrescamacho/greeter-go/test/helpers"
)

// unregisteredProbe is a request type nothing is ever bound to
type unregisteredProbe struct{}

type greetingContext struct {
	// REAL dependencies over the shared test database
	db   *gorm.DB
	repo *persistence.GormGreetingRepository

	// Mock clock so scenarios control time
	clock *shared.MockClock

	// Full dispatch pipeline under test
	m mediator.Mediator

	// Response/Error tracking
	greetResponse   *commands.GreetResponse
	historyResponse *queries.GetHistoryResponse
	statsResponse   *queries.GetStatsResponse
	err             error
}

func (ctx *greetingContext) reset() {
	ctx.greetResponse = nil
	ctx.historyResponse = nil
	ctx.statsResponse = nil
	ctx.err = nil

	// Truncate all tables for test isolation
	if err := helpers.TruncateAllTables(); err != nil {
		panic(fmt.Errorf("failed to truncate tables: %w", err))
	}

	ctx.db = helpers.SharedTestDB
	ctx.repo = persistence.NewGormGreetingRepository(helpers.SharedTestDB)

	// Mock clock starting at fixed time (can be overridden in Given steps)
	ctx.clock = shared.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	registry := setup.NewHandlerRegistry(ctx.repo, ctx.clock, nil, mediator.PublishFailFast)
	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		panic(fmt.Errorf("failed to configure mediator: %w", err))
	}
	ctx.m = m
}

// Given steps

func (ctx *greetingContext) theCurrentTimeIs(timeStr string) error {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return fmt.Errorf("invalid time format: %w", err)
	}
	ctx.clock.SetTime(t)
	return nil
}

func (ctx *greetingContext) hoursPass(hours int) error {
	ctx.clock.Advance(time.Duration(hours) * time.Hour)
	return nil
}

func (ctx *greetingContext) theFollowingGreetingsWereRecorded(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and at least one greeting row")
	}

	// Seed history directly through the repository, bypassing the dispatch
	// pipeline, so scenarios can start from pre-existing state
	for _, row := range table.Rows[1:] {
		name := getCellValue(table, row, "name")
		message := getCellValue(table, row, "message")
		if message == "" {
			message = fmt.Sprintf("Hello %s!", name)
		}

		recordedAt, err := time.Parse(time.RFC3339, getCellValue(table, row, "recorded_at"))
		if err != nil {
			return fmt.Errorf("invalid recorded_at in table: %w", err)
		}

		g := greeting.ReconstructGreeting(greeting.NewGreetingID(), name, message, recordedAt)
		if err := ctx.repo.Create(context.Background(), g); err != nil {
			return fmt.Errorf("failed to seed greeting for %s: %w", name, err)
		}
	}

	return nil
}

// When steps

func (ctx *greetingContext) iGreet(name string) error {
	response, err := mediator.Send[*commands.GreetResponse](context.Background(), ctx.m, &commands.GreetCommand{Name: name})

	// Store response and error for Then steps
	ctx.err = err
	ctx.greetResponse = response

	return nil
}

func (ctx *greetingContext) iGreetAnEmptyName() error {
	return ctx.iGreet("")
}

func (ctx *greetingContext) iRequestTheGreetingHistory() error {
	response, err := mediator.Send[*queries.GetHistoryResponse](context.Background(), ctx.m, &queries.GetHistoryQuery{})

	ctx.err = err
	ctx.historyResponse = response

	return nil
}

func (ctx *greetingContext) iRequestGreetingHistoryFor(name string) error {
	response, err := mediator.Send[*queries.GetHistoryResponse](context.Background(), ctx.m, &queries.GetHistoryQuery{Name: &name})

	ctx.err = err
	ctx.historyResponse = response

	return nil
}

func (ctx *greetingContext) iRequestGreetingStatistics() error {
	response, err := mediator.Send[*queries.GetStatsResponse](context.Background(), ctx.m, &queries.GetStatsQuery{})

	ctx.err = err
	ctx.statsResponse = response

	return nil
}

func (ctx *greetingContext) iPurgeGreetingsOlderThan(age string) error {
	olderThan, err := time.ParseDuration(age)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	ctx.err = ctx.m.SendVoid(context.Background(), &commands.PurgeHistoryCommand{OlderThan: olderThan})

	return nil
}

func (ctx *greetingContext) iDispatchAnUnregisteredRequestType() error {
	_, err := ctx.m.Send(context.Background(), &unregisteredProbe{})
	ctx.err = err
	return nil
}

// Then steps

func (ctx *greetingContext) theGreetingShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected success but got error: %v", ctx.err)
	}
	if ctx.greetResponse == nil {
		return fmt.Errorf("expected response but got nil")
	}
	return nil
}

func (ctx *greetingContext) theGreetingMessageShouldBe(expected string) error {
	if ctx.greetResponse == nil {
		return fmt.Errorf("no greeting response available")
	}
	if ctx.greetResponse.Message != expected {
		return fmt.Errorf("expected message %q but got %q", expected, ctx.greetResponse.Message)
	}
	return nil
}

func (ctx *greetingContext) shouldFailWithValidationErrorOnField(field string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected a validation error but the dispatch succeeded")
	}

	var validationErr *mediator.ValidationError
	if !errors.As(ctx.err, &validationErr) {
		return fmt.Errorf("expected a validation error but got: %v", ctx.err)
	}

	for _, f := range validationErr.Fields() {
		if f == field {
			return nil
		}
	}
	return fmt.Errorf("expected a failure on field %q but got fields %v", field, validationErr.Fields())
}

func (ctx *greetingContext) theValidationMessageForShouldBe(field, message string) error {
	var validationErr *mediator.ValidationError
	if !errors.As(ctx.err, &validationErr) {
		return fmt.Errorf("expected a validation error but got: %v", ctx.err)
	}

	for _, m := range validationErr.Messages(field) {
		if m == message {
			return nil
		}
	}
	return fmt.Errorf("expected message %q for field %q but got %v", message, field, validationErr.Messages(field))
}

func (ctx *greetingContext) theDispatchShouldFailWith(expectedError string) error {
	if ctx.err == nil {
		return fmt.Errorf("expected error containing %q but dispatch succeeded", expectedError)
	}

	errMsg := strings.ToLower(ctx.err.Error())
	expectedLower := strings.ToLower(expectedError)

	if !strings.Contains(errMsg, expectedLower) {
		return fmt.Errorf("expected error containing %q but got %q", expectedError, ctx.err)
	}
	return nil
}

func (ctx *greetingContext) theHistoryShouldContainGreetings(count int) error {
	if ctx.historyResponse == nil {
		return fmt.Errorf("no history response available")
	}
	if ctx.historyResponse.Total != count {
		return fmt.Errorf("expected %d greetings but got %d", count, ctx.historyResponse.Total)
	}
	return nil
}

func (ctx *greetingContext) theMostRecentGreetingShouldBeFor(name string) error {
	if ctx.historyResponse == nil {
		return fmt.Errorf("no history response available")
	}
	if len(ctx.historyResponse.Greetings) == 0 {
		return fmt.Errorf("history is empty")
	}
	if got := ctx.historyResponse.Greetings[0].Name; got != name {
		return fmt.Errorf("expected most recent greeting for %q but got %q", name, got)
	}
	return nil
}

func (ctx *greetingContext) theStatisticsShouldShowGreetingsInTotal(count int) error {
	if ctx.statsResponse == nil {
		return fmt.Errorf("no stats response available")
	}
	if ctx.statsResponse.Total != count {
		return fmt.Errorf("expected %d greetings in total but got %d", count, ctx.statsResponse.Total)
	}
	return nil
}

func (ctx *greetingContext) theStatisticsShouldShowGreetingsFor(count int, name string) error {
	if ctx.statsResponse == nil {
		return fmt.Errorf("no stats response available")
	}
	if got := ctx.statsResponse.ByName[name]; got != count {
		return fmt.Errorf("expected %d greetings for %q but got %d", count, name, got)
	}
	return nil
}

// getCellValue gets a cell value from a table row by column name
// It uses the first row (table.Rows[0]) as the header to find the column index
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

// Register steps

func InitializeGreetingScenario(ctx *godog.ScenarioContext) {
	greetingCtx := &greetingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		greetingCtx.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^the current time is "([^"]*)"$`, greetingCtx.theCurrentTimeIs)
	ctx.Step(`^(\d+) hours? pass$`, greetingCtx.hoursPass)
	ctx.Step(`^the following greetings were recorded:$`, greetingCtx.theFollowingGreetingsWereRecorded)

	// When
	ctx.Step(`^I greet "([^"]*)"$`, greetingCtx.iGreet)
	ctx.Step(`^I greet an empty name$`, greetingCtx.iGreetAnEmptyName)
	ctx.Step(`^I request the greeting history$`, greetingCtx.iRequestTheGreetingHistory)
	ctx.Step(`^I request greeting history for "([^"]*)"$`, greetingCtx.iRequestGreetingHistoryFor)
	ctx.Step(`^I request greeting statistics$`, greetingCtx.iRequestGreetingStatistics)
	ctx.Step(`^I purge greetings older than "([^"]*)"$`, greetingCtx.iPurgeGreetingsOlderThan)
	ctx.Step(`^I dispatch an unregistered request type$`, greetingCtx.iDispatchAnUnregisteredRequestType)

	// Then
	ctx.Step(`^the greeting should succeed$`, greetingCtx.theGreetingShouldSucceed)
	ctx.Step(`^the greeting message should be "([^"]*)"$`, greetingCtx.theGreetingMessageShouldBe)
	ctx.Step(`^the greeting should fail with a validation error on field "([^"]*)"$`, greetingCtx.shouldFailWithValidationErrorOnField)
	ctx.Step(`^the purge should fail with a validation error on field "([^"]*)"$`, greetingCtx.shouldFailWithValidationErrorOnField)
	ctx.Step(`^the validation message for "([^"]*)" should be "([^"]*)"$`, greetingCtx.theValidationMessageForShouldBe)
	ctx.Step(`^the dispatch should fail with "([^"]*)"$`, greetingCtx.theDispatchShouldFailWith)
	ctx.Step(`^the history should contain (\d+) greetings?$`, greetingCtx.theHistoryShouldContainGreetings)
	ctx.Step(`^the most recent greeting should be for "([^"]*)"$`, greetingCtx.theMostRecentGreetingShouldBeFor)
	ctx.Step(`^the statistics should show (\d+) greetings? in total$`, greetingCtx.theStatisticsShouldShowGreetingsInTotal)
	ctx.Step(`^the statistics should show (\d+) greetings? for "([^"]*)"$`, greetingCtx.theStatisticsShouldShowGreetingsFor)
}
