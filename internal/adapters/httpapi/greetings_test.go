package httpapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/greeter-go/internal/adapters/httpapi"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/queries"
	"github.com/andrescamacho/greeter-go/internal/application/setup"
	"github.com/andrescamacho/greeter-go/internal/domain/shared"
	"github.com/andrescamacho/greeter-go/internal/mediator"
	"github.com/andrescamacho/greeter-go/test/helpers"
)

func newTestApp(t *testing.T) (*fiber.App, *helpers.MockGreetingRepository, *shared.MockClock) {
	t.Helper()

	repo := helpers.NewMockGreetingRepository()
	clock := shared.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	registry := setup.NewHandlerRegistry(repo, clock, nil, mediator.PublishFailFast)

	m, err := registry.CreateConfiguredMediator()
	require.NoError(t, err)

	return httpapi.NewApp(m, nil), repo, clock
}

func perform(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthz(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := perform(t, app, "GET", "/healthz", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGreet_ReturnsCreatedGreeting(t *testing.T) {
	app, repo, _ := newTestApp(t)

	resp := perform(t, app, "POST", "/api/v1/greetings", `{"name":"Ada"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeJSON[struct {
		Status int                    `json:"status"`
		Data   commands.GreetResponse `json:"data"`
	}](t, resp)

	assert.Equal(t, "Hello Ada!", body.Data.Message)
	assert.NotEmpty(t, body.Data.GreetingID)
	assert.Len(t, repo.All(), 1)
}

func TestGreet_EmptyNameReturnsFieldErrors(t *testing.T) {
	app, repo, _ := newTestApp(t)

	resp := perform(t, app, "POST", "/api/v1/greetings", `{"name":""}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeJSON[struct {
		Title  string              `json:"title"`
		Errors map[string][]string `json:"errors"`
	}](t, resp)

	assert.Equal(t, "Validation failed", body.Title)
	assert.Contains(t, body.Errors["name"], "is required")
	assert.Empty(t, repo.All())
}

func TestGreet_ReservedNameReturnsFieldErrors(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := perform(t, app, "POST", "/api/v1/greetings", `{"name":"system"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeJSON[struct {
		Errors map[string][]string `json:"errors"`
	}](t, resp)

	assert.Contains(t, body.Errors["name"], "is reserved")
}

func TestGreet_MalformedBodyReturnsBadRequest(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := perform(t, app, "POST", "/api/v1/greetings", `{not json`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetHistory_ReturnsNewestFirst(t *testing.T) {
	app, _, clock := newTestApp(t)

	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Ada"}`)
	clock.Advance(time.Hour)
	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Grace"}`)

	resp := perform(t, app, "GET", "/api/v1/greetings", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON[struct {
		Data queries.GetHistoryResponse `json:"data"`
	}](t, resp)

	require.Equal(t, 2, body.Data.Total)
	require.Len(t, body.Data.Greetings, 2)
	assert.Equal(t, "Grace", body.Data.Greetings[0].Name)
	assert.Equal(t, "Ada", body.Data.Greetings[1].Name)
}

func TestGetHistory_FiltersByName(t *testing.T) {
	app, _, _ := newTestApp(t)

	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Ada"}`)
	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Grace"}`)

	resp := perform(t, app, "GET", "/api/v1/greetings?name=Ada", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON[struct {
		Data queries.GetHistoryResponse `json:"data"`
	}](t, resp)

	require.Equal(t, 1, body.Data.Total)
	assert.Equal(t, "Ada", body.Data.Greetings[0].Name)
}

func TestGetStats_CountsPerName(t *testing.T) {
	app, _, _ := newTestApp(t)

	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Ada"}`)
	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Ada"}`)
	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Grace"}`)

	resp := perform(t, app, "GET", "/api/v1/greetings/stats", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON[struct {
		Data queries.GetStatsResponse `json:"data"`
	}](t, resp)

	assert.Equal(t, 3, body.Data.Total)
	assert.Equal(t, map[string]int{"Ada": 2, "Grace": 1}, body.Data.ByName)
}

func TestPurgeHistory_DeletesOldGreetings(t *testing.T) {
	app, repo, clock := newTestApp(t)

	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Ada"}`)
	clock.Advance(48 * time.Hour)
	perform(t, app, "POST", "/api/v1/greetings", `{"name":"Bob"}`)

	resp := perform(t, app, "DELETE", "/api/v1/greetings?older_than=24h", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	remaining := repo.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, "Bob", remaining[0].Name())
}

func TestPurgeHistory_MissingOlderThanReturnsBadRequest(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := perform(t, app, "DELETE", "/api/v1/greetings", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPurgeHistory_InvalidDurationReturnsBadRequest(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := perform(t, app, "DELETE", "/api/v1/greetings?older_than=yesterday", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPurgeHistory_NonPositiveDurationReturnsFieldErrors(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := perform(t, app, "DELETE", "/api/v1/greetings?older_than=-5m", "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeJSON[struct {
		Errors map[string][]string `json:"errors"`
	}](t, resp)

	assert.Contains(t, body.Errors["older_than"], "must be a positive duration")
}
