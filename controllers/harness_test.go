package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/reportsink/reportsink/controllers"
	"github.com/reportsink/reportsink/helpers"
	"github.com/reportsink/reportsink/middlewares"
	"github.com/reportsink/reportsink/models"
	"github.com/reportsink/reportsink/utils"
	"github.com/stretchr/testify/require"
)

// testEnv wires the controllers onto a fiber app backed by in-memory stores
// and an in-memory session store.
type testEnv struct {
	app       *fiber.App
	endpoints *fakeEndpointStore
	reports   *fakeReportStore
	users     *fakeUserStore
}

func newTestEnv(endpoints ...*models.Endpoint) *testEnv {
	endpointStore := newFakeEndpointStore(endpoints...)
	reportStore := &fakeReportStore{}
	userStore := &fakeUserStore{}

	sessions := session.New()

	registry := helpers.NewRegistry(endpointStore)
	normalizer := helpers.NewNormalizer(endpointStore, reportStore)
	queries := helpers.NewQueryService(endpointStore, reportStore)

	reportsCtl := controllers.NewReports(normalizer, registry, queries)
	endpointsCtl := controllers.NewEndpoints(registry)
	authCtl := controllers.NewAuth(userStore, sessions)

	app := fiber.New(fiber.Config{StrictRouting: true})
	protected := middlewares.SessionProtected(sessions)

	api := app.Group("/api")

	api.Post("/report", reportsCtl.PostLegacyReportDefault)
	api.Post("/report/:token", reportsCtl.PostLegacyReport)
	api.Post("/v1/report/:token", reportsCtl.PostReport)
	api.Get("/reports", protected, reportsCtl.GetReports)

	api.Get("/endpoints", protected, endpointsCtl.GetEndpoints)
	api.Post("/endpoints", protected, endpointsCtl.PostEndpoint)
	api.Delete("/endpoints", protected, endpointsCtl.DeleteEndpoint)

	auth := api.Group("/auth")
	auth.Post("/login", authCtl.Login)
	auth.Post("/logout", authCtl.Logout)
	auth.Get("/me", protected, authCtl.Me)

	return &testEnv{
		app:       app,
		endpoints: endpointStore,
		reports:   reportStore,
		users:     userStore,
	}
}

func (e *testEnv) request(t *testing.T, method string, path string, body string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))

	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	req.Header.Set(fiber.HeaderUserAgent, "TestBrowser/1.0")

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))

	return body
}

// signIn seeds an active account, logs it in and returns the session cookies
// for subsequent authenticated requests.
func (e *testEnv) signIn(t *testing.T) []*http.Cookie {
	t.Helper()

	active := true
	user := &models.User{
		Email:    "admin@example.com",
		Password: utils.HashPassword("correct horse battery staple"),
		Active:   &active,
	}
	require.NoError(t, e.users.Create(context.Background(), user))

	resp := e.request(t, fiber.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"correct horse battery staple"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())

	return resp.Cookies()
}
