package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"greenbloom/utils"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Use(Visitor(secret, time.Hour))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(VisitorID(c))
	})
	return app
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func visitorCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == utils.VisitorCookie {
			return ck
		}
	}
	return nil
}

func TestVisitorIssuesCookie(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)

	ck := visitorCookie(resp)
	require.NotNil(t, ck)
	assert.True(t, ck.HttpOnly)

	id, err := utils.ParseVisitorToken(secret, ck.Value)
	require.NoError(t, err)
	assert.Equal(t, id, body(t, resp))
}

func TestVisitorReusesCookie(t *testing.T) {
	token, err := utils.GenerateVisitorToken(secret, "known", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: utils.VisitorCookie, Value: token})
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "known", body(t, resp))
	assert.Nil(t, visitorCookie(resp))
}

func TestVisitorAcceptsBearer(t *testing.T) {
	token, err := utils.GenerateVisitorToken(secret, "api-client", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, "api-client", body(t, resp))
}

func TestVisitorReplacesForgedCookie(t *testing.T) {
	forged, err := utils.GenerateVisitorToken("wrong", "intruder", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: utils.VisitorCookie, Value: forged})
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.NotEqual(t, "intruder", body(t, resp))
	assert.NotNil(t, visitorCookie(resp))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	resp, err := newApp().Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/missing", fields["path"])
	assert.EqualValues(t, fiber.StatusNotFound, fields["status"])
}
