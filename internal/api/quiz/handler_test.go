package quiz

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/quiz/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestHandleGenerate_InvalidBody(t *testing.T) {
	app := newTestApp()
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "{not json"))
}

func TestHandleGenerate_MissingPaperID(t *testing.T) {
	app := newTestApp()
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, `{"kind": "mcq", "count": 5}`))
}

func TestHandleGenerate_UnknownKind(t *testing.T) {
	app := newTestApp()
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, `{"paper_id": 1, "kind": "true_false"}`))
}
