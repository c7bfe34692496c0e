package query

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, body string) int {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app)

	req := httptest.NewRequest("POST", "/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, "not json"))
}

func TestHandleQuery_MissingPaperID(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, `{"question": "What is X?"}`))
}

func TestHandleQuery_MissingQuestion(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, `{"paper_id": 1}`))
}
