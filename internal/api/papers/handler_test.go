package papers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFile(t *testing.T, filename string, content []byte) int {
	t.Helper()
	app := fiber.New()
	RegisterRoutes(app)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/papers", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestHandleUpload_MissingFile(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, uploadFile(t, "", nil))
}

func TestHandleUpload_RejectsNonPDF(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, uploadFile(t, "notes.txt", []byte("plain text")))
}

func TestHandleUpload_RejectsEmptyFile(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, uploadFile(t, "empty.pdf", nil))
}
