package ingest

import (
	"academiq/config"
	"academiq/internal/services/ingest"
	"academiq/pkg/apperror"
	"academiq/pkg/apperror/status"
	"strconv"

	"github.com/gofiber/fiber/v3"
)

type ingestResponse struct {
	PaperID int64 `json:"paper_id"`
}

func HandleIngest(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	paperIDStr := c.Params("paperID")
	if paperIDStr == "" {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "paperID is required")
	}
	paperID, err := strconv.ParseInt(paperIDStr, 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "invalid paperID")
	}

	q := c.Query("force")
	force := q == "1" || q == "true" || q == "yes"

	// Fire and forget
	go ingest.RunIngestion(paperID, force)

	return apperror.Success(config.ModuleIngest, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "ingest started",
		TrackingID: trackingID,
		Data:       ingestResponse{PaperID: paperID},
	})
}
