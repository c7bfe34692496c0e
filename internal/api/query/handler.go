package query

import (
	"academiq/config"
	corequery "academiq/internal/core/query"
	"academiq/internal/database"
	"academiq/internal/database/model"
	"academiq/pkg/apperror"
	"academiq/pkg/apperror/status"
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

func HandleQuery(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req corequery.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleQuery, c, status.InvalidRequestBody, "invalid request body")
	}
	if req.PaperID <= 0 {
		return apperror.BadRequest(config.ModuleQuery, c, status.MissingParams, "paper_id is required")
	}
	if req.Question == "" {
		return apperror.BadRequest(config.ModuleQuery, c, status.MissingParams, "question is required")
	}

	paper, err := database.GetEntityByID[model.Paper](context.Background(), req.PaperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleQuery, c, status.PaperNotFound, "paper not found")
		}
		return apperror.InternalError(config.ModuleQuery, c, err)
	}
	if paper.Status != "ready" {
		return apperror.BadRequest(config.ModuleQuery, c, status.PaperNotReady, "paper is not ingested yet")
	}

	resp, err := corequery.Run(context.Background(), req)
	if err != nil {
		return apperror.InternalError(config.ModuleQuery, c, err)
	}

	return apperror.Success(config.ModuleQuery, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "query answered",
		TrackingID: trackingID,
		Data:       resp,
	})
}
