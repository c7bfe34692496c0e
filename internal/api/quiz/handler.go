package quiz

import (
	"academiq/config"
	corequiz "academiq/internal/core/quiz"
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

func HandleGenerate(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	var req corequiz.Request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidRequestBody, "invalid request body")
	}
	if req.PaperID <= 0 {
		return apperror.BadRequest(config.ModuleQuiz, c, status.MissingParams, "paper_id is required")
	}
	kind, err := corequiz.ParseKind(req.Kind)
	if err != nil {
		return apperror.BadRequest(config.ModuleQuiz, c, status.InvalidQuestionKind, err.Error())
	}

	paper, err := database.GetEntityByID[model.Paper](context.Background(), req.PaperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModuleQuiz, c, status.PaperNotFound, "paper not found")
		}
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}
	if paper.Status != "ready" {
		return apperror.BadRequest(config.ModuleQuiz, c, status.PaperNotReady, "paper is not ingested yet")
	}

	result, err := corequiz.Generate(context.Background(), req.PaperID, kind, req.Count, req.Topic)
	if err != nil {
		return apperror.InternalError(config.ModuleQuiz, c, err)
	}

	return apperror.Success(config.ModuleQuiz, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "quiz generated",
		TrackingID: trackingID,
		Data:       result,
	})
}
