package history

import (
	"academiq/config"
	"academiq/internal/database/model"
	"academiq/pkg/apperror"
	"academiq/pkg/apperror/status"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
)

const defaultHistoryLimit = 200

type exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

type historyResponse struct {
	PaperID   int64      `json:"paper_id"`
	Exchanges []exchange `json:"exchanges"`
}

type clearResponse struct {
	PaperID int64 `json:"paper_id"`
	Deleted int64 `json:"deleted"`
}

func HandleGet(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	paperID, err := parsePaperID(c)
	if err != nil {
		return apperror.BadRequest(config.ModuleHistory, c, status.MissingParams, "invalid paperID")
	}

	msgs, err := ListMessages(context.Background(), paperID, defaultHistoryLimit)
	if err != nil {
		return apperror.InternalError(config.ModuleHistory, c, err)
	}

	return apperror.Success(config.ModuleHistory, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "history",
		TrackingID: trackingID,
		Data: historyResponse{
			PaperID:   paperID,
			Exchanges: pairExchanges(msgs),
		},
	})
}

func HandleClear(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	paperID, err := parsePaperID(c)
	if err != nil {
		return apperror.BadRequest(config.ModuleHistory, c, status.MissingParams, "invalid paperID")
	}

	deleted, err := ClearMessages(context.Background(), paperID)
	if err != nil {
		return apperror.InternalError(config.ModuleHistory, c, err)
	}

	return apperror.Success(config.ModuleHistory, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "history cleared",
		TrackingID: trackingID,
		Data:       clearResponse{PaperID: paperID, Deleted: deleted},
	})
}

func parsePaperID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("paperID"), 10, 64)
}

// pairExchanges folds the flat user/assistant rows into question/answer pairs.
// A user row with no following assistant row yields a pair with an empty answer.
func pairExchanges(msgs []model.Message) []exchange {
	out := make([]exchange, 0, len(msgs)/2)
	var cur *exchange
	for _, m := range msgs {
		switch m.Role {
		case "user":
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &exchange{Question: m.Content, AskedAt: m.CreatedAt}
		case "assistant":
			if cur == nil {
				continue
			}
			cur.Answer = m.Content
			out = append(out, *cur)
			cur = nil
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}
