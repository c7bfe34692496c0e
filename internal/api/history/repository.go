package history

import (
	"academiq/internal/database"
	"academiq/internal/database/model"
	"context"
)

// ListMessages returns a paper's chat history in chronological order.
// Context rows are excluded, only the user/assistant exchange is returned.
func ListMessages(ctx context.Context, paperID int64, limit int) ([]model.Message, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var msgs []model.Message
	err = db.WithContext(ctx).
		Where("paper_id = ? AND role IN ?", paperID, []string{"user", "assistant"}).
		Order("id ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

// ClearMessages deletes every history row of the paper, context rows included.
func ClearMessages(ctx context.Context, paperID int64) (int64, error) {
	db, err := database.GetDB()
	if err != nil {
		return 0, err
	}
	res := db.WithContext(ctx).Where("paper_id = ?", paperID).Delete(&model.Message{})
	return res.RowsAffected, res.Error
}
