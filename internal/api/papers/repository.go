package papers

import (
	"academiq/internal/database"
	"academiq/internal/database/model"
	"context"
)

// ListPapers returns all registered papers, most recent upload first.
func ListPapers(ctx context.Context) ([]model.Paper, error) {
	db, err := database.GetDB()
	if err != nil {
		return nil, err
	}
	var papers []model.Paper
	if err := db.WithContext(ctx).Order("uploaded_at DESC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}
