package ingest

import (
	coreingest "academiq/internal/core/ingest"
	"academiq/internal/database/model"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

func GetPaperByID(db *gorm.DB, paperID int64) (*model.Paper, error) {
	var paper model.Paper
	if err := db.First(&paper, paperID).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func HasChunks(db *gorm.DB, paperID int64) (bool, error) {
	var count int64
	if err := db.Model(&model.Chunk{}).Where("paper_id = ?", paperID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func DeleteChunksByPaperID(db *gorm.DB, paperID int64) error {
	return db.Where("paper_id = ?", paperID).Delete(&model.Chunk{}).Error
}

func UpdatePaperStatus(db *gorm.DB, paperID int64, status string) error {
	return db.Model(&model.Paper{}).Where("id = ?", paperID).Update("status", status).Error
}

func MarkPaperReady(db *gorm.DB, paperID int64, pageCount int32) error {
	now := time.Now()
	return db.Model(&model.Paper{}).Where("id = ?", paperID).Updates(map[string]interface{}{
		"status":      "ready",
		"page_count":  pageCount,
		"ingested_at": now,
	}).Error
}

func InsertChunks(db *gorm.DB, paperID int64, chunks []coreingest.Chunk, milvusIDs []int64, collection string) error {
	records := make([]model.Chunk, 0, len(chunks))
	for i, ch := range chunks {
		content := ch.Content
		contentPreview := buildContentPreview(content, 512)
		h := sha256.Sum256([]byte(content))
		hash := hex.EncodeToString(h[:])
		var milvusID int64
		if i < len(milvusIDs) {
			milvusID = milvusIDs[i]
		}
		records = append(records, model.Chunk{
			PaperID:          paperID,
			ChunkIndex:       ch.ChunkIndex,
			PageIndex:        ch.PageIndex,
			Content:          content,
			ContentPreview:   &contentPreview,
			MilvusCollection: collection,
			MilvusID:         milvusID,
			ContentHash:      hash,
		})
	}
	return db.Create(&records).Error
}

// buildContentPreview sanitizes the preview to valid UTF-8 printable characters
// and truncates by runes to avoid splitting multi-byte sequences.
func buildContentPreview(s string, maxRunes int) string {
	var b strings.Builder
	b.Grow(len(s))
	count := 0
	for _, r := range s {
		if r == '\uFEFF' {
			continue
		}
		if r == '\n' || r == '\t' || r == '\r' {
			// keep common whitespace
		} else if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
		count++
		if count >= maxRunes {
			break
		}
	}
	return strings.TrimSpace(b.String())
}
