package ingest

import (
	"academiq/config"
	coreingest "academiq/internal/core/ingest"
	"academiq/internal/database"
	"academiq/pkg/logger"
	"context"
	"errors"
	"time"
)

// RunIngestion orchestrates the ingestion pipeline for a paper ID:
// fetch → extract pages → chunk → embed → Milvus upsert → persist chunks.
func RunIngestion(paperID int64, force bool) {
	db, err := database.GetDB()
	if err != nil {
		logger.Error(err, "ingest: db unavailable")
		return
	}

	paper, err := GetPaperByID(db, paperID)
	if err != nil {
		logger.Error(err, "ingest: get paper failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"paper_id":  paperID,
		"file_path": paper.FilePath,
	}).Info("ingest: start")

	// Idempotency
	exists, err := HasChunks(db, paperID)
	if err != nil {
		logger.Error(err, "ingest: check chunks failed")
		return
	}
	if exists && !force {
		logger.Info("ingest: chunks already exist; skip (no force)")
		return
	}
	if exists && force {
		if err := DeleteChunksByPaperID(db, paperID); err != nil {
			logger.Error(err, "ingest: cleanup chunks failed")
			return
		}
		// Milvus does not dedupe on primary key, so the old vectors must go
		// before re-insert or they would keep matching searches.
		delCtx, cancelDel := context.WithTimeout(context.Background(), 10*time.Second)
		err := coreingest.DeleteMilvusVectors(delCtx, paperID)
		cancelDel()
		if err != nil {
			logger.Error(err, "ingest: cleanup milvus vectors failed")
			return
		}
	}

	_ = UpdatePaperStatus(db, paperID, "processing")

	tmpPath, cleanup, err := coreingest.FetchToLocalTemp(paper.FilePath)
	if err != nil {
		logger.Error(err, "ingest: fetch file failed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}
	defer cleanup()

	pages, err := coreingest.ExtractPDFTextPages(tmpPath)
	if err != nil {
		logger.Error(err, "ingest: extract text failed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"paper_id": paperID,
		"pages":    len(pages),
	}).Info("ingest: extracted pages")

	chunkSize := config.Cfg.Ingest.ChunkSize
	overlap := config.Cfg.Ingest.ChunkOverlap
	chunks, err := coreingest.BuildChunks(pages, chunkSize, overlap)
	if err != nil {
		logger.Error(err, "ingest: chunking failed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}
	if len(chunks) == 0 {
		logger.Error(errors.New("no chunks"), "ingest: nothing to embed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"paper_id":   paperID,
		"chunks":     len(chunks),
		"chunk_size": chunkSize,
		"overlap":    overlap,
	}).Info("ingest: chunks built")

	inputs := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		inputs = append(inputs, ch.Content)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	vectors, err := coreingest.EmbedOpenAI(ctx, inputs)
	if err != nil {
		logger.Error(err, "ingest: embedding failed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}
	if len(vectors) != len(chunks) {
		logger.Error(errors.New("mismatch"), "ingest: embedding count mismatch")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}

	milvusIDs, collection, err := coreingest.UpsertMilvusVectors(ctx, vectors, paperID, chunks)
	if err != nil {
		logger.Error(err, "ingest: milvus upsert failed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}

	if err := InsertChunks(db, paperID, chunks, milvusIDs, collection); err != nil {
		logger.Error(err, "ingest: db insert chunks failed")
		_ = UpdatePaperStatus(db, paperID, "failed")
		return
	}

	if err := MarkPaperReady(db, paperID, int32(len(pages))); err != nil {
		logger.Error(err, "ingest: mark ready failed")
		return
	}
	logger.WithFields(map[string]interface{}{
		"paper_id": paperID,
		"chunks":   len(chunks),
	}).Info("ingest: done")
}
