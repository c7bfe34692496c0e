package main

import (
	"academiq/internal/database"
	"academiq/internal/database/model"
	"academiq/internal/services/ingest"
	"academiq/pkg/logger"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Batch ingestion: registers every PDF in a directory and runs the
// pipeline for each, so a corpus can be loaded without the HTTP API.
func main() {
	dir := flag.String("dir", "storage/papers", "directory containing PDF files")
	force := flag.Bool("force", false, "re-ingest papers that already have chunks")
	flag.Parse()

	if err := database.Migrate(); err != nil {
		logger.Fatal(err, "database migrate error")
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Fatal(err, "read directory %s failed", *dir)
	}

	var total, failed int
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		total++
		path := filepath.Join(*dir, e.Name())
		paperID, err := registerPaper(path, e.Name())
		if err != nil {
			failed++
			logger.Error(err, "register %s failed", e.Name())
			continue
		}
		logger.Info("ingesting %s (paper %d)", e.Name(), paperID)
		ingest.RunIngestion(paperID, *force)
	}

	fmt.Printf("done: %d PDFs, %d failed to register\n", total, failed)
}

// registerPaper creates (or reuses) the papers row for the file at path.
func registerPaper(path string, name string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return 0, err
	}
	sum := hex.EncodeToString(h.Sum(nil))

	db, err := database.GetDB()
	if err != nil {
		return 0, err
	}

	var existing model.Paper
	if err := db.Where("sha256 = ?", sum).First(&existing).Error; err == nil {
		return existing.ID, nil
	}

	paper := model.Paper{
		OriginalFilename: name,
		FilePath:         path,
		Sha256:           sum,
		SizeBytes:        size,
		Status:           "uploaded",
		UploadedAt:       time.Now(),
	}
	if err := db.Create(&paper).Error; err != nil {
		return 0, err
	}
	return paper.ID, nil
}
