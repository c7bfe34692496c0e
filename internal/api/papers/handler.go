package papers

import (
	"academiq/config"
	"academiq/internal/database"
	"academiq/internal/database/model"
	s3client "academiq/pkg/s3"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"academiq/pkg/apperror"
	"academiq/pkg/apperror/status"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"
)

type uploadResponse struct {
	PaperID int64 `json:"paper_id"`
}

// HandleUpload stores a PDF (S3 when a bucket is configured, local disk
// otherwise) and registers the paper. Ingestion is a separate call.
func HandleUpload(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.BadRequest(config.ModulePapers, c, status.MissingParams, "file is required")
	}
	if fh == nil || fh.Size == 0 {
		return apperror.BadRequest(config.ModulePapers, c, status.MissingParams, "empty file")
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".pdf" {
		return apperror.BadRequest(config.ModulePapers, c, status.InvalidRequestBody, "only PDF files are accepted")
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModulePapers, c, status.InvalidRequestBody, "cannot open file")
	}
	defer file.Close()

	// Hash while streaming to storage
	hasher := sha256.New()
	tee := io.TeeReader(file, hasher)

	// Fail before writing to storage when the database is down
	if _, err := database.GetDB(); err != nil {
		return apperror.InternalError(config.ModulePapers, c, err)
	}

	useS3 := strings.TrimSpace(config.Cfg.S3.Bucket) != ""

	var storedPath string
	var sha256Hex string
	if useS3 {
		storedPath, sha256Hex, err = storeToS3(tee, hasher)
	} else {
		storedPath, sha256Hex, err = storeToLocal(tee, hasher)
	}
	if err != nil {
		return apperror.InternalError(config.ModulePapers, c, status.New(status.UploadStoreFailed, err))
	}

	paper := model.Paper{
		OriginalFilename: fh.Filename,
		FilePath:         storedPath,
		Sha256:           sha256Hex,
		SizeBytes:        fh.Size,
		Status:           "uploaded",
		UploadedAt:       time.Now(),
	}
	if err := database.CreateEntity(context.Background(), &paper); err != nil {
		return apperror.InternalError(config.ModulePapers, c, err)
	}

	return apperror.Success(config.ModulePapers, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "paper uploaded",
		TrackingID: trackingID,
		Data:       uploadResponse{PaperID: paper.ID},
	})
}

// HandleList returns the registered papers, most recent first.
func HandleList(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	papers, err := ListPapers(context.Background())
	if err != nil {
		return apperror.InternalError(config.ModulePapers, c, err)
	}

	return apperror.Success(config.ModulePapers, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "papers listed",
		TrackingID: trackingID,
		Data:       papers,
	})
}

// HandleGet returns a single paper by ID.
func HandleGet(c fiber.Ctx) error {
	trackingID := c.Get("X-Request-ID")

	paperID, err := strconv.ParseInt(c.Params("paperID"), 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModulePapers, c, status.MissingParams, "invalid paperID")
	}

	paper, err := database.GetEntityByID[model.Paper](context.Background(), paperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound(config.ModulePapers, c, status.PaperNotFound, "paper not found")
		}
		return apperror.InternalError(config.ModulePapers, c, err)
	}

	return apperror.Success(config.ModulePapers, c, apperror.FiberSuccessMessage{
		Code:       status.OK,
		Message:    "paper found",
		TrackingID: trackingID,
		Data:       paper,
	})
}

func storeToLocal(r io.Reader, hasher hash.Hash) (string, string, error) {
	baseDir := filepath.Join("storage", "papers")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(baseDir, "upload-*.tmp")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	shaHex := hex.EncodeToString(hasher.Sum(nil))
	finalPath := filepath.Join(baseDir, shaHex+".pdf")
	if err := os.Rename(tmpFile.Name(), finalPath); err != nil {
		return "", "", fmt.Errorf("failed to finalize file: %w", err)
	}

	return finalPath, shaHex, nil
}

func storeToS3(r io.Reader, hasher hash.Hash) (string, string, error) {
	client, err := s3client.GetClient()
	if err != nil {
		return "", "", fmt.Errorf("s3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bucket := config.Cfg.S3.Bucket
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
			return "", "", fmt.Errorf("ensure bucket: %w", err)
		}
	}

	// S3 needs a seekable body; buffer through a temp file while hashing
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", "", err
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := io.Copy(tmp, r); err != nil {
		return "", "", fmt.Errorf("failed to buffer file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", "", err
	}

	shaHex := hex.EncodeToString(hasher.Sum(nil))
	key := fmt.Sprintf("papers/%s.pdf", shaHex)

	if _, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        tmp,
		ContentType: aws.String("application/pdf"),
	}); err != nil {
		return "", "", fmt.Errorf("s3 put: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", bucket, key), shaHex, nil
}
