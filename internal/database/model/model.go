package model

import "time"

// Paper is an uploaded academic PDF.
type Paper struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OriginalFilename string     `gorm:"size:255" json:"original_filename"`
	FilePath         string     `gorm:"size:512" json:"-"`
	Sha256           string     `gorm:"column:sha256;size:64;index" json:"sha256"`
	SizeBytes        int64      `json:"size_bytes"`
	Status           string     `gorm:"size:32;index" json:"status"` // uploaded|processing|ready|failed
	PageCount        *int32     `json:"page_count,omitempty"`
	UploadedAt       time.Time  `json:"uploaded_at"`
	IngestedAt       *time.Time `json:"ingested_at,omitempty"`
}

func (Paper) TableName() string { return "papers" }

// Chunk is one embedded text window of a paper, mirrored in Milvus.
type Chunk struct {
	ID               int64 `gorm:"primaryKey;autoIncrement"`
	PaperID          int64 `gorm:"index"`
	ChunkIndex       int32
	PageIndex        int32
	Content          string  `gorm:"type:text"`
	ContentPreview   *string `gorm:"size:512"`
	ContentHash      string  `gorm:"size:64"`
	MilvusCollection string  `gorm:"size:128"`
	MilvusID         int64
}

func (Chunk) TableName() string { return "chunks" }

// Message is one entry of a paper's chat history.
// Role is "user", "assistant" or "context".
type Message struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PaperID   int64     `gorm:"index" json:"paper_id"`
	Role      string    `gorm:"size:16" json:"role"`
	Content   string    `gorm:"type:text" json:"content"`
	PageIndex *int32    `json:"page_index,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
