package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportExport records a produced export artifact for a ReportRequest.
type ReportExport struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RequestID uuid.UUID `gorm:"column:request_id;type:uuid;not null;index"`
	FileName  string    `gorm:"column:file_name;not null"`
	Format    string    `gorm:"column:format;not null"`
	SizeBytes int64     `gorm:"column:size_bytes;not null;default:0"`
	RowCount  int       `gorm:"column:row_count;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ReportExport) TableName() string { return "report_exports" }
