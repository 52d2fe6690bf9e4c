package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportRequest records an export requested through the API, independent of
// whether the artifact itself was produced.
type ReportRequest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ReportType  string     `gorm:"column:report_type;not null"`
	Format      string     `gorm:"column:format;not null"`
	FromDate    *time.Time `gorm:"column:from_date"`
	ToDate      *time.Time `gorm:"column:to_date"`
	Status      string     `gorm:"column:status;not null;default:'pending'"`
	RequestedAt time.Time  `gorm:"column:requested_at;autoCreateTime"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
}

func (ReportRequest) TableName() string { return "report_requests" }
