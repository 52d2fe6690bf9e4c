package export

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/db/models"
)

type store struct {
	db *gorm.DB
}

// NewStore builds the gorm-backed export bookkeeping store.
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) CreateReportRequest(ctx context.Context, req *models.ReportRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(req).Error
}

func (s *store) CreateReportExport(ctx context.Context, exp *models.ReportExport) error {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(exp).Error
}
