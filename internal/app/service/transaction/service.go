package transaction

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/types"
)

// Service reads the billing ledger. Rows are appended by the membership
// lifecycle engine and never updated or deleted here.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// List returns the full ledger, most recent first.
func (s *Service) List(ctx context.Context) ([]*models.Transaction, error) {
	var rows []*models.Transaction
	if err := s.db.WithContext(ctx).Order("transaction_date desc").Find(&rows).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("list transactions: %w", err))
	}
	return rows, nil
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.Transaction `json:"items"`
	Total int64                 `json:"total"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Scan implements the paginated/filterable admin listing.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, apperr.Validation("nil request")
	}
	if req.Size <= 0 {
		req.Size = 50
	}
	if req.From < 0 {
		req.From = 0
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "transaction_date"
	}

	tx := s.db.WithContext(ctx).Model(&models.Transaction{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("count transactions: %w", err))
	}

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: sortBy}, Desc: req.SortOrder != "asc"}}})

	var rows []*models.Transaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("scan transactions: %w", err))
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}
