package plan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/tool"
)

// Service is the plan catalog. Plans are billing templates; deleting one
// never cascades because members and transactions keep denormalized copies.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CreateRequest struct {
	Name             string
	DurationInMonths *int
	Price            *int64
}

type UpdateRequest struct {
	Name             string
	DurationInMonths *int
	Price            *int64
}

func (s *Service) List(ctx context.Context) ([]*models.Plan, error) {
	var plans []*models.Plan
	if err := s.db.WithContext(ctx).Order("price asc").Find(&plans).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("list plans: %w", err))
	}
	return plans, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Plan, error) {
	var p models.Plan
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("membership plan not found")
		}
		return nil, apperr.Internal(fmt.Errorf("get plan: %w", err))
	}
	return &p, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Plan, error) {
	if err := validateFields(req.Name, req.DurationInMonths, req.Price); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Plan{}).
		Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("check plan name: %w", err))
	}
	if count > 0 {
		return nil, apperr.Conflict("a plan named %q already exists", req.Name)
	}

	p := &models.Plan{
		ID:               tool.GenerateUUIDV7(),
		Name:             req.Name,
		DurationInMonths: *req.DurationInMonths,
		Price:            *req.Price,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("create plan: %w", err))
	}
	s.log.Infow("plan created", "plan_id", p.ID, "name", p.Name)
	return p, nil
}

// Update edits the catalog entry only. Denormalized plan fields on members
// and past transactions are intentionally left untouched.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*models.Plan, error) {
	if err := validateFields(req.Name, req.DurationInMonths, req.Price); err != nil {
		return nil, err
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.DurationInMonths = *req.DurationInMonths
	p.Price = *req.Price
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("update plan: %w", err))
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Plan{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(fmt.Errorf("delete plan: %w", res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("membership plan not found")
	}
	return nil
}

func validateFields(name string, duration *int, price *int64) error {
	if name == "" {
		return apperr.Validation("plan name is required")
	}
	if duration == nil {
		return apperr.Validation("duration in months is required")
	}
	if *duration < 0 {
		return apperr.Validation("duration in months must not be negative")
	}
	if price == nil {
		return apperr.Validation("price is required")
	}
	if *price < 0 {
		return apperr.Validation("price must not be negative")
	}
	return nil
}
