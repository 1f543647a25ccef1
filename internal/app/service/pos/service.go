package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/tool"
)

// Service is the food/beverage point of sale: a small inventory plus an
// append-only sale record. Sales are all-or-nothing — stock decrements and
// the sale row commit in one DB transaction or not at all.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	clk clock.Clock
	loc *time.Location
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, loc *time.Location) *Service {
	return &Service{db: db, log: log, clk: clk, loc: loc}
}

type FoodRequest struct {
	Name  string
	Price *int64
	Stock *int64
}

type SaleLineRequest struct {
	FoodID   string `json:"food_id"`
	Quantity int64  `json:"quantity"`
}

func (s *Service) ListFoods(ctx context.Context) ([]*models.Food, error) {
	var foods []*models.Food
	if err := s.db.WithContext(ctx).Order("name asc").Find(&foods).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("list foods: %w", err))
	}
	return foods, nil
}

func (s *Service) CreateFood(ctx context.Context, req FoodRequest) (*models.Food, error) {
	if err := validateFood(req); err != nil {
		return nil, err
	}
	f := &models.Food{
		ID:    tool.GenerateUUIDV7(),
		Name:  req.Name,
		Price: *req.Price,
		Stock: *req.Stock,
	}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("create food: %w", err))
	}
	return f, nil
}

func (s *Service) UpdateFood(ctx context.Context, id string, req FoodRequest) (*models.Food, error) {
	if err := validateFood(req); err != nil {
		return nil, err
	}
	f, err := s.getFood(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	f.Name = req.Name
	f.Price = *req.Price
	f.Stock = *req.Stock
	if err := s.db.WithContext(ctx).Save(f).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("update food: %w", err))
	}
	return f, nil
}

func (s *Service) DeleteFood(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Food{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Internal(fmt.Errorf("delete food: %w", res.Error))
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("food item not found")
	}
	return nil
}

// CreateSale validates stock for every line, decrements it, and persists the
// sale with name/price snapshots. The guarded UPDATE (stock >= quantity)
// keeps two racing sales from driving stock negative; any failed line rolls
// back the whole transaction.
func (s *Service) CreateSale(ctx context.Context, items []SaleLineRequest) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("sale requires at least one item")
	}
	for _, it := range items {
		if it.FoodID == "" {
			return nil, apperr.Validation("food id is required on every line")
		}
		if it.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1")
		}
	}

	var sale *models.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		lines := make([]models.SaleLine, 0, len(items))

		for _, it := range items {
			f, err := s.getFood(ctx, tx, it.FoodID)
			if err != nil {
				return err
			}
			if f.Stock < it.Quantity {
				return apperr.InsufficientStock("not enough stock for %s", f.Name)
			}

			res := tx.WithContext(ctx).Model(&models.Food{}).
				Where("id = ? AND stock >= ?", f.ID, it.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return apperr.Internal(fmt.Errorf("decrement stock: %w", res.Error))
			}
			if res.RowsAffected == 0 {
				// lost a race with a concurrent sale or stock edit
				return apperr.InsufficientStock("not enough stock for %s", f.Name)
			}

			lines = append(lines, models.SaleLine{
				FoodID:    f.ID,
				FoodName:  f.Name,
				Quantity:  it.Quantity,
				UnitPrice: f.Price,
			})
			total += f.Price * it.Quantity
		}

		sale = &models.Sale{
			ID:        tool.GenerateUUIDV7(),
			Items:     datatypes.NewJSONType(lines),
			Total:     total,
			CreatedAt: s.clk.Now().In(s.loc),
		}
		if err := tx.WithContext(ctx).Create(sale).Error; err != nil {
			return apperr.Internal(fmt.Errorf("create sale: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("sale recorded", "sale_id", sale.ID, "total", sale.Total, "lines", len(items))
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]*models.Sale, error) {
	var sales []*models.Sale
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&sales).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("list sales: %w", err))
	}
	return sales, nil
}

func (s *Service) getFood(ctx context.Context, tx *gorm.DB, id string) (*models.Food, error) {
	var f models.Food
	if err := tx.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("food item not found")
		}
		return nil, apperr.Internal(fmt.Errorf("get food: %w", err))
	}
	return &f, nil
}

func validateFood(req FoodRequest) error {
	if req.Name == "" {
		return apperr.Validation("food name is required")
	}
	if req.Price == nil || *req.Price < 0 {
		return apperr.Validation("price must be a non-negative number")
	}
	if req.Stock == nil || *req.Stock < 0 {
		return apperr.Validation("stock must be a non-negative number")
	}
	return nil
}
