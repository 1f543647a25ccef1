package pos

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
)

func newTestService(t *testing.T, now time.Time) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Food{}, &models.Sale{}))

	clk := clock.NewFakeClock(now)
	return NewService(db, zap.NewNop().Sugar(), clk, time.UTC), db
}

func int64p(v int64) *int64 { return &v }

func TestCreateSale_DecrementsStockAndSnapshots(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)
	ctx := context.Background()

	water, err := svc.CreateFood(ctx, FoodRequest{Name: "Water", Price: int64p(5000), Stock: int64p(3)})
	require.NoError(t, err)
	bar, err := svc.CreateFood(ctx, FoodRequest{Name: "Protein Bar", Price: int64p(20000), Stock: int64p(10)})
	require.NoError(t, err)

	sale, err := svc.CreateSale(ctx, []SaleLineRequest{
		{FoodID: water.ID, Quantity: 2},
		{FoodID: bar.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2*5000+20000, sale.Total)
	require.Equal(t, now, sale.CreatedAt)

	lines := sale.Items.Data()
	require.Len(t, lines, 2)
	require.Equal(t, models.SaleLine{FoodID: water.ID, FoodName: "Water", Quantity: 2, UnitPrice: 5000}, lines[0])

	var got models.Food
	require.NoError(t, db.First(&got, "id = ?", water.ID).Error)
	require.EqualValues(t, 1, got.Stock)
}

func TestCreateSale_InsufficientStockRollsBackEverything(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)
	ctx := context.Background()

	water, err := svc.CreateFood(ctx, FoodRequest{Name: "Water", Price: int64p(5000), Stock: int64p(3)})
	require.NoError(t, err)
	bar, err := svc.CreateFood(ctx, FoodRequest{Name: "Protein Bar", Price: int64p(20000), Stock: int64p(1)})
	require.NoError(t, err)

	_, err = svc.CreateSale(ctx, []SaleLineRequest{
		{FoodID: water.ID, Quantity: 2},
		{FoodID: bar.ID, Quantity: 5},
	})
	require.True(t, apperr.IsKind(err, apperr.KindInsufficientStock))

	// the first line's decrement must roll back with the rest
	var got models.Food
	require.NoError(t, db.First(&got, "id = ?", water.ID).Error)
	require.EqualValues(t, 3, got.Stock)

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestCreateSale_Validation(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateSale(ctx, nil)
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateSale(ctx, []SaleLineRequest{{FoodID: "f", Quantity: 0}})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.CreateSale(ctx, []SaleLineRequest{{FoodID: "missing", Quantity: 1}})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateSale_LaterFoodEditLeavesSaleIntact(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)
	ctx := context.Background()

	water, err := svc.CreateFood(ctx, FoodRequest{Name: "Water", Price: int64p(5000), Stock: int64p(3)})
	require.NoError(t, err)

	sale, err := svc.CreateSale(ctx, []SaleLineRequest{{FoodID: water.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.UpdateFood(ctx, water.ID, FoodRequest{Name: "Mineral Water", Price: int64p(7000), Stock: int64p(50)})
	require.NoError(t, err)

	var got models.Sale
	require.NoError(t, db.First(&got, "id = ?", sale.ID).Error)
	lines := got.Items.Data()
	require.Len(t, lines, 1)
	require.Equal(t, "Water", lines[0].FoodName)
	require.EqualValues(t, 5000, lines[0].UnitPrice)
}

func TestFoodCRUD(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.CreateFood(ctx, FoodRequest{Name: "", Price: int64p(1), Stock: int64p(1)})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
	_, err = svc.CreateFood(ctx, FoodRequest{Name: "Water", Price: int64p(-1), Stock: int64p(1)})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))

	f, err := svc.CreateFood(ctx, FoodRequest{Name: "Water", Price: int64p(5000), Stock: int64p(3)})
	require.NoError(t, err)

	foods, err := svc.ListFoods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)

	require.NoError(t, svc.DeleteFood(ctx, f.ID))
	require.True(t, apperr.IsKind(svc.DeleteFood(ctx, f.ID), apperr.KindNotFound))
}
