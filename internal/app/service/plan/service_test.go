package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/config"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Plan{}))
	return NewService(db, zap.NewNop().Sugar()), db
}

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Premium (3 Months)", DurationInMonths: intp(3), Price: int64p(450000)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Single Visit", DurationInMonths: intp(0), Price: int64p(25000)})
	require.NoError(t, err)

	plans, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	// cheapest first
	require.Equal(t, "Single Visit", plans[0].Name)
	require.Equal(t, "Premium (3 Months)", plans[1].Name)
}

func TestCreate_DuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Basic", DurationInMonths: intp(1), Price: int64p(160000)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Basic", DurationInMonths: intp(1), Price: int64p(160000)})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{DurationInMonths: intp(1), Price: int64p(100)}},
		{"missing duration", CreateRequest{Name: "x", Price: int64p(100)}},
		{"negative duration", CreateRequest{Name: "x", DurationInMonths: intp(-1), Price: int64p(100)}},
		{"missing price", CreateRequest{Name: "x", DurationInMonths: intp(1)}},
		{"negative price", CreateRequest{Name: "x", DurationInMonths: intp(1), Price: int64p(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			require.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateRequest{Name: "Basic", DurationInMonths: intp(1), Price: int64p(160000)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, UpdateRequest{Name: "Basic+", DurationInMonths: intp(1), Price: int64p(175000)})
	require.NoError(t, err)
	require.Equal(t, "Basic+", updated.Name)
	require.EqualValues(t, 175000, updated.Price)

	_, err = svc.Update(ctx, "missing", UpdateRequest{Name: "x", DurationInMonths: intp(1), Price: int64p(1)})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateRequest{Name: "Basic", DurationInMonths: intp(1), Price: int64p(160000)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	require.True(t, apperr.IsKind(svc.Delete(ctx, p.ID), apperr.KindNotFound))
}

func TestSeedDefaultPlans(t *testing.T) {
	_, db := newTestService(t)
	log := zap.NewNop().Sugar()

	// prod never seeds
	require.NoError(t, SeedDefaultPlans(&config.Config{Env: config.EnvProd}, db, log))
	var count int64
	require.NoError(t, db.Model(&models.Plan{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	require.NoError(t, SeedDefaultPlans(&config.Config{Env: config.EnvDev}, db, log))
	require.NoError(t, db.Model(&models.Plan{}).Count(&count).Error)
	require.EqualValues(t, len(defaultPlans), count)

	// idempotent on a non-empty catalog
	require.NoError(t, SeedDefaultPlans(&config.Config{Env: config.EnvDev}, db, log))
	require.NoError(t, db.Model(&models.Plan{}).Count(&count).Error)
	require.EqualValues(t, len(defaultPlans), count)
}
