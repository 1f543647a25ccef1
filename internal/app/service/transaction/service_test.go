package transaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/tool"
	"github.com/irontrack/gymdesk/pkg/types"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Transaction{}))
	return NewService(db, zap.NewNop().Sugar()), db
}

func seedLedger(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	rows := []models.Transaction{
		{MemberID: "m1", MemberName: "Budi", PlanName: "Basic (1 Month)", Amount: 160000, TransactionDate: base},
		{MemberID: "m2", MemberName: "Sari", PlanName: "Single Visit", Amount: 25000, TransactionDate: base.AddDate(0, 0, 1)},
		{MemberID: "m1", MemberName: "Budi", PlanName: "Premium (3 Months)", Amount: 450000, TransactionDate: base.AddDate(0, 0, 2)},
	}
	for _, r := range rows {
		r.ID = tool.GenerateUUIDV7()
		require.NoError(t, db.Create(&r).Error)
	}
}

func TestList_MostRecentFirst(t *testing.T) {
	svc, db := newTestService(t)
	seedLedger(t, db)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Premium (3 Months)", rows[0].PlanName)
	require.Equal(t, "Basic (1 Month)", rows[2].PlanName)
}

func TestScan_Pagination(t *testing.T) {
	svc, db := newTestService(t)
	seedLedger(t, db)

	res, err := svc.Scan(context.Background(), &ScanRequest{From: 0, Size: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, res.Total)
	require.Len(t, res.Items, 2)
	require.Equal(t, "Premium (3 Months)", res.Items[0].PlanName)

	res, err = svc.Scan(context.Background(), &ScanRequest{From: 2, Size: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, "Basic (1 Month)", res.Items[0].PlanName)
}

func TestScan_Filters(t *testing.T) {
	svc, db := newTestService(t)
	seedLedger(t, db)

	res, err := svc.Scan(context.Background(), &ScanRequest{
		Filters: []*types.CommonFilter{
			{Field: "member_id", Operator: types.CommonFilterOperatorEq, Values: []any{"m1"}},
		},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)
	for _, r := range res.Items {
		require.Equal(t, "m1", r.MemberID)
	}
}

func TestScan_SortAscending(t *testing.T) {
	svc, db := newTestService(t)
	seedLedger(t, db)

	res, err := svc.Scan(context.Background(), &ScanRequest{SortBy: "amount", SortOrder: "asc"})
	require.NoError(t, err)
	require.EqualValues(t, 25000, res.Items[0].Amount)
	require.EqualValues(t, 450000, res.Items[2].Amount)
}
