package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/app/service/member"
	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/config"
	"github.com/irontrack/gymdesk/pkg/tool"
)

func newTestService(t *testing.T, now time.Time) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Plan{}, &models.Member{}, &models.Transaction{}, &models.Checkin{}))

	clk := clock.NewFakeClock(now)
	log := zap.NewNop().Sugar()
	members := member.NewService(db, log, clk, time.UTC)
	cfg := &config.Config{Dashboard: config.DashboardConfig{
		ExpiringWindowDays:       7,
		BusiestHoursLookbackDays: 30,
	}}
	return NewService(db, log, clk, time.UTC, members, cfg), db
}

func addTransaction(t *testing.T, db *gorm.DB, amount int64, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Transaction{
		ID:              tool.GenerateUUIDV7(),
		MemberID:        "m",
		MemberName:      "Budi",
		PlanName:        "Basic (1 Month)",
		Amount:          amount,
		TransactionDate: at,
	}).Error)
}

func addCheckin(t *testing.T, db *gorm.DB, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Checkin{
		ID:          tool.GenerateUUIDV7(),
		MemberID:    "m",
		MemberName:  "Budi",
		CheckInTime: at,
	}).Error)
}

func addMember(t *testing.T, db *gorm.DB, phone string, joined, end time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Member{
		ID:       tool.GenerateUUIDV7(),
		Name:     "Member " + phone,
		Phone:    phone,
		JoinDate: joined,
		Membership: models.Membership{
			PlanID:    "p",
			PlanName:  "Basic (1 Month)",
			Price:     160000,
			StartDate: joined,
			EndDate:   end,
		},
	}).Error)
}

func TestKPIs(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	addTransaction(t, db, 160000, now.Add(-2*time.Hour))
	addTransaction(t, db, 25000, now.Add(-time.Hour))
	addTransaction(t, db, 450000, now.AddDate(0, 0, -1)) // yesterday, excluded

	addCheckin(t, db, now.Add(-3*time.Hour))
	addCheckin(t, db, now.AddDate(0, 0, -2)) // excluded

	addMember(t, db, "01", now.Add(-time.Hour), now.AddDate(0, 1, 0))  // joined today, active
	addMember(t, db, "02", now.AddDate(0, -2, 0), now.Add(-time.Hour)) // expired

	k, err := svc.KPIs(context.Background(), now)
	require.NoError(t, err)
	require.EqualValues(t, 185000, k.TodaysRevenue)
	require.EqualValues(t, 1, k.TodaysCheckins)
	require.EqualValues(t, 1, k.ActiveMembers)
	require.EqualValues(t, 1, k.NewMembersToday)
}

func TestDailySeries_ZeroFilled(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	addTransaction(t, db, 160000, now)
	addTransaction(t, db, 25000, now.AddDate(0, 0, -3))
	addTransaction(t, db, 450000, now.AddDate(0, 0, -10)) // outside window
	addCheckin(t, db, now.AddDate(0, 0, -3))
	addCheckin(t, db, now.AddDate(0, 0, -3).Add(time.Hour))

	series, err := svc.DailySeries(context.Background(), 7, now)
	require.NoError(t, err)
	require.Len(t, series, 7)

	// oldest first, today last
	require.Equal(t, "2024-01-09", series[0].Date)
	require.Equal(t, "2024-01-15", series[6].Date)
	require.EqualValues(t, 160000, series[6].Revenue)

	require.Equal(t, "2024-01-12", series[3].Date)
	require.EqualValues(t, 25000, series[3].Revenue)
	require.EqualValues(t, 2, series[3].Checkins)

	// untouched days are present and zeroed
	require.EqualValues(t, 0, series[0].Revenue)
	require.EqualValues(t, 0, series[0].Checkins)
}

func TestDailySeries_Labels(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC) // a Monday
	svc, _ := newTestService(t, now)

	weekly, err := svc.DailySeries(context.Background(), 7, now)
	require.NoError(t, err)
	require.Equal(t, "Mon", weekly[6].Day)

	monthly, err := svc.DailySeries(context.Background(), 30, now)
	require.NoError(t, err)
	require.Len(t, monthly, 30)
	require.Equal(t, "Jan 15", monthly[29].Day)
}

func TestBusiestHours(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	addCheckin(t, db, time.Date(2024, 1, 14, 18, 15, 0, 0, time.UTC))
	addCheckin(t, db, time.Date(2024, 1, 13, 18, 40, 0, 0, time.UTC))
	addCheckin(t, db, time.Date(2024, 1, 12, 7, 5, 0, 0, time.UTC))
	addCheckin(t, db, time.Date(2023, 11, 1, 9, 0, 0, 0, time.UTC)) // outside lookback

	hours, err := svc.BusiestHours(context.Background(), now, 30)
	require.NoError(t, err)
	// empty hours are omitted, remaining ones sorted by hour
	require.Equal(t, []HourCount{{Hour: 7, Count: 1}, {Hour: 18, Count: 2}}, hours)
}

func TestStats(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	addTransaction(t, db, 160000, now)
	addCheckin(t, db, now.Add(-time.Hour))
	addMember(t, db, "01", now.AddDate(0, -1, 0), now.AddDate(0, 0, 2)) // expiring soon
	addMember(t, db, "02", now.AddDate(0, -1, 0), now.AddDate(0, 1, 0))

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 160000, stats.KPI.TodaysRevenue)
	require.Len(t, stats.Charts.WeeklyData, 7)
	require.Len(t, stats.Charts.MonthlyData, 30)

	require.Len(t, stats.ExpiringSoon, 1)
	require.Equal(t, "Member 01", stats.ExpiringSoon[0].Name)
	// still active, just about to lapse
	require.Equal(t, models.MembershipStatusActive, stats.ExpiringSoon[0].Status)
}
