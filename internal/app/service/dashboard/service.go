package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/app/service/member"
	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/config"
)

// Service is the read-side aggregator: KPIs and time-bucketed series derived
// from the ledger, the check-in log and the member table. It never mutates.
//
// All day and hour buckets use the configured reference timezone, not the
// host zone, so aggregates are identical across deployments.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	clk clock.Clock
	loc *time.Location

	members      *member.Service
	expiringDays int
	lookbackDays int
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, loc *time.Location, members *member.Service, cfg *config.Config) *Service {
	return &Service{
		db:           db,
		log:          log,
		clk:          clk,
		loc:          loc,
		members:      members,
		expiringDays: cfg.Dashboard.ExpiringWindowDays,
		lookbackDays: cfg.Dashboard.BusiestHoursLookbackDays,
	}
}

type KPIs struct {
	TodaysRevenue   int64 `json:"todays_revenue"`
	TodaysCheckins  int64 `json:"todays_checkins"`
	ActiveMembers   int64 `json:"active_members"`
	NewMembersToday int64 `json:"new_members_today"`
}

// DailyPoint is one calendar-day bucket. Date is the bucket day in the
// reference zone; Day is a short display label.
type DailyPoint struct {
	Date     string `json:"date"`
	Day      string `json:"day"`
	Revenue  int64  `json:"revenue"`
	Checkins int64  `json:"checkins"`
}

type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type Charts struct {
	WeeklyData   []DailyPoint `json:"weekly_data"`
	MonthlyData  []DailyPoint `json:"monthly_data"`
	BusiestHours []HourCount  `json:"busiest_hours"`
}

type Stats struct {
	KPI          KPIs         `json:"kpi"`
	ExpiringSoon []MemberView `json:"expiring_soon"`
	Charts       Charts       `json:"charts"`
}

// Stats assembles the whole dashboard payload, fanning the independent
// aggregations out concurrently.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.clk.Now().In(s.loc)

	type part func() error
	stats := &Stats{}

	parts := []part{
		func() (err error) { stats.KPI, err = s.KPIs(ctx, now); return },
		func() error {
			ms, err := s.members.ExpiringSoon(ctx, now, s.expiringDays)
			if err != nil {
				return err
			}
			stats.ExpiringSoon = WithStatus(ms, now)
			return nil
		},
		func() (err error) { stats.Charts.WeeklyData, err = s.DailySeries(ctx, 7, now); return },
		func() (err error) { stats.Charts.MonthlyData, err = s.DailySeries(ctx, 30, now); return },
		func() (err error) { stats.Charts.BusiestHours, err = s.BusiestHours(ctx, now, s.lookbackDays); return },
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(parts))
	for _, p := range parts {
		wg.Add(1)
		go func(p part) {
			defer wg.Done()
			if err := p(); err != nil {
				errChan <- err
			}
		}(p)
	}
	wg.Wait()
	close(errChan)
	if err := <-errChan; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Service) KPIs(ctx context.Context, now time.Time) (KPIs, error) {
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var k KPIs
	err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("transaction_date >= ? AND transaction_date < ?", dayStart, dayEnd).
		Scan(&k.TodaysRevenue).Error
	if err != nil {
		return KPIs{}, apperr.Internal(fmt.Errorf("todays revenue: %w", err))
	}

	err = s.db.WithContext(ctx).Model(&models.Checkin{}).
		Where("check_in_time >= ? AND check_in_time < ?", dayStart, dayEnd).
		Count(&k.TodaysCheckins).Error
	if err != nil {
		return KPIs{}, apperr.Internal(fmt.Errorf("todays checkins: %w", err))
	}

	err = s.db.WithContext(ctx).Model(&models.Member{}).
		Where("membership_end_date >= ?", now).
		Count(&k.ActiveMembers).Error
	if err != nil {
		return KPIs{}, apperr.Internal(fmt.Errorf("active members: %w", err))
	}

	err = s.db.WithContext(ctx).Model(&models.Member{}).
		Where("join_date >= ? AND join_date < ?", dayStart, dayEnd).
		Count(&k.NewMembersToday).Error
	if err != nil {
		return KPIs{}, apperr.Internal(fmt.Errorf("new members today: %w", err))
	}
	return k, nil
}

// DailySeries buckets transactions and check-ins by calendar day over the
// last days days, today included. The series always has exactly days
// entries, oldest first, with empty days zero-filled.
func (s *Service) DailySeries(ctx context.Context, days int, now time.Time) ([]DailyPoint, error) {
	rangeStart := startOfDay(now).AddDate(0, 0, -(days - 1))
	rangeEnd := startOfDay(now).AddDate(0, 0, 1)

	var txs []*models.Transaction
	err := s.db.WithContext(ctx).
		Where("transaction_date >= ? AND transaction_date < ?", rangeStart, rangeEnd).
		Find(&txs).Error
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load transactions: %w", err))
	}

	var checkins []*models.Checkin
	err = s.db.WithContext(ctx).
		Where("check_in_time >= ? AND check_in_time < ?", rangeStart, rangeEnd).
		Find(&checkins).Error
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load checkins: %w", err))
	}

	revenueByDay := make(map[string]int64, days)
	for _, t := range txs {
		revenueByDay[t.TransactionDate.In(s.loc).Format(time.DateOnly)] += t.Amount
	}
	checkinsByDay := make(map[string]int64, days)
	for _, c := range checkins {
		checkinsByDay[c.CheckInTime.In(s.loc).Format(time.DateOnly)]++
	}

	series := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := startOfDay(now).AddDate(0, 0, -i)
		key := day.Format(time.DateOnly)
		label := day.Format("Mon")
		if days > 7 {
			label = day.Format("Jan 2")
		}
		series = append(series, DailyPoint{
			Date:     key,
			Day:      label,
			Revenue:  revenueByDay[key],
			Checkins: checkinsByDay[key],
		})
	}
	return series, nil
}

// BusiestHours counts check-ins per hour of day over the lookback window.
// Hours without check-ins are omitted; the result is sorted by hour.
func (s *Service) BusiestHours(ctx context.Context, now time.Time, lookbackDays int) ([]HourCount, error) {
	since := now.AddDate(0, 0, -lookbackDays)

	var checkins []*models.Checkin
	err := s.db.WithContext(ctx).
		Where("check_in_time >= ?", since).
		Find(&checkins).Error
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load checkins: %w", err))
	}

	counts := make(map[int]int64)
	for _, c := range checkins {
		counts[c.CheckInTime.In(s.loc).Hour()]++
	}

	hours := make([]HourCount, 0, len(counts))
	for h := 0; h < 24; h++ {
		if n, ok := counts[h]; ok {
			hours = append(hours, HourCount{Hour: h, Count: n})
		}
	}
	return hours, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MemberView is a member projection with the derived status attached.
type MemberView struct {
	*models.Member
	Status models.MembershipStatus `json:"status"`
}

func WithStatus(members []*models.Member, now time.Time) []MemberView {
	return lo.Map(members, func(m *models.Member, _ int) MemberView {
		return MemberView{Member: m, Status: m.Status(now)}
	})
}
