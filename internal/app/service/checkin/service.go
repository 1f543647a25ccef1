package checkin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/app/service/member"
	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/tool"
)

// Service is the append-only attendance log. Repeat check-ins on the same day
// are allowed; only an expired membership is rejected.
type Service struct {
	db      *gorm.DB
	log     *zap.SugaredLogger
	members *member.Service
	clk     clock.Clock
	loc     *time.Location
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, members *member.Service, clk clock.Clock, loc *time.Location) *Service {
	return &Service{db: db, log: log, members: members, clk: clk, loc: loc}
}

func (s *Service) Record(ctx context.Context, memberID string) (*models.Checkin, error) {
	if memberID == "" {
		return nil, apperr.Validation("member id is required")
	}

	m, err := s.members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now().In(s.loc)
	if m.Status(now) != models.MembershipStatusActive {
		return nil, apperr.State("membership is expired, please renew")
	}

	c := &models.Checkin{
		ID:          tool.GenerateUUIDV7(),
		MemberID:    m.ID,
		MemberName:  m.Name,
		CheckInTime: now,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("create checkin: %w", err))
	}

	s.log.Infow("member checked in", "member_id", m.ID, "checkin_id", c.ID)
	return c, nil
}

// Today lists check-ins within the current calendar day of the reference
// zone, most recent first.
func (s *Service) Today(ctx context.Context) ([]*models.Checkin, error) {
	now := s.clk.Now().In(s.loc)
	y, mo, d := now.Date()
	dayStart := time.Date(y, mo, d, 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var checkins []*models.Checkin
	err := s.db.WithContext(ctx).
		Where("check_in_time >= ? AND check_in_time < ?", dayStart, dayEnd).
		Order("check_in_time desc").
		Find(&checkins).Error
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list todays checkins: %w", err))
	}
	return checkins, nil
}
