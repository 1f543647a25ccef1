package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/tool"
)

// Service is the membership lifecycle engine: it applies plans to members,
// computes renewal windows, and appends the matching ledger transactions.
// Member + transaction writes always share one DB transaction so the ledger
// can never drift from the member table.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	clk clock.Clock
	loc *time.Location
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, loc *time.Location) *Service {
	return &Service{db: db, log: log, clk: clk, loc: loc}
}

type RegisterRequest struct {
	Name   string
	Phone  string
	Email  *string
	PlanID string
}

type UpdateProfileRequest struct {
	Name  string
	Phone string
	Email *string
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.Member, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, apperr.Validation("name and phone are required")
	}
	if req.PlanID == "" {
		return nil, apperr.Validation("plan id is required")
	}

	var member *models.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := loadPlan(ctx, tx, req.PlanID)
		if err != nil {
			return err
		}
		if err := checkContactUnique(ctx, tx, req.Email, req.Phone, ""); err != nil {
			return err
		}

		now := s.clk.Now().In(s.loc)
		start, end := registrationWindow(plan, now)

		m := &models.Member{
			ID:       tool.GenerateUUIDV7(),
			Name:     req.Name,
			Email:    normalizeEmail(req.Email),
			Phone:    req.Phone,
			JoinDate: now,
			Membership: models.Membership{
				PlanID:    plan.ID,
				PlanName:  plan.Name,
				Price:     plan.Price,
				StartDate: start,
				EndDate:   end,
			},
		}
		if err := tx.Create(m).Error; err != nil {
			return apperr.Internal(fmt.Errorf("create member: %w", err))
		}
		if err := appendTransaction(ctx, tx, m, plan, now); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("member registered",
		"member_id", member.ID,
		"plan", member.Membership.PlanName,
		"end_date", member.Membership.EndDate,
	)
	return member, nil
}

func (s *Service) Renew(ctx context.Context, memberID, planID string) (*models.Member, error) {
	if planID == "" {
		return nil, apperr.Validation("plan id is required")
	}

	var member *models.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMember(ctx, tx, memberID)
		if err != nil {
			return err
		}
		plan, err := loadPlan(ctx, tx, planID)
		if err != nil {
			return err
		}

		now := s.clk.Now().In(s.loc)
		start, end := renewalWindow(plan, m.Membership, now)

		// Only the current window is kept on the member; history lives in
		// the ledger snapshots appended below.
		m.Membership = models.Membership{
			PlanID:    plan.ID,
			PlanName:  plan.Name,
			Price:     plan.Price,
			StartDate: start,
			EndDate:   end,
		}
		if err := tx.Save(m).Error; err != nil {
			return apperr.Internal(fmt.Errorf("save member: %w", err))
		}
		if err := appendTransaction(ctx, tx, m, plan, now); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("membership renewed",
		"member_id", member.ID,
		"plan", member.Membership.PlanName,
		"end_date", member.Membership.EndDate,
	)
	return member, nil
}

func (s *Service) UpdateProfile(ctx context.Context, memberID string, req UpdateProfileRequest) (*models.Member, error) {
	if req.Name == "" || req.Phone == "" {
		return nil, apperr.Validation("name and phone are required")
	}

	var member *models.Member
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := loadMember(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if err := checkContactUnique(ctx, tx, req.Email, req.Phone, m.ID); err != nil {
			return err
		}

		m.Name = req.Name
		m.Phone = req.Phone
		m.Email = normalizeEmail(req.Email)
		if err := tx.Save(m).Error; err != nil {
			return apperr.Internal(fmt.Errorf("save member: %w", err))
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	if err := s.db.WithContext(ctx).Order("join_date desc").Find(&members).Error; err != nil {
		return nil, apperr.Internal(fmt.Errorf("list members: %w", err))
	}
	return members, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Member, error) {
	return loadMember(ctx, s.db, id)
}

// ExpiringSoon lists members whose window ends in [now, now+windowDays),
// soonest first.
func (s *Service) ExpiringSoon(ctx context.Context, now time.Time, windowDays int) ([]*models.Member, error) {
	until := now.AddDate(0, 0, windowDays)
	var members []*models.Member
	err := s.db.WithContext(ctx).
		Where("membership_end_date >= ? AND membership_end_date < ?", now, until).
		Order("membership_end_date asc").
		Find(&members).Error
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list expiring members: %w", err))
	}
	return members, nil
}

func loadMember(ctx context.Context, tx *gorm.DB, id string) (*models.Member, error) {
	var m models.Member
	if err := tx.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, apperr.Internal(fmt.Errorf("get member: %w", err))
	}
	return &m, nil
}

func loadPlan(ctx context.Context, tx *gorm.DB, id string) (*models.Plan, error) {
	var p models.Plan
	if err := tx.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("membership plan not found")
		}
		return nil, apperr.Internal(fmt.Errorf("get plan: %w", err))
	}
	return &p, nil
}

// checkContactUnique enforces the phone and (sparse) email unique
// constraints with client-actionable messages; the DB indexes stay as the
// backstop.
func checkContactUnique(ctx context.Context, tx *gorm.DB, email *string, phone, excludeID string) error {
	q := tx.WithContext(ctx).Model(&models.Member{}).Where("phone = ?", phone)
	if excludeID != "" {
		q = q.Where("id != ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return apperr.Internal(fmt.Errorf("check phone: %w", err))
	}
	if count > 0 {
		return apperr.Conflict("this phone number is already in use by another member")
	}

	if e := normalizeEmail(email); e != nil {
		q := tx.WithContext(ctx).Model(&models.Member{}).Where("email = ?", *e)
		if excludeID != "" {
			q = q.Where("id != ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return apperr.Internal(fmt.Errorf("check email: %w", err))
		}
		if count > 0 {
			return apperr.Conflict("this email is already in use by another member")
		}
	}
	return nil
}

func appendTransaction(ctx context.Context, tx *gorm.DB, m *models.Member, plan *models.Plan, now time.Time) error {
	t := &models.Transaction{
		ID:              tool.GenerateUUIDV7(),
		MemberID:        m.ID,
		MemberName:      m.Name,
		PlanName:        plan.Name,
		Amount:          plan.Price,
		TransactionDate: now,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		return apperr.Internal(fmt.Errorf("append transaction: %w", err))
	}
	return nil
}

func normalizeEmail(email *string) *string {
	if email == nil || *email == "" {
		return nil
	}
	return email
}
