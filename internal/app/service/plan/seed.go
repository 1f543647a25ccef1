package plan

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/config"
	"github.com/irontrack/gymdesk/pkg/tool"
)

var defaultPlans = []models.Plan{
	{Name: "Single Visit - Regular", DurationInMonths: 0, Price: 25000},
	{Name: "Single Visit - Student", DurationInMonths: 0, Price: 15000},
	{Name: "Basic (1 Month)", DurationInMonths: 1, Price: 160000},
	{Name: "Premium (3 Months)", DurationInMonths: 3, Price: 450000},
	{Name: "VIP (12 Months)", DurationInMonths: 12, Price: 1800000},
}

// SeedDefaultPlans fills an empty catalog with the stock plan set. Dev only;
// production catalogs are managed through the API.
func SeedDefaultPlans(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) error {
	if cfg.Env != config.EnvDev {
		return nil
	}
	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&models.Plan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range defaultPlans {
		p.ID = tool.GenerateUUIDV7()
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
	}
	log.Infow("seeded default membership plans", "count", len(defaultPlans))
	return nil
}
