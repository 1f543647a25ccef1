package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/irontrack/gymdesk/internal/app/api/server"
	"github.com/irontrack/gymdesk/internal/app/service/auth"
	"github.com/irontrack/gymdesk/internal/app/service/checkin"
	"github.com/irontrack/gymdesk/internal/app/service/dashboard"
	"github.com/irontrack/gymdesk/internal/app/service/member"
	"github.com/irontrack/gymdesk/internal/app/service/plan"
	"github.com/irontrack/gymdesk/internal/app/service/pos"
	"github.com/irontrack/gymdesk/internal/app/service/transaction"
	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/platform/db"
	"github.com/irontrack/gymdesk/pkg/config"
	"github.com/irontrack/gymdesk/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	clock.Module,
	db.Module,
	server.Module,
	auth.Module,
	plan.Module,
	member.Module,
	checkin.Module,
	transaction.Module,
	dashboard.Module,
	pos.Module,
)
