package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/irontrack/gymdesk/docs"
	"github.com/irontrack/gymdesk/internal/app/api/handlers"
	mw "github.com/irontrack/gymdesk/internal/app/api/middleware"
	authsvc "github.com/irontrack/gymdesk/internal/app/service/auth"
	checkinsvc "github.com/irontrack/gymdesk/internal/app/service/checkin"
	dashsvc "github.com/irontrack/gymdesk/internal/app/service/dashboard"
	membersvc "github.com/irontrack/gymdesk/internal/app/service/member"
	plansvc "github.com/irontrack/gymdesk/internal/app/service/plan"
	possvc "github.com/irontrack/gymdesk/internal/app/service/pos"
	txsvc "github.com/irontrack/gymdesk/internal/app/service/transaction"
	"github.com/irontrack/gymdesk/internal/clock"
	cfgpkg "github.com/irontrack/gymdesk/pkg/config"
	metrics "github.com/irontrack/gymdesk/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log          *zap.SugaredLogger
	Cfg          *cfgpkg.Config
	Clk          clock.Clock
	Loc          *time.Location
	Auth         *authsvc.Service
	Plans        *plansvc.Service
	Members      *membersvc.Service
	Checkins     *checkinsvc.Service
	Transactions *txsvc.Service
	Dashboard    *dashsvc.Service
	POS          *possvc.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Prometheus metrics
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: d.Log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		d.Log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Login stays outside the auth middleware
	login := r.Group("/api/v1")
	login.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware())
	handlers.RegisterAuthRoutes(login, d.Auth)

	// Everything else requires a valid token; plan and food catalog
	// mutations additionally require the admin role.
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(d.Log), mw.AccessLogMiddleware(), mw.AuthRequired(d.Cfg))
	admin := apiV1.Group("/")
	admin.Use(mw.AdminOnly())

	handlers.RegisterPlanRoutes(apiV1, admin, d.Plans)
	handlers.RegisterMemberRoutes(apiV1, d.Members, d.Clk, d.Loc)
	handlers.RegisterCheckinRoutes(apiV1, d.Checkins)
	handlers.RegisterTransactionRoutes(apiV1, d.Transactions)
	handlers.RegisterDashboardRoutes(apiV1, d.Dashboard)
	handlers.RegisterFoodRoutes(apiV1, admin, d.POS)
	handlers.RegisterSaleRoutes(apiV1, d.POS)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
