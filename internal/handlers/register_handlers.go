package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	portssvc "github.com/qbclone/qbclone_backend/internal/core/ports/services"
	"github.com/qbclone/qbclone_backend/internal/middleware"
	"github.com/qbclone/qbclone_backend/internal/platform/config"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIRoutes(r, cfg, services)
}

// setupAPIRoutes configures the /api group and delegates to the per-entity
// route registrations.
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api", rateLimitMiddleware(cfg))

	registerAccountRoutes(api, services.Account)
	registerPartyRoutes(api, services.Customer, services.Vendor)
	registerTransactionRoutes(api, services.Ledger)
	registerLedgerRoutes(api, services.Ledger)
	registerReportingRoutes(api, services.Reporting)
}

func rateLimitMiddleware(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		log.Printf("Warning: invalid RATE_LIMIT %q, falling back to 300-M: %v\n", cfg.RateLimit, err)
		rate, _ = limiter.NewRateFromFormatted("300-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}
