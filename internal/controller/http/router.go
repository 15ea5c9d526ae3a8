// Package http is the gin surface of the escrow service: public buyer/seller
// endpoints, the reviewer admin surface and the operational probes.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticketescrow/pkg/health"
	"ticketescrow/pkg/logger"
	"ticketescrow/pkg/metrics"
	"ticketescrow/pkg/ratelimit"
)

type Router struct {
	listing      ListingHandler
	order        OrderHandler
	transfer     TransferHandler
	dispute      DisputeHandler
	verification VerificationHandler

	limiter    *ratelimit.Limiter
	writeLimit int64
	health     *health.Registry
}

func NewRouter(
	listing ListingHandler,
	order OrderHandler,
	transfer TransferHandler,
	dispute DisputeHandler,
	verification VerificationHandler,
	limiter *ratelimit.Limiter,
	writeLimit int64,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		listing:      listing,
		order:        order,
		transfer:     transfer,
		dispute:      dispute,
		verification: verification,
		limiter:      limiter,
		writeLimit:   writeLimit,
		health:       healthRegistry,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.Use(logger.CorrelationMiddleware(), logger.GinRequestLogger(), metrics.GinMiddleware())

	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.health, 5*time.Second))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	authed := engine.Group("/", Auth())
	writes := authed.Group("/", RateLimit(r.limiter, r.writeLimit))

	writes.POST("/listings", r.listing.Create)
	authed.GET("/listings", r.listing.Search)
	authed.GET("/listings/:listing_id", r.listing.Get)
	writes.DELETE("/listings/:listing_id", r.listing.Withdraw)

	writes.POST("/purchase", r.order.Purchase)
	authed.GET("/orders", r.order.List)
	authed.GET("/orders/:order_id", r.order.Get)
	writes.POST("/orders/:order_id/capture", r.order.Capture)
	authed.GET("/orders/:order_id/messages", r.order.GetMessages)
	writes.POST("/orders/:order_id/messages", r.order.AddMessage)
	authed.GET("/orders/:order_id/transfer", r.transfer.Get)

	writes.POST("/transfer", r.transfer.Act)

	writes.POST("/disputes", r.dispute.Act)
	authed.GET("/disputes", r.dispute.List)
	authed.GET("/disputes/:dispute_id", r.dispute.Get)

	writes.POST("/verify/upload", r.verification.Upload)
	writes.POST("/verify/fraud-check", r.verification.FraudCheck)
	writes.POST("/verify/submit", r.verification.Submit)

	admin := authed.Group("/admin", RequireReviewer())
	admin.GET("/verification-queue", r.verification.Queue)
	admin.POST("/verify", r.verification.Review)
	admin.GET("/disputes", r.dispute.Queue)
	admin.POST("/disputes/:dispute_id/request-statement", r.dispute.RequestStatement)
	admin.POST("/disputes/:dispute_id/resolve", r.dispute.Resolve)
}
