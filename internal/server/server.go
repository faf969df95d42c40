package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/clock"
	"github.com/GuiTheDevv/shipping-management/internal/config"
	consolidationdomain "github.com/GuiTheDevv/shipping-management/internal/consolidation/domain"
	dashboarddomain "github.com/GuiTheDevv/shipping-management/internal/dashboard/domain"
	ingestiondomain "github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	"github.com/GuiTheDevv/shipping-management/internal/observability"
	obsmiddleware "github.com/GuiTheDevv/shipping-management/internal/observability/logger"
	obsmetrics "github.com/GuiTheDevv/shipping-management/internal/observability/metrics"
	obstracing "github.com/GuiTheDevv/shipping-management/internal/observability/tracing"
	"github.com/GuiTheDevv/shipping-management/internal/providers/pdf"
	"github.com/GuiTheDevv/shipping-management/internal/ratelimit"
	"github.com/GuiTheDevv/shipping-management/internal/reference"
	referencedomain "github.com/GuiTheDevv/shipping-management/internal/reference/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	pdf.Module,
	reference.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(RunHTTP),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func corsConfig(cfg config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Request-Id", "X-Correlation-Id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	for _, origin := range corsCfg.AllowOrigins {
		if origin == "*" {
			corsCfg.AllowOrigins = nil
			break
		}
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	clock         clock.Clock
	shipmentSvc   shipmentdomain.Service
	ingestionSvc  ingestiondomain.Service
	consolidation consolidationdomain.Service
	dashboardSvc  dashboarddomain.Service
	refrepo       referencedomain.Repository
	pdf           pdf.Provider
	uploadGuard   *ratelimit.UploadGuard
	obsMetrics    *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Clock         clock.Clock
	ShipmentSvc   shipmentdomain.Service
	IngestionSvc  ingestiondomain.Service
	Consolidation consolidationdomain.Service
	DashboardSvc  dashboarddomain.Service
	Refrepo       referencedomain.Repository
	PDF           pdf.Provider
	UploadGuard   *ratelimit.UploadGuard `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics    `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		clock:         p.Clock,
		shipmentSvc:   p.ShipmentSvc,
		ingestionSvc:  p.IngestionSvc,
		consolidation: p.Consolidation,
		dashboardSvc:  p.DashboardSvc,
		refrepo:       p.Refrepo,
		pdf:           p.PDF,
		uploadGuard:   p.UploadGuard,
		obsMetrics:    p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	shipments := s.engine.Group("/shipments")
	{
		shipments.GET("", s.ListShipments)
		shipments.GET("/export", s.ExportShipments)
		shipments.GET("/metrics", s.GetDashboardMetrics)
		shipments.GET("/consolidation", s.GetConsolidation)
		shipments.GET("/consolidation/report", s.GetConsolidationReport)
		shipments.POST("/upload", s.UploadRateLimit(), s.UploadShipments)
		shipments.GET("/upload/template", s.GetUploadTemplate)
		shipments.GET("/uploads", s.ListUploads)
		shipments.GET("/:id", s.GetShipment)
	}

	ref := s.engine.Group("/reference")
	{
		ref.GET("/destinations", s.ListDestinations)
		ref.GET("/carriers", s.ListCarriers)
		ref.GET("/modes", s.ListModes)
		ref.GET("/statuses", s.ListStatuses)
	}
}
