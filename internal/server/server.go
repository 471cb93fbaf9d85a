package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	availabilitydomain "github.com/staysidelabs/stayside/internal/availability/domain"
	bookingdomain "github.com/staysidelabs/stayside/internal/booking/domain"
	catalogdomain "github.com/staysidelabs/stayside/internal/catalog/domain"
	"github.com/staysidelabs/stayside/internal/config"
	partnerdomain "github.com/staysidelabs/stayside/internal/partner/domain"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Redis *redis.Client `optional:"true"`

	BookingSvc      bookingdomain.Service
	AvailabilitySvc availabilitydomain.Service
	CatalogSvc      catalogdomain.Service
	PartnerSvc      partnerdomain.Service
}

type Server struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   config.Config
	redis *redis.Client

	bookingSvc      bookingdomain.Service
	availabilitySvc availabilitydomain.Service
	catalogSvc      catalogdomain.Service
	partnerSvc      partnerdomain.Service
}

func New(p Params) *Server {
	return &Server{
		db:              p.DB,
		log:             p.Log.Named("server"),
		cfg:             p.Cfg,
		redis:           p.Redis,
		bookingSvc:      p.BookingSvc,
		availabilitySvc: p.AvailabilitySvc,
		catalogSvc:      p.CatalogSvc,
		partnerSvc:      p.PartnerSvc,
	}
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Provide(NewRouter),
	fx.Invoke(RunHTTP),
)

func NewRouter(s *Server) *gin.Engine {
	gin.SetMode(s.cfg.HTTP.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.RequestID())
	router.Use(s.RequestLogger())

	router.GET("/readyz", s.Readiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.GET("/units", s.ListUnits)
		v1.GET("/units/:id", s.GetUnit)

		v1.GET("/availability", s.CheckAvailability)

		v1.POST("/bookings", s.RateLimitBookings(), s.CreateBooking)
		v1.GET("/bookings", s.ListBookings)
		v1.GET("/bookings/:code", s.GetBooking)
		v1.POST("/bookings/:code/cancel", s.CancelBooking)

		v1.POST("/partners", s.RegisterPartner)
		v1.GET("/partners/:id/stats", s.GetPartnerStats)
		v1.GET("/referrals/:code", s.ResolvePartner)
	}

	return router
}

func RunHTTP(lc fx.Lifecycle, router *gin.Engine, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.log.Info("http server starting", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

// Readiness reports liveness of the storage dependency.
func (s *Server) Readiness(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
