package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/usergroups/internal/config"
	groupdomain "github.com/smallbiznis/usergroups/internal/group/domain"
	obslogger "github.com/smallbiznis/usergroups/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/usergroups/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	engine   *gin.Engine
	groupSvc groupdomain.Service
	log      *zap.Logger
}

func NewServer(engine *gin.Engine, groupSvc groupdomain.Service, log *zap.Logger) *Server {
	return &Server{
		engine:   engine,
		groupSvc: groupSvc,
		log:      log,
	}
}

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// RegisterRoutes mounts the group membership API.
func (s *Server) RegisterRoutes() {
	v1 := s.engine.Group("/v1")
	v1.Use(UserIdentityMiddleware())

	v1.POST("/groups", s.CreateGroup)
	v1.GET("/groups", s.ListGroups)
	v1.GET("/groups/:group_id", s.GetGroup)
	v1.PATCH("/groups/:group_id", s.UpdateGroup)
	v1.DELETE("/groups/:group_id", s.DeleteGroup)

	v1.POST("/groups/:group_id/leave", s.LeaveGroup)
	v1.GET("/groups/:group_id/members", s.ListMembers)
	v1.DELETE("/groups/:group_id/members/:user_id", s.RemoveMember)
	v1.POST("/groups/:group_id/admins/:user_id", s.AddAdmin)
	v1.DELETE("/groups/:group_id/admins/:user_id", s.RevokeAdmin)

	v1.POST("/groups/:group_id/applications", s.ApplyToJoin)
	v1.GET("/groups/:group_id/applications", s.ListApplications)
	v1.POST("/groups/:group_id/applications/:application_id/approve", s.ApproveApplication)
	v1.POST("/groups/:group_id/applications/:application_id/ignore", s.IgnoreApplication)

	v1.POST("/groups/:group_id/invitations", s.CreateEmailInvitations)
	v1.GET("/groups/:group_id/invitations", s.ListInvitations)
	v1.POST("/invitations/:key/redeem", s.RedeemInvitation)
}

func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
