package api

import (
	"context"

	"github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/openadr/vtn/internal/docs"

	"github.com/openadr/vtn/internal/api/handler"
	"github.com/openadr/vtn/internal/api/middleware"
	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/service"
)

// Services bundles every domain service the router wires into a handler,
// so NewRouter's signature doesn't grow with each new resource.
type Services struct {
	Programs  *service.ProgramService
	Events    *service.EventService
	Reports   *service.ReportService
	Vens      *service.VenService
	Resources *service.ResourceService
	Users     *service.UserService
	// Issuer is nil when OAUTH_TYPE is EXTERNAL (spec §4.7: "optional").
	Issuer *service.TokenIssuer
	// Ready pings the storage backend for the readiness probe. Nil for
	// backends that cannot fail a ping (the in-memory repositories).
	Ready func(ctx context.Context) error
}

// NewRouter builds and returns the Echo instance with all routes
// registered (spec §4.8: stateless, no policy logic of its own).
func NewRouter(verifier auth.Verifier, svc Services, errorHandler echo.HTTPErrorHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Validator = handler.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	p := prometheus.NewPrometheus("openadr_vtn", nil)
	p.Use(e)

	health := handler.NewHealthHandler(func(c echo.Context) error {
		if svc.Ready == nil {
			return nil
		}
		return svc.Ready(c.Request().Context())
	})
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if svc.Issuer != nil {
		e.POST("/auth/token", handler.NewTokenHandler(svc.Issuer).Issue)
	}

	authed := e.Group("", middleware.Auth(verifier))

	programs := handler.NewProgramHandler(svc.Programs)
	authed.GET("/programs", programs.List)
	authed.POST("/programs", programs.Create)
	authed.GET("/programs/:id", programs.Get)
	authed.PUT("/programs/:id", programs.Update)
	authed.DELETE("/programs/:id", programs.Delete)

	events := handler.NewEventHandler(svc.Events)
	authed.GET("/events", events.List)
	authed.GET("/events/:id", events.Get)
	authed.PUT("/events/:id", events.Update)
	authed.DELETE("/events/:id", events.Delete)
	authed.GET("/programs/:programId/events", events.List)
	authed.POST("/programs/:programId/events", events.Create)
	authed.GET("/programs/:programId/events/:id", events.Get)
	authed.PUT("/programs/:programId/events/:id", events.Update)
	authed.DELETE("/programs/:programId/events/:id", events.Delete)

	reports := handler.NewReportHandler(svc.Reports)
	authed.GET("/reports", reports.List)
	authed.POST("/reports", reports.Create)
	authed.GET("/reports/:id", reports.Get)
	authed.PUT("/reports/:id", reports.Update)
	authed.DELETE("/reports/:id", reports.Delete)

	vens := handler.NewVenHandler(svc.Vens)
	authed.GET("/vens", vens.List)
	authed.POST("/vens", vens.Create)
	authed.GET("/vens/:id", vens.Get)
	authed.PUT("/vens/:id", vens.Update)
	authed.DELETE("/vens/:id", vens.Delete)

	resources := handler.NewResourceHandler(svc.Resources)
	authed.GET("/vens/:venId/resources", resources.List)
	authed.POST("/vens/:venId/resources", resources.Create)
	authed.GET("/vens/:venId/resources/:id", resources.Get)
	authed.PUT("/vens/:venId/resources/:id", resources.Update)
	authed.DELETE("/vens/:venId/resources/:id", resources.Delete)

	users := handler.NewUserHandler(svc.Users)
	authed.GET("/users", users.List)
	authed.POST("/users", users.Create)
	authed.GET("/users/:id", users.Get)
	authed.PUT("/users/:id", users.Update)
	authed.DELETE("/users/:id", users.Delete)

	return e
}
