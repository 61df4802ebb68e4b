package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bingo/shop-console/docs"
	"github.com/bingo/shop-console/internal/api/handler"
	"github.com/bingo/shop-console/internal/api/middleware"
	"github.com/bingo/shop-console/internal/core/ports"
	"github.com/bingo/shop-console/internal/core/service"
)

// RouterDeps are the collaborators of the console router.
type RouterDeps struct {
	Workspaces *service.Workspaces
	Signer     *middleware.SessionSigner
	Cookie     handler.CookieConfig
	// Audit may be nil when no audit database is configured.
	Audit ports.AuditRepository
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
	Log        zerolog.Logger
}

// NewRouter builds the console Echo instance with all routes registered.
func NewRouter(deps RouterDeps) (*echo.Echo, error) {
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console",
		Registerer: registerer,
	}))

	// --- Static assets and API docs (no session) ---
	e.StaticFS("/assets", handler.Assets())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	session := middleware.Session(middleware.SessionConfig{
		CookieName: deps.Cookie.Name,
		Secure:     deps.Cookie.Secure,
		Signer:     deps.Signer,
		Workspaces: deps.Workspaces,
		Log:        deps.Log,
	})

	// --- Console pages ---
	pages := handler.NewPageHandler(deps.Workspaces, deps.Cookie, deps.Log)
	web := e.Group("", session)
	web.GET("/", pages.Root)
	web.GET("/login", pages.LoginPage, middleware.GuardPage(service.RouteLogin))
	web.POST("/login", pages.Login, middleware.GuardPage(service.RouteLogin))
	web.POST("/logout", pages.Logout)
	web.GET("/dashboard", pages.Dashboard, middleware.GuardPage(service.RouteDashboard))

	shops := web.Group("/shops", middleware.GuardPage(service.RouteShops))
	shops.GET("", pages.Shops)
	shops.POST("/form", pages.SubmitForm)
	shops.POST("/form/reset", pages.ResetForm)
	shops.POST("/:shop_id/edit", pages.Edit)
	shops.POST("/:shop_id/select", pages.Select)
	shops.POST("/:shop_id/delete", pages.Delete)
	shops.POST("/:shop_id/range", pages.SetDateRange)
	shops.POST("/:shop_id/commissions/:week_id/pay", pages.Pay)

	// --- JSON API ---
	sessionHandler := handler.NewSessionHandler(deps.Workspaces, deps.Cookie)
	shopHandler := handler.NewShopHandler()
	commissionHandler := handler.NewCommissionHandler()
	auditHandler := handler.NewAuditHandler(deps.Audit)

	v1 := e.Group("/api/v1", session)
	v1.GET("/session", sessionHandler.Status)
	v1.POST("/session", sessionHandler.Login)
	v1.DELETE("/session", sessionHandler.Logout)

	authed := v1.Group("", middleware.RequireAuth())
	authed.GET("/shops", shopHandler.List)
	authed.PUT("/shops/form", shopHandler.SubmitForm)
	authed.DELETE("/shops/:shop_id", shopHandler.Delete)
	authed.POST("/shops/:shop_id/edit", shopHandler.Edit)
	authed.POST("/shops/:shop_id/select", shopHandler.Select)
	authed.POST("/shops/:shop_id/range", shopHandler.SetDateRange)
	authed.GET("/shops/:shop_id/ledger", shopHandler.Ledger)
	authed.GET("/commissions", commissionHandler.List)
	authed.POST("/commissions/:week_id/pay", commissionHandler.Pay)
	authed.GET("/audit", auditHandler.List)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
