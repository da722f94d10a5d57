package webserver

import (
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/craftline/workshop/config"
)

const dbContextKey = "webserver.db"

type WebServer struct {
	cfg  *config.AppConfig
	db   *gorm.DB
	root *echo.Echo
	api  *echo.Group
	pub  *echo.Group
}

var server *WebServer

// Init builds the Echo instance, the public group and the JWT-protected
// /api group. Handlers are registered afterwards through ApiGET and friends.
func Init(cfg *config.AppConfig, db *gorm.DB) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(injectDB(db))
	e.Use(requestLogger())

	s := &WebServer{
		cfg:  cfg,
		db:   db,
		root: e,
		pub:  e.Group(""),
		api: e.Group("/api", echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(cfg.Web.Secret),
		})),
	}
	server = s
	return s
}

// Start serves until the listener fails.
func Start() error {
	addr := fmt.Sprintf("%s:%d", server.cfg.Web.Host, server.cfg.Web.Port)
	zap.L().Info("admin api listening", zap.String("addr", addr))
	return server.root.Start(addr)
}

func injectDB(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(dbContextKey, db)
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	}
}

// GetDB fetches the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(dbContextKey).(*gorm.DB)
}

// SetDB binds a database handle to one request context (used in tests).
func SetDB(c echo.Context, db *gorm.DB) {
	c.Set(dbContextKey, db)
}

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

// PubPOST registers an unauthenticated route (login only).
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }
