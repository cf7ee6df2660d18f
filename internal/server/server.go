package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	MAX_UPLOAD_SIZE  = "25M"
	SHUTDOWN_TIMEOUT = 10 * time.Second
)

// New builds the Echo instance with every route registered.
func New(h *AssessmentHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(MAX_UPLOAD_SIZE))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				slog.Error("[HTTP] Request failed", append(attrs, slog.String("error", v.Error.Error()))...)
				return nil
			}
			slog.Info("[HTTP] Request", attrs...)
			return nil
		},
	}))

	api := e.Group("/api")
	h.RegisterRoutes(api.Group("/assessments"))
	e.GET("/trend", h.Trend)
	e.GET("/healthz", h.Health)

	return e
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("[HTTP] Server starting", slog.String("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("[HTTP] Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("[HTTP] Server exited")
	return nil
}
