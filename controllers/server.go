package controllers

import (
	"net/http"

	"auraapi/config"
	"auraapi/services"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// SetupServer wires the handlers to their collaborators. A nil store is
// allowed and makes recommendations answer 503.
func SetupServer(
	cfg *config.Config,
	vision services.VisionModel,
	text services.TextModel,
	store services.WardrobeStore,
	logger *zap.SugaredLogger,
) *echo.Echo {

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware(logger))
	// Recover sits outside sentryecho, which captures the panic and re-panics.
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	if cfg.RateLimit > 0 {
		e.Use(RateLimiterMiddleware(cfg.RateLimit))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	if cfg.MaxUploadSize != "" {
		e.Use(middleware.BodyLimit(cfg.MaxUploadSize))
	}

	wardrobeController := WardrobeController{
		Analyzer: &services.ClothingAnalyzer{
			Vision:       vision,
			Timeout:      cfg.VisionTimeout,
			MaxDimension: cfg.ImageMaxDimension,
			MaxPixels:    cfg.ImageMaxPixels,
			Logger:       logger,
		},
		Recommender: &services.Recommender{
			Store:        store,
			Text:         text,
			StoreTimeout: cfg.StoreTimeout,
			TextTimeout:  cfg.TextTimeout,
			Logger:       logger,
		},
		Logger: logger,
	}
	wardrobeController.WardrobeRoutes(e.Group(""))

	// Health reports configuration presence, a store that failed to connect
	// still counts as configured.
	healthController := HealthController{
		LLMConfigured:      cfg.LLMConfigured(),
		WardrobeConfigured: cfg.WardrobeConfigured(),
	}
	healthController.HealthRoutes(e.Group(""))

	return e
}
