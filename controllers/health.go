package controllers

import (
	"net/http"

	"auraapi/models"

	"github.com/labstack/echo/v4"
)

const serviceName = "Aura AI Backend"

type HealthController struct {
	LLMConfigured      bool
	WardrobeConfigured bool
}

func (controller *HealthController) HealthRoutes(g *echo.Group) {
	g.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Aura AI Backend - Kıyafet Analizi Servisi Çalışıyor!",
		})
	})
	g.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:             "healthy",
			Service:            serviceName,
			GeminiConfigured:   controller.LLMConfigured,
			SupabaseConfigured: controller.WardrobeConfigured,
		})
	})
}
