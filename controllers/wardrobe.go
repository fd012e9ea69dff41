package controllers

import (
	"fmt"
	"io"
	"net/http"

	"auraapi/models"
	"auraapi/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	analysisSuccessMessage       = "Kıyafet analizi başarıyla tamamlandı"
	recommendationSuccessMessage = "Kombin önerisi başarıyla oluşturuldu"
)

type WardrobeController struct {
	Analyzer    *services.ClothingAnalyzer
	Recommender *services.Recommender
	Logger      *zap.SugaredLogger
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/process-image", controller.ProcessImage)
	g.POST("/get-recommendation", controller.GetRecommendation)
}

func (controller *WardrobeController) ProcessImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, controller.Logger, services.NewAppError(services.InvalidInput, "Lütfen bir resim dosyası yükleyin.", err))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, controller.Logger, services.NewAppError(services.UpstreamError, fmt.Sprintf("Resim işlenirken bir hata oluştu: %v", err), err))
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, controller.Logger, services.NewAppError(services.UpstreamError, fmt.Sprintf("Resim işlenirken bir hata oluştu: %v", err), err))
	}

	attributes, err := controller.Analyzer.Analyze(c.Request().Context(), services.ImageUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return respondError(c, controller.Logger, err)
	}

	return c.JSON(http.StatusOK, models.AnalysisResponse{
		Success: true,
		Data:    attributes,
		Message: analysisSuccessMessage,
	})
}

func (controller *WardrobeController) GetRecommendation(c echo.Context) error {
	var req models.RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, controller.Logger, services.NewAppError(services.InvalidInput, "Geçersiz istek gövdesi.", err))
	}
	if err := c.Validate(req); err != nil {
		return respondError(c, controller.Logger, services.NewAppError(services.InvalidInput, fmt.Sprintf("Geçersiz istek: %v", validationMessage(err)), err))
	}

	result, err := controller.Recommender.Recommend(c.Request().Context(), req)
	if err != nil {
		return respondError(c, controller.Logger, err)
	}

	return c.JSON(http.StatusOK, models.RecommendationResponse{
		Success: true,
		Cevap:   result.Cevap,
		Message: recommendationSuccessMessage,
	})
}
