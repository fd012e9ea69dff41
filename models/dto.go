package models

type RecommendationRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Soru   string `json:"soru" validate:"required"`
}

type RecommendationResult struct {
	Cevap string `json:"cevap"`
}

type AnalysisResponse struct {
	Success bool               `json:"success"`
	Data    ClothingAttributes `json:"data"`
	Message string             `json:"message"`
}

type RecommendationResponse struct {
	Success bool   `json:"success"`
	Cevap   string `json:"cevap"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

type HealthResponse struct {
	Status             string `json:"status"`
	Service            string `json:"service"`
	GeminiConfigured   bool   `json:"gemini_configured"`
	SupabaseConfigured bool   `json:"supabase_configured"`
}
