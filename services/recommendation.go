package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auraapi/models"

	"go.uber.org/zap"
)

const (
	EmptyWardrobeText    = "Kullanıcının gardırobunda henüz kayıtlı kıyafet bulunmuyor."
	UnspecifiedFieldText = "N/A"
)

const recommendationPromptTemplate = `Sen, Aura adında sevecen, pozitif ve uzman bir moda asistanısın. Görevin, kullanıcının gardırobundaki mevcut kıyafetleri kullanarak ona harika kombin önerileri sunmak. Asla gardırobında olmayan bir parçayı önerme. Cevapların kısa, net ve ilham verici olsun.

İşte kullanıcının mevcut gardırobu:
%s

İşte kullanıcının sorusu:
%s

Şimdi bu bilgilere göre bir kombin önerisi oluştur.`

// WardrobeStore lists the clothes a user owns.
type WardrobeStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.WardrobeItem, error)
}

// Recommender builds outfit suggestions from the user's own wardrobe.
// A nil Store means the wardrobe database is not configured.
type Recommender struct {
	Store        WardrobeStore
	Text         TextModel
	StoreTimeout time.Duration
	TextTimeout  time.Duration
	Logger       *zap.SugaredLogger
}

func (r *Recommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	if r.Store == nil {
		return nil, NewAppError(ServiceUnavailable, "Supabase veritabanı bağlantısı yapılandırılmamış.", nil)
	}
	if r.Text == nil {
		return nil, NewAppError(ServiceUnavailable, "Metin modeli yapılandırılmamış.", nil)
	}

	items, err := r.listWardrobe(ctx, req.UserID)
	if err != nil {
		return nil, NewAppError(UpstreamError, fmt.Sprintf("Veritabanı bağlantı hatası: %v", err), err)
	}
	r.Logger.Debugw("Wardrobe loaded", "user_id", req.UserID, "items", len(items))

	prompt := BuildRecommendationPrompt(RenderWardrobe(items), req.Soru)

	callCtx, cancel := withOptionalTimeout(ctx, r.TextTimeout)
	defer cancel()
	answer, err := r.Text.GenerateText(callCtx, prompt)
	if err != nil {
		return nil, NewAppError(UpstreamError, fmt.Sprintf("AI modeli ile iletişim hatası: %v", err), err)
	}
	if answer == "" {
		return nil, NewAppError(UpstreamError, "AI modeli ile iletişim hatası: boş cevap döndü", nil)
	}
	return &models.RecommendationResult{Cevap: answer}, nil
}

func (r *Recommender) listWardrobe(ctx context.Context, userID string) ([]models.WardrobeItem, error) {
	storeCtx, cancel := withOptionalTimeout(ctx, r.StoreTimeout)
	defer cancel()
	return r.Store.ListByOwner(storeCtx, userID)
}

// RenderWardrobe writes one line per item in the given order, or the empty
// wardrobe sentence when there is nothing to list.
func RenderWardrobe(items []models.WardrobeItem) string {
	if len(items) == 0 {
		return EmptyWardrobeText
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf(
			"- Kategori: %s, Renk: %s, Desen: %s, Stil: %s, Mevsim: %s, Kumaş: %s",
			orUnspecified(item.Kategori),
			orUnspecified(item.Renk),
			orUnspecified(item.Desen),
			orUnspecified(item.Stil),
			orUnspecified(item.Mevsim),
			orUnspecified(item.Kumas),
		))
	}
	return strings.Join(lines, "\n")
}

func BuildRecommendationPrompt(wardrobe, question string) string {
	return fmt.Sprintf(recommendationPromptTemplate, wardrobe, question)
}

func orUnspecified(value *string) string {
	if value == nil {
		return UnspecifiedFieldText
	}
	return *value
}
