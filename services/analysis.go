package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"auraapi/models"

	"go.uber.org/zap"
)

// ClothingAnalysisInstruction is sent with every image. The model is
// prompted, not schema bound, so keys and their order must stay as they are.
const ClothingAnalysisInstruction = `Bu resimdeki giysiyi analiz et. Giysinin kategorisini (örneğin: Gömlek, Pantolon, Elbise, Ceket), ana rengini (örneğin: Mavi, Kırmızı, Siyah), desenini (örneğin: Düz, Çizgili, Ekose, Çiçekli), stilini (örneğin: Günlük, Resmi, Spor), mevsimini (örneğin: Yazlık, Kışlık, Mevsimlik) ve kumaşını (örneğin: Kot, Keten, Penye) belirle.

Cevabını, başka hiçbir açıklama veya metin eklemeden, SADECE aşağıdaki anahtarlara sahip bir JSON nesnesi olarak ver: {"kategori": "", "renk": "", "desen": "", "stil": "", "mevsim": "", "kumas": ""}

Sakın cevabında json ... gibi markdown işaretlerini kullanma. Sadece ham JSON metnini döndür.`

type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ClothingAnalyzer turns an uploaded photo into ClothingAttributes.
type ClothingAnalyzer struct {
	Vision       VisionModel
	Timeout      time.Duration
	MaxDimension int
	MaxPixels    int
	Logger       *zap.SugaredLogger
}

func (a *ClothingAnalyzer) Analyze(ctx context.Context, upload ImageUpload) (models.ClothingAttributes, error) {
	if !IsImageContentType(upload.ContentType) {
		return nil, NewAppError(InvalidInput, "Lütfen geçerli bir resim dosyası yükleyin.", nil)
	}
	if a.Vision == nil {
		return nil, NewAppError(ServiceUnavailable, "Görsel analiz modeli yapılandırılmamış.", nil)
	}

	img, err := PrepareImage(upload.Data, a.MaxDimension, a.MaxPixels)
	if errors.Is(err, ErrUndecodableImage) {
		return nil, NewAppError(InvalidInput, fmt.Sprintf("Yüklenen dosya okunabilir bir resim değil: %v", err), err)
	}
	if err != nil {
		return nil, NewAppError(UpstreamError, fmt.Sprintf("Resim işlenirken bir hata oluştu: %v", err), err)
	}
	a.Logger.Debugw("Prepared image for analysis",
		"file", upload.FileName,
		"source_format", img.SourceFormat,
		"width", img.Width,
		"height", img.Height,
		"bytes", len(img.Data),
	)

	callCtx, cancel := withOptionalTimeout(ctx, a.Timeout)
	defer cancel()
	answer, err := a.Vision.DescribeImage(callCtx, ClothingAnalysisInstruction, img)
	if err != nil {
		return nil, NewAppError(UpstreamError, fmt.Sprintf("Resim işlenirken bir hata oluştu: %v", err), err)
	}

	attributes, err := ParseClothingAttributes(answer)
	if err != nil {
		a.Logger.Warnw("Vision model answer rejected", "file", upload.FileName, "answer", answer, "error", err)
		return nil, NewAppError(AIFormatError, fmt.Sprintf("Yapay zeka geçerli bir formatta cevap vermedi: %v", err), err)
	}
	return attributes, nil
}

// ParseClothingAttributes parses the model answer as a JSON object and checks
// that every key of models.ClothingAttributeKeys is present. Surrounding
// whitespace is ignored, anything else (markdown fences included) is not.
func ParseClothingAttributes(answer string) (models.ClothingAttributes, error) {
	raw := []byte(strings.TrimSpace(answer))
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	var missing []string
	for _, key := range models.ClothingAttributeKeys {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("AI cevabında gerekli anahtarlar eksik: %s", strings.Join(missing, ", "))
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return models.ClothingAttributes(compact.Bytes()), nil
}
