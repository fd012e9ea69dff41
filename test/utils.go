package test

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"time"

	"auraapi/config"
	"auraapi/models"
	"auraapi/services"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

// NewMultipartFileRequest builds a request uploading content under the
// "file" form field with the given declared content type.
func NewMultipartFileRequest(target, fileName, contentType string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, _ := writer.CreatePart(header)
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func Config() *config.Config {
	return &config.Config{
		Address:           ":0",
		Env:               "test",
		LLMProvider:       config.ProviderGemini,
		Gemini:            config.GeminiConfig{APIKey: "fake"},
		WardrobeTable:     "kiyafetler",
		VisionTimeout:     5 * time.Second,
		TextTimeout:       5 * time.Second,
		StoreTimeout:      5 * time.Second,
		MaxUploadSize:     "10M",
		ImageMaxDimension: 2048,
		ImageMaxPixels:    40_000_000,
	}
}

func StrPointer(s string) *string {
	return &s
}

// PNGImage encodes a w x h picture of the given color model. Supported models:
// "rgba" (with transparent pixels), "gray" and "paletted".
func PNGImage(model string, w, h int) []byte {
	var img image.Image
	switch model {
	case "gray":
		gray := image.NewGray(image.Rect(0, 0, w, h))
		for i := range gray.Pix {
			gray.Pix[i] = uint8(i % 255)
		}
		img = gray
	case "paletted":
		pal := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.Black, color.White, color.RGBA{R: 200, A: 255}})
		for i := range pal.Pix {
			pal.Pix[i] = uint8(i % 3)
		}
		img = pal
	default:
		rgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				rgba.SetNRGBA(x, y, color.NRGBA{R: 20, G: 40, B: 200, A: uint8((x * 255) / w)})
			}
		}
		img = rgba
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// GrayJPEGImage encodes a single channel JPEG.
func GrayJPEGImage(w, h int) []byte {
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, gray, nil)
	return buf.Bytes()
}

// PNGHeader returns a PNG that declares w x h grayscale pixels in its IHDR
// chunk but carries no pixel data. Only the header can be read from it.
func PNGHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

// VisionMock answers every call with Answer or Err and records what it got.
type VisionMock struct {
	Answer string
	Err    error

	mu           sync.Mutex
	Calls        int
	Instructions []string
	Images       []*services.PreparedImage
}

func (m *VisionMock) DescribeImage(ctx context.Context, instruction string, img *services.PreparedImage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Instructions = append(m.Instructions, instruction)
	m.Images = append(m.Images, img)
	return m.Answer, m.Err
}

type TextMock struct {
	Answer string
	Err    error

	mu      sync.Mutex
	Calls   int
	Prompts []string
}

func (m *TextMock) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Prompts = append(m.Prompts, prompt)
	return m.Answer, m.Err
}

type WardrobeStoreMock struct {
	Items []models.WardrobeItem
	Err   error

	mu       sync.Mutex
	Calls    int
	OwnerIDs []string
}

func (m *WardrobeStoreMock) ListByOwner(ctx context.Context, ownerID string) ([]models.WardrobeItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.OwnerIDs = append(m.OwnerIDs, ownerID)
	return m.Items, m.Err
}
