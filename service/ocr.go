package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yashsharma-007/Financeautomation/config"
)

// Recognizer is the external OCR collaborator: bytes in, recognized text
// out. Implementations must honor the context deadline; no latency bound
// is assumed.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, language string) (string, error)
}

// HTTPRecognizer calls a remote OCR service over HTTP.
type HTTPRecognizer struct {
	config     *config.OCRConfig
	httpClient *http.Client
}

// recognizeRequest is the request to the recognition endpoint.
type recognizeRequest struct {
	Image    string `json:"image"` // base64-encoded file content
	Language string `json:"language,omitempty"`
}

// recognizeResponse is the response envelope from the OCR service.
type recognizeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		Text string `json:"text"`
	} `json:"data"`
}

func NewHTTPRecognizer(cfg *config.OCRConfig) *HTTPRecognizer {
	return &HTTPRecognizer{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Recognize submits the image and returns the recognized text. A non-zero
// service code or empty text is an error.
func (s *HTTPRecognizer) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	reqBody := recognizeRequest{
		Image:    base64.StdEncoding.EncodeToString(image),
		Language: language,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/v1/recognize", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result recognizeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if result.Code != 0 {
		return "", fmt.Errorf("OCR service error: %s", result.Message)
	}

	if strings.TrimSpace(result.Data.Text) == "" {
		return "", fmt.Errorf("OCR service returned no text")
	}

	return result.Data.Text, nil
}
