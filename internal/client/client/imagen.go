package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/imagenstudio/internal/client/models"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
)

const (
	DefaultAPIBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel      = "imagen-4.0-generate-001"

	outputMimeType  = "image/jpeg"
	apiKeyHeader    = "x-goog-api-key"
	requestIDHeader = "X-Request-Id"
)

// ImagenClient talks to the Imagen ":predict" REST endpoint.
type ImagenClient struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
	log     logging.Logger
}

// NewImagenClient builds a client. An empty apiKey is accepted here and
// reported on the first GenerateImage call. httpClient may be nil.
func NewImagenClient(baseURL, model, apiKey string, httpClient *http.Client, log logging.Logger) *ImagenClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &ImagenClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		http:    httpClient,
		log:     log.With("component", "imagen"),
	}
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount   int           `json:"sampleCount"`
	AspectRatio   string        `json:"aspectRatio"`
	OutputOptions outputOptions `json:"outputOptions"`
}

type outputOptions struct {
	MimeType string `json:"mimeType"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
	RaiFilteredReason  string `json:"raiFilteredReason"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *ImagenClient) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:predict", c.baseURL, c.model)
}

func (c *ImagenClient) GenerateImage(ctx context.Context, prompt string, ratio models.AspectRatio) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount:   1,
			AspectRatio:   string(ratio),
			OutputOptions: outputOptions{MimeType: outputMimeType},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(requestIDHeader, reqID)

	log := c.log.With("request_id", reqID)
	log.Info(ctx, "generating image", "model", c.model, "aspect_ratio", ratio, "prompt_len", len(prompt))

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "image request failed", "error", err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := apiError(resp.Status, raw)
		log.Error(ctx, "image API rejected request", "status", resp.StatusCode, "error", err)
		return "", err
	}

	var pr predictResponse
	if err := json.Unmarshal(raw, &pr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(pr.Predictions) == 0 || pr.Predictions[0].BytesBase64Encoded == "" {
		if len(pr.Predictions) > 0 && pr.Predictions[0].RaiFilteredReason != "" {
			log.Warn(ctx, "prompt filtered", "reason", pr.Predictions[0].RaiFilteredReason)
		}
		return "", ErrNoImages
	}

	p := pr.Predictions[0]
	mime := p.MimeType
	if mime == "" {
		mime = outputMimeType
	}
	log.Info(ctx, "image generated")
	return "data:" + mime + ";base64," + p.BytesBase64Encoded, nil
}

func apiError(status string, body []byte) error {
	var e apiErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return fmt.Errorf("%w: %s", ErrAPI, e.Error.Message)
	}
	return fmt.Errorf("%w: %s", ErrAPI, status)
}
