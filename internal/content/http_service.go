package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IdempotencyHeader carries the key that lets the backend drop duplicate contact submissions.
const IdempotencyHeader = "Idempotency-Key"

var tracer = otel.Tracer("finitefield.org/campaign-site/internal/content")

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService implements Service against the backend REST API.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

type listEnvelope[T any] struct {
	Items []T `json:"items"`
}

// NewHTTPService constructs a Service backed by the REST API rooted at baseURL.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("content: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("content: parse base URL: %w", err)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{base: parsed, client: client}, nil
}

// ListPhotos returns every gallery photo.
func (s *HTTPService) ListPhotos(ctx context.Context, token string) ([]Photo, error) {
	var payload listEnvelope[Photo]
	if err := s.getJSON(ctx, "photos", token, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// GetPhoto returns a single photo.
func (s *HTTPService) GetPhoto(ctx context.Context, token, id string) (*Photo, error) {
	var photo Photo
	if err := s.getJSON(ctx, itemPath("photos", id), token, &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListVideos returns every video.
func (s *HTTPService) ListVideos(ctx context.Context, token string) ([]Video, error) {
	var payload listEnvelope[Video]
	if err := s.getJSON(ctx, "videos", token, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// GetVideo returns a single video.
func (s *HTTPService) GetVideo(ctx context.Context, token, id string) (*Video, error) {
	var video Video
	if err := s.getJSON(ctx, itemPath("videos", id), token, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// ListPress returns every press article.
func (s *HTTPService) ListPress(ctx context.Context, token string) ([]PressArticle, error) {
	var payload listEnvelope[PressArticle]
	if err := s.getJSON(ctx, "press", token, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// GetPress returns a single press article.
func (s *HTTPService) GetPress(ctx context.Context, token, id string) (*PressArticle, error) {
	var article PressArticle
	if err := s.getJSON(ctx, itemPath("press", id), token, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// ListMessages returns the inbox.
func (s *HTTPService) ListMessages(ctx context.Context, token string) ([]Message, error) {
	var payload listEnvelope[Message]
	if err := s.getJSON(ctx, "messages", token, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// GetMessage returns a single inbox message.
func (s *HTTPService) GetMessage(ctx context.Context, token, id string) (*Message, error) {
	var msg Message
	if err := s.getJSON(ctx, itemPath("messages", id), token, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkMessageRead flags the message as read and returns the updated record.
func (s *HTTPService) MarkMessageRead(ctx context.Context, token, id string) (*Message, error) {
	req, err := s.newRequest(ctx, http.MethodPost, itemPath("messages", id)+":markRead", nil, token)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := s.doJSON(req, "mark message read", &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage removes the message from the inbox.
func (s *HTTPService) DeleteMessage(ctx context.Context, token, id string) error {
	req, err := s.newRequest(ctx, http.MethodDelete, itemPath("messages", id), nil, token)
	if err != nil {
		return err
	}
	return s.doJSON(req, "delete message", nil, http.StatusOK, http.StatusNoContent)
}

// SubmitContact posts a contact form submission. Every call carries a fresh idempotency key.
func (s *HTTPService) SubmitContact(ctx context.Context, submission ContactSubmission) (*Message, error) {
	submission = submission.Normalize()
	if err := submission.Validate(); err != nil {
		return nil, err
	}
	req, err := s.newJSONRequest(ctx, http.MethodPost, "messages", submission, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set(IdempotencyHeader, ulid.Make().String())

	var msg Message
	if err := s.doJSON(req, "submit contact", &msg, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *HTTPService) getJSON(ctx context.Context, endpoint, token string, dst any) error {
	req, err := s.newRequest(ctx, http.MethodGet, endpoint, nil, token)
	if err != nil {
		return err
	}
	return s.doJSON(req, "get "+endpoint, dst, http.StatusOK)
}

func (s *HTTPService) doJSON(req *http.Request, op string, dst any, accepted ...int) error {
	ctx, span := tracer.Start(req.Context(), "content "+req.Method+" "+strings.TrimPrefix(req.URL.Path, s.base.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.URL.Path),
		),
	)
	defer span.End()

	resp, err := s.client.Do(req.WithContext(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("content: %s: request failed: %w", op, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if !statusAccepted(resp.StatusCode, accepted) {
		apiErr := errorFromResponse(resp)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return apiErr
	}
	if dst == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("content: %s: decode response: %w", op, err)
	}
	return nil
}

func (s *HTTPService) newRequest(ctx context.Context, method, endpoint string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.resolve(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (s *HTTPService) newJSONRequest(ctx context.Context, method, endpoint string, payload any, token string) (*http.Request, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("content: encode payload: %w", err)
	}
	req, err := s.newRequest(ctx, method, endpoint, &buf, token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (s *HTTPService) resolve(endpoint string) string {
	ref := &url.URL{Path: strings.TrimPrefix(endpoint, "/")}
	return s.base.ResolveReference(ref).String()
}

func itemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(strings.TrimSpace(id))
}

func statusAccepted(status int, accepted []int) bool {
	for _, code := range accepted {
		if status == code {
			return true
		}
	}
	return false
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Code    string `json:"code"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Code = strings.TrimSpace(payload.Code)
			if apiErr.Code == "" {
				apiErr.Code = strings.TrimSpace(payload.Error)
			}
			apiErr.Message = strings.TrimSpace(payload.Message)
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
	}
	return apiErr
}
