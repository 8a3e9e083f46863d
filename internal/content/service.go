package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNotFound indicates the requested record does not exist in the backend.
var ErrNotFound = errors.New("content: not found")

// Service exposes the backend operations used by the public site and the back office.
// Token carries the staff bearer token and is empty for public callers.
type Service interface {
	ListPhotos(ctx context.Context, token string) ([]Photo, error)
	GetPhoto(ctx context.Context, token, id string) (*Photo, error)

	ListVideos(ctx context.Context, token string) ([]Video, error)
	GetVideo(ctx context.Context, token, id string) (*Video, error)

	ListPress(ctx context.Context, token string) ([]PressArticle, error)
	GetPress(ctx context.Context, token, id string) (*PressArticle, error)

	ListMessages(ctx context.Context, token string) ([]Message, error)
	GetMessage(ctx context.Context, token, id string) (*Message, error)
	MarkMessageRead(ctx context.Context, token, id string) (*Message, error)
	DeleteMessage(ctx context.Context, token, id string) error

	SubmitContact(ctx context.Context, submission ContactSubmission) (*Message, error)
}

// APIError describes a non-success response from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if code := strings.TrimSpace(e.Code); code != "" {
		return fmt.Sprintf("content: backend error (%d %s): %s", e.Status, code, msg)
	}
	return fmt.Sprintf("content: backend error (%d): %s", e.Status, msg)
}

// Is lets errors.Is match ErrNotFound for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ValidationError lists per-field problems with a submission.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "content: invalid submission: " + strings.Join(names, ", ")
}

// UnreadCount counts unread messages.
func UnreadCount(messages []Message) int {
	n := 0
	for _, m := range messages {
		if !m.Read {
			n++
		}
	}
	return n
}
