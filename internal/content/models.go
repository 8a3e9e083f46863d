package content

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength caps the body of a contact submission, in characters.
const MaxMessageLength = 5000

// Photo is a gallery image managed through the back office.
type Photo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	TakenAt   time.Time `json:"takenAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Video is a campaign video with a playable source.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	VideoURL        string    `json:"videoUrl"`
	PosterURL       string    `json:"posterUrl,omitempty"`
	DurationSeconds int       `json:"durationSeconds,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
}

// Duration returns the video length.
func (v Video) Duration() time.Duration {
	return time.Duration(v.DurationSeconds) * time.Second
}

// PressArticle is a press mention or statement. Body is markdown.
type PressArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Outlet      string    `json:"outlet,omitempty"`
	URL         string    `json:"url,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Message is an inbox entry created from the public contact form.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// ContactSubmission is the payload posted by the public contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Normalize trims surrounding whitespace from every field.
func (s ContactSubmission) Normalize() ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Body:    strings.TrimSpace(s.Body),
	}
}

// Validate checks the submission and returns a *ValidationError listing field problems.
func (s ContactSubmission) Validate() error {
	s = s.Normalize()
	fields := make(map[string]string)
	if s.Name == "" {
		fields["name"] = "Please tell us your name."
	}
	switch {
	case s.Email == "":
		fields["email"] = "Please provide an email address."
	case !validEmail(s.Email):
		fields["email"] = "Please provide a valid email address."
	}
	switch {
	case s.Body == "":
		fields["body"] = "Please write a message."
	case utf8.RuneCountInString(s.Body) > MaxMessageLength:
		fields["body"] = "Messages are limited to 5000 characters."
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func validEmail(value string) bool {
	if !strings.Contains(value, "@") {
		return false
	}
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}
