package content_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"finitefield.org/campaign-site/internal/content"
)

func TestStaticServiceListsNewestFirst(t *testing.T) {
	t.Parallel()

	svc := content.NewStaticService()
	ctx := context.Background()

	photos, err := svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	require.Len(t, photos, 3)
	for i := 1; i < len(photos); i++ {
		require.False(t, photos[i].CreatedAt.After(photos[i-1].CreatedAt))
	}

	videos, err := svc.ListVideos(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "98", videos[0].ID)

	press, err := svc.ListPress(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "7", press[0].ID)
}

func TestStaticServiceGetters(t *testing.T) {
	t.Parallel()

	svc := content.NewStaticService()
	ctx := context.Background()

	photo, err := svc.GetPhoto(ctx, "", "42")
	require.NoError(t, err)
	require.Equal(t, "Town hall in Riverside", photo.Title)

	video, err := svc.GetVideo(ctx, "", "99")
	require.NoError(t, err)
	require.Equal(t, 154*time.Second, video.Duration())

	article, err := svc.GetPress(ctx, "", "7")
	require.NoError(t, err)
	require.Contains(t, article.Body, "zoning reform")

	_, err = svc.GetPhoto(ctx, "", "404")
	require.ErrorIs(t, err, content.ErrNotFound)
	_, err = svc.GetMessage(ctx, "", "missing")
	require.ErrorIs(t, err, content.ErrNotFound)
	require.ErrorIs(t, svc.DeleteMessage(ctx, "", "missing"), content.ErrNotFound)
}

func TestStaticServiceSubmitContact(t *testing.T) {
	t.Parallel()

	received := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := content.NewStaticService(content.WithClock(func() time.Time { return received }))
	ctx := context.Background()

	msg, err := svc.SubmitContact(ctx, content.ContactSubmission{
		Name:  "Ana",
		Email: "ana@example.com",
		Body:  "Where can I pick up a yard sign?",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(msg.ID)
	require.NoError(t, err)
	require.False(t, msg.Read)
	require.Equal(t, received, msg.ReceivedAt)

	messages, err := svc.ListMessages(ctx, "")
	require.NoError(t, err)
	require.Equal(t, msg.ID, messages[0].ID)
	require.Equal(t, 3, content.UnreadCount(messages))

	_, err = svc.SubmitContact(ctx, content.ContactSubmission{
		Name:  "Ana",
		Email: "ana@example.com",
		Body:  strings.Repeat("x", content.MaxMessageLength+1),
	})
	var validation *content.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, []string{"body"}, keys(validation.Fields))
}

func TestContactSubmissionValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		submission content.ContactSubmission
		fields     []string
	}{
		"valid":         {content.ContactSubmission{Name: "Ana", Email: "ana@example.com", Body: "Hi"}, nil},
		"blank":         {content.ContactSubmission{Name: " ", Email: " ", Body: " "}, []string{"body", "email", "name"}},
		"missing at":    {content.ContactSubmission{Name: "Ana", Email: "ana.example.com", Body: "Hi"}, []string{"email"}},
		"display name":  {content.ContactSubmission{Name: "Ana", Email: "Ana <ana@example.com>", Body: "Hi"}, []string{"email"}},
		"limit exactly": {content.ContactSubmission{Name: "Ana", Email: "ana@example.com", Body: strings.Repeat("é", content.MaxMessageLength)}, nil},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.submission.Validate()
			if tc.fields == nil {
				require.NoError(t, err)
				return
			}
			var validation *content.ValidationError
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tc.fields, keys(validation.Fields))
		})
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
