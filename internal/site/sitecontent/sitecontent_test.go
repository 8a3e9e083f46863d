package sitecontent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const minimal = `
name: Test Campaign
person:
  name: Jo Test
hero:
  headline: Hello
timeline:
  - date: 2020-05-01
    title: Later
  - date: 2010-01-02
    title: Earlier
social:
  - href: https://example.com/jo
`

func TestDefaultDocumentParses(t *testing.T) {
	t.Parallel()

	site, err := Default()
	require.NoError(t, err)
	require.Equal(t, "Alex Rivera", site.Person.Name)
	require.Equal(t, "/contact", site.Hero.CTA.Href)
	require.NotEmpty(t, site.Timeline)
	require.NotEmpty(t, site.Social)
}

func TestParseSortsTimelineAndDefaultsLabels(t *testing.T) {
	t.Parallel()

	site, err := Parse([]byte(minimal))
	require.NoError(t, err)
	require.Len(t, site.Timeline, 2)
	require.Equal(t, "Earlier", site.Timeline[0].Title)
	require.Equal(t, time.Date(2010, 1, 2, 0, 0, 0, 0, time.UTC), site.Timeline[0].Date)
	require.Equal(t, []Link{{Label: "https://example.com/jo", Href: "https://example.com/jo"}}, site.Social)
}

func TestParseReportsMissingFields(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("name: X\ntimeline:\n  - date: someday\n    title: T\n"))
	require.ErrorIs(t, err, ErrInvalid)
	require.Contains(t, err.Error(), "person.name")
	require.Contains(t, err.Error(), "hero.headline")
	require.Contains(t, err.Error(), "timeline[0].date")

	_, err = Parse([]byte("name: [unterminated"))
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrInvalid))
}

func TestStoreReloadKeepsPreviousOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	store, err := NewStore(dir, nil)
	require.NoError(t, err)
	require.Equal(t, "Test Campaign", store.Current().Name)

	require.NoError(t, os.WriteFile(path, []byte("name: Broken\n"), 0o600))
	require.ErrorIs(t, store.Reload(), ErrInvalid)
	require.Equal(t, "Test Campaign", store.Current().Name)
}

func TestNewStoreWithoutDirUsesDefault(t *testing.T) {
	t.Parallel()

	store, err := NewStore("", nil)
	require.NoError(t, err)
	require.Empty(t, store.Dir())
	require.Equal(t, "Alex Rivera", store.Current().Person.Name)
	require.Error(t, store.Watch(context.Background(), 0))
}

func TestNewStoreMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir(), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	store, err := NewStore(dir, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, 10*time.Millisecond) }()

	updated := []byte("name: Updated Campaign\nperson:\n  name: Jo Test\nhero:\n  headline: Hi again\n")
	require.Eventually(t, func() bool {
		// Rewrite until the watcher has registered the directory and picked the change up.
		_ = os.WriteFile(path, updated, 0o600)
		return store.Current().Name == "Updated Campaign"
	}, 5*time.Second, 50*time.Millisecond)
	require.Equal(t, "Hi again", store.Current().Hero.Headline)

	cancel()
	require.NoError(t, <-done)
}
