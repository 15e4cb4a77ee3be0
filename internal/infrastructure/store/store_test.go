package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/types"
)

func sampleReport(session, name string) StoredReport {
	link := "https://www.figma.com/design/abc/" + name
	return StoredReport{
		SessionID: session,
		Report:    types.UIReport{ProjectName: name, Screens: []types.UIScreen{{Name: "Home Screen"}}},
		Prompt:    "prompt for " + name,
		FigmaURL:  &link,
		CreatedAt: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

// exerciseStore 两种实现共用的行为
func exerciseStore(t *testing.T, s ReportStore) {
	ctx := context.Background()

	_, err := s.Latest(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "a", sampleReport("a", "Alpha")))
	require.NoError(t, s.Save(ctx, "b", sampleReport("b", "Beta")))

	got, err := s.Latest(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Report.ProjectName)
	assert.Equal(t, "prompt for Alpha", got.Prompt)
	require.NotNil(t, got.FigmaURL)

	require.NoError(t, s.Save(ctx, "a", sampleReport("a", "Alpha 2")))
	got, err = s.Latest(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha 2", got.Report.ProjectName)

	got, err = s.Latest(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.Report.ProjectName)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStorePurge(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", sampleReport("a", "Alpha")))
	assert.Equal(t, 0, s.purge(time.Now()))
	assert.Equal(t, 1, s.purge(time.Now().Add(2*time.Hour)))

	_, err := s.Latest(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreCloseTwice(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func TestRedisStore(t *testing.T) {
	mr := newMiniredis(t)
	s := NewRedisStore(mr.Addr(), "", 0, time.Hour)
	defer s.Close()

	exerciseStore(t, s)
	assert.True(t, mr.Exists("uispec:report:a"))
	assert.Equal(t, time.Hour, mr.TTL("uispec:report:a"))
}

func TestRedisStoreExpires(t *testing.T) {
	mr := newMiniredis(t)
	s := NewRedisStore(mr.Addr(), "", 0, time.Minute)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", sampleReport("a", "Alpha")))
	mr.FastForward(2 * time.Minute)

	_, err := s.Latest(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	mr := newMiniredis(t)
	s := NewRedisStore(mr.Addr(), "", 0, time.Minute)
	defer s.Close()

	require.NoError(t, mr.Set("uispec:report:a", "not json"))
	_, err := s.Latest(context.Background(), "a")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Redis.Addr = ""
	s := New(ctx, cfg)
	assert.IsType(t, &MemoryStore{}, s)
	_ = s.Close()

	mr := newMiniredis(t)
	cfg.Redis.Addr = mr.Addr()
	s = New(ctx, cfg)
	assert.IsType(t, &RedisStore{}, s)
	_ = s.Close()

	cfg.Redis.Addr = "127.0.0.1:1"
	s = New(ctx, cfg)
	assert.IsType(t, &MemoryStore{}, s)
	_ = s.Close()
}
