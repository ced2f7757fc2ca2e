package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestStorage(t *testing.T) *LocalFileStorage {
	t.Helper()
	now := time.UnixMilli(1767225600000).UTC()
	return NewLocalFileStorage(filepath.Join(t.TempDir(), "uploads"), fixedClock{now}, zap.NewNop())
}

func TestLocalFileStorage_Store(t *testing.T) {
	s := newTestStorage(t)

	stored, err := s.Store(context.Background(), "../Quote #1.pdf", strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, "1767225600000_Quote 1.pdf", stored.Name)
	assert.Equal(t, "/uploads/1767225600000_Quote 1.pdf", stored.PublicPath)
	assert.Equal(t, int64(5), stored.Size)

	content, err := os.ReadFile(s.GetFullPath(stored.Name))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestLocalFileStorage_StoreEmptyName(t *testing.T) {
	s := newTestStorage(t)

	stored, err := s.Store(context.Background(), "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "1767225600000_file", stored.Name)
}

func TestLocalFileStorage_Delete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	stored, err := s.Store(ctx, "a.txt", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, stored.Name))
	_, err = os.Stat(s.GetFullPath(stored.Name))
	assert.True(t, os.IsNotExist(err))

	// idempotent
	assert.NoError(t, s.Delete(ctx, stored.Name))
}

func TestLocalFileStorage_DeleteRejectsEscape(t *testing.T) {
	s := newTestStorage(t)
	err := s.Delete(context.Background(), "../outside.txt")
	assert.Error(t, err)
}

func TestLocalFileStorage_EnsureBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "uploads")
	s := NewLocalFileStorage(base, port.SystemClock{}, zap.NewNop())

	require.NoError(t, s.EnsureBaseDir())
	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, base, s.BaseDir())
}

func TestLocalFileStorage_StoreSameNameTwice(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first, err := s.Store(ctx, "q.pdf", strings.NewReader("FIRST"))
	require.NoError(t, err)
	second, err := s.Store(ctx, "q.pdf", strings.NewReader("SECOND"))
	require.NoError(t, err)
	third, err := s.Store(ctx, "q.pdf", strings.NewReader("THIRD"))
	require.NoError(t, err)

	assert.Equal(t, "1767225600000_q.pdf", first.Name)
	assert.Equal(t, "1767225600000_q_1.pdf", second.Name)
	assert.Equal(t, "1767225600000_q_2.pdf", third.Name)
	assert.Equal(t, "/uploads/1767225600000_q_1.pdf", second.PublicPath)

	for name, want := range map[string]string{first.Name: "FIRST", second.Name: "SECOND", third.Name: "THIRD"} {
		content, err := os.ReadFile(s.GetFullPath(name))
		require.NoError(t, err)
		assert.Equal(t, want, string(content), name)
	}
}
