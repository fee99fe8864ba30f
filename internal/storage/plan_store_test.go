package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanStore_SaveAndRemove(t *testing.T) {
	store, err := NewPlanStore(t.TempDir())
	assert.NoError(t, err)

	link, err := store.Save("floor-1.png", strings.NewReader("png-bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "/uploads/plans/"))
	assert.True(t, strings.HasSuffix(link, ".png"))

	path := filepath.Join(store.baseDir, plansSubdir, filepath.Base(link))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	assert.NoError(t, store.Remove(link))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing again is a no-op.
	assert.NoError(t, store.Remove(link))
}

func TestPlanStore_UniqueNames(t *testing.T) {
	store, err := NewPlanStore(t.TempDir())
	assert.NoError(t, err)

	first, err := store.Save("plan.jpg", strings.NewReader("a"))
	assert.NoError(t, err)
	second, err := store.Save("plan.jpg", strings.NewReader("b"))
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
