package repositories

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Options{})
	assert.Error(t, err)
}

func TestStoreOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badger")

	store, err := Open(Options{Path: path})
	require.NoError(t, err)
	require.NoError(t, store.Posts().Create(newPost("leo", "persisted")))
	require.NoError(t, store.Close())

	reopened, err := Open(Options{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	post, err := reopened.Posts().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "persisted", post.Text)
}

func TestStoreBackupRestore(t *testing.T) {
	source := setupTestStore(t)
	require.NoError(t, source.Posts().Create(newPost("leo", "backed up")))

	var buf bytes.Buffer
	require.NoError(t, source.Backup(&buf))
	require.NotZero(t, buf.Len())

	target := setupTestStore(t)
	require.NoError(t, target.Restore(&buf))

	post, err := target.Posts().GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "backed up", post.Text)

	require.NoError(t, target.Clear())
	_, err = target.Posts().GetByID(1)
	assert.ErrorIs(t, err, ErrNotFound)
}
