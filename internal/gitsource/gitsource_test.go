package gitsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPath(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"https", "https://github.com/me/cards.git", filepath.Join("repos", "github.com", "me", "cards"), false},
		{"https without suffix", "https://gitlab.com/me/decks", filepath.Join("repos", "gitlab.com", "me", "decks"), false},
		{"ssh scheme", "ssh://git@example.com:2222/me/cards.git", filepath.Join("repos", "example.com", "me", "cards"), false},
		{"scp style", "git@github.com:me/cards.git", filepath.Join("repos", "github.com", "me", "cards"), false},
		{"garbage", "not a url", "", true},
		{"unsupported scheme", "ftp://example.com/cards", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalPath("repos", tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSyncRejectsNonRepository(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.cards"), []byte("A\tB\tC\n"), 0o644))

	_, err := Sync(context.Background(), "https://example.invalid/cards.git", dir, nil)
	assert.Error(t, err)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "cloned", Cloned.String())
	assert.Equal(t, "updated", Updated.String())
	assert.Equal(t, "already up to date", UpToDate.String())
}
