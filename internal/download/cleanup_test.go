package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fastSweeper() *Sweeper {
	return &Sweeper{Attempts: 1, Backoff: 0}
}

func TestSweepRemovesPartials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "video.mp4.part", "partial")
	writeFile(t, dir, "video.mp4.ytdl", "state")
	writeFile(t, dir, "empty.mp4", "")
	complete := writeFile(t, dir, "complete.mp4", "finished content")

	removed := fastSweeper().Sweep(dir)

	assert.Equal(t, 3, removed)
	assert.NoFileExists(t, filepath.Join(dir, "video.mp4.part"))
	assert.NoFileExists(t, filepath.Join(dir, "video.mp4.ytdl"))
	assert.NoFileExists(t, filepath.Join(dir, "empty.mp4"))
	assert.FileExists(t, complete)
}

func TestSweepIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "playlist")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFile(t, sub, "item.mp4.part", "partial")

	removed := fastSweeper().Sweep(dir)

	assert.Zero(t, removed)
	assert.FileExists(t, filepath.Join(sub, "item.mp4.part"))
}

func TestSweepMissingDirIsBestEffort(t *testing.T) {
	removed := fastSweeper().Sweep(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Zero(t, removed)
}

func TestSweepIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.part", "x")

	sweeper := fastSweeper()
	assert.Equal(t, 1, sweeper.Sweep(dir))
	assert.Zero(t, sweeper.Sweep(dir))
}
