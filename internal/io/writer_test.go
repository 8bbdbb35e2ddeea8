package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aesthetic-filters/internal/core"
)

type recordingObserver struct {
	saved  []string
	failed []string
}

func (o *recordingObserver) FileSaved(r SaveResult)  { o.saved = append(o.saved, r.ID) }
func (o *recordingObserver) FileFailed(r SaveResult) { o.failed = append(o.failed, r.ID) }

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("image_folder", "photo_01_vibrant.jpg"),
		OutputPath("image_folder", "photo", "01_vibrant"))
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "photo.jpg", want: "photo"},
		{in: "/tmp/shots/beach.day.png", want: "beach.day"},
		{in: "noext", want: "noext"},
		{in: ".hidden", want: ".hidden"},
		{in: "dir/IMG_0001.JPEG", want: "IMG_0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BaseName(tt.in), tt.in)
	}
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")

	created, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.DirExists(t, dir)

	created, err = EnsureDir(dir)
	require.NoError(t, err)
	assert.False(t, created)

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = EnsureDir(file)
	assert.Error(t, err)
}

func TestWriter_SaveAll(t *testing.T) {
	dir := t.TempDir()
	logger, hook := logtest.NewNullLogger()
	loader := NewImageLoader(NewNativeCodec(), logger)
	w := NewWriter(loader, JPEGOptions{Quality: 95, Optimize: true}, logger)

	set := &core.VariationSet{Variations: []core.Variation{
		{ID: "01_vibrant", Buffer: core.NewUniform(4, 3, 10, 20, 30)},
		{ID: "02_vintage", Err: errors.New("filter exploded")},
		{ID: "03_black_white", Buffer: &core.PixelBuffer{Width: 4, Height: 3}},
		{ID: "04_warm_glow", Buffer: core.NewUniform(4, 3, 200, 100, 0)},
	}}

	obs := &recordingObserver{}
	report := w.SaveAll(dir, "photo", set, obs)

	assert.Equal(t, 4, report.Total())
	assert.Equal(t, 2, report.Saved())
	assert.Equal(t, []string{"01_vibrant", "04_warm_glow"}, obs.saved)
	assert.Equal(t, []string{"02_vintage", "03_black_white"}, obs.failed)

	assert.FileExists(t, filepath.Join(dir, "photo_01_vibrant.jpg"))
	assert.FileExists(t, filepath.Join(dir, "photo_04_warm_glow.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "photo_02_vintage.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "photo_03_black_white.jpg"))

	err := report.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Contains(t, err.Error(), "02_vintage")

	warnings := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Variation not saved" {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

func TestWriter_SaveAll_MissingDir(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	w := NewWriter(NewImageLoader(NewNativeCodec(), logger), JPEGOptions{Quality: 95}, logger)

	set := &core.VariationSet{Variations: []core.Variation{
		{ID: "01_vibrant", Buffer: core.NewUniform(2, 2, 1, 2, 3)},
	}}

	report := w.SaveAll(filepath.Join(t.TempDir(), "gone"), "photo", set, nil)
	assert.Equal(t, 0, report.Saved())
	assert.ErrorIs(t, report.Err(), ErrEncode)
}
