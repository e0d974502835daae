package preview

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEligibleAcceptsKnownImageExtensions(t *testing.T) {
	assert.True(t, IsEligible("photo.png"))
	assert.True(t, IsEligible("photo.PNG"))
	assert.True(t, IsEligible("photo.JPG"))
	assert.True(t, IsEligible("photo.jpeg"))
	assert.True(t, IsEligible("layers.psd"))
}

func TestIsEligibleRejectsOtherExtensions(t *testing.T) {
	assert.False(t, IsEligible("document.doc"))
	assert.False(t, IsEligible("noextension"))
	assert.False(t, IsEligible("archive.tar.gz"))
}

func writeFakeMagick(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool script is POSIX shell only")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-magick")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestReadyFalseWhenToolMissing(t *testing.T) {
	tool := Tool{Command: "/nonexistent/path/to/magick"}
	assert.False(t, tool.Ready())
}

func TestReadyTrueWhenToolExitsZero(t *testing.T) {
	path := writeFakeMagick(t, "#!/bin/sh\nexit 0\n")
	tool := Tool{Command: path}
	assert.True(t, tool.Ready())
}

func TestCreatePreviewPassesThumbnailFlagWithConfiguredBound(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(input, []byte("not actually a png"), 0o644))
	out := filepath.Join(dir, "out.jpg")

	// Fake tool records its argv so we can assert on the flags we built.
	recorded := filepath.Join(dir, "argv.txt")
	script := "#!/bin/sh\necho \"$@\" > " + recorded + "\nexit 0\n"
	path := writeFakeMagick(t, script)

	tool := Tool{Command: path, MaxDimension: 512}
	require.NoError(t, tool.CreatePreview(input, out))

	content, err := os.ReadFile(recorded)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-thumbnail")
	assert.Contains(t, string(content), "512x512>")
	assert.Contains(t, string(content), "jpg:"+out)
}

func TestCreatePreviewSurfacesToolFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(input, []byte("data"), 0o644))

	path := writeFakeMagick(t, "#!/bin/sh\nexit 1\n")
	tool := Tool{Command: path}

	err := tool.CreatePreview(input, filepath.Join(dir, "out.jpg"))
	assert.Error(t, err)
}

func TestDefaultMaxDimensionIs1024(t *testing.T) {
	var tool Tool
	assert.Equal(t, 1024, tool.maxDimension())
}
