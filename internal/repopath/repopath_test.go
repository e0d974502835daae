package repopath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForAppendsBiverToExtension(t *testing.T) {
	p := For("/home/user/pic.psd")
	assert.Equal(t, "/home/user/pic.psd.biver", p.RepositoryDir)
	assert.Equal(t, "/home/user/pic.psd.biver/data.json", p.DataFile)
	assert.Equal(t, "/home/user/pic.psd", p.VersionedFile)
}

func TestForFileWithoutExtension(t *testing.T) {
	p := For("/home/user/README")
	assert.Equal(t, "/home/user/README.biver", p.RepositoryDir)
}

func TestForFileWithMultipleDots(t *testing.T) {
	p := For("archive.tar.gz")
	assert.Equal(t, "archive.tar.gz.biver", p.RepositoryDir)
}

func TestContentAndPreviewBlobFileNames(t *testing.T) {
	assert.Equal(t, "abc_content", ContentBlobFileName("abc"))
	assert.Equal(t, "abc_preview", PreviewBlobFileName("abc"))
}

func TestFileJoinsWithRepositoryDir(t *testing.T) {
	p := For("pic.psd")
	assert.Equal(t, "pic.psd.biver/data_backup1.json", p.File("data_backup1.json"))
}
