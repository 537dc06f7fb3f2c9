package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStageUploadsKeepsSupportedFiles(t *testing.T) {
	staging, err := StageUploads(map[string][]byte{
		"fse.txt":     []byte("template"),
		"my_fse.pdf":  []byte("resume"),
		"my_fse.docx": []byte("resume"),
		"notes.exe":   []byte("dropped"),
		"photo.png":   []byte("dropped"),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer staging.Cleanup()

	entries, err := os.ReadDir(staging.Dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"fse.txt", "my_fse.pdf", "my_fse.docx"}, names)
}

func TestStageUploadsFlattensPaths(t *testing.T) {
	staging, err := StageUploads(map[string][]byte{
		"../../etc/fse.txt": []byte("template"),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer staging.Cleanup()

	data, err := os.ReadFile(filepath.Join(staging.Dir, "fse.txt"))
	require.NoError(t, err)
	assert.Equal(t, "template", string(data))
}

func TestStagingCleanup(t *testing.T) {
	staging, err := StageUploads(map[string][]byte{
		"fse.txt": []byte("x"),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	staging.Cleanup()
	_, statErr := os.Stat(staging.Dir)
	assert.True(t, os.IsNotExist(statErr))
}
