package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Staging is a per-run temp directory holding uploaded template and resume
// files. Callers must defer Cleanup so the directory is removed even when a
// run panics.
type Staging struct {
	Dir string
	log *zap.Logger
}

// allowed upload extensions; anything else is dropped at staging time.
func stageable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".pdf", ".docx":
		return true
	}
	return false
}

// StageUploads writes uploaded files into a fresh run-scoped directory.
// File names are flattened to their base name; files with extensions other
// than .txt, .pdf, or .docx are skipped with a warning.
func StageUploads(files map[string][]byte, log *zap.Logger) (*Staging, error) {
	dir := filepath.Join(os.TempDir(), "coldreach-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create staging directory: %w", err)
	}

	staged := 0
	for name, content := range files {
		base := filepath.Base(name)
		if !stageable(base) {
			log.Warn("skipping upload with unsupported extension", zap.String("file", base))
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, base), content, 0o600); err != nil {
			os.RemoveAll(dir)
			return nil, fmt.Errorf("could not stage %s: %w", base, err)
		}
		staged++
	}

	log.Info("staged uploaded files", zap.String("dir", dir), zap.Int("files", staged))
	return &Staging{Dir: dir, log: log}, nil
}

// Cleanup removes the staging directory and everything in it.
func (s *Staging) Cleanup() {
	if err := os.RemoveAll(s.Dir); err != nil {
		s.log.Warn("could not remove staging directory", zap.String("dir", s.Dir), zap.Error(err))
	}
}
