package services

import (
	"fmt"
	"os"
	"path/filepath"
)

type ExportService interface {
	// Write persists content under a unique name derived from taskPrefix.
	// Two writes with the same prefix always land in two distinct files.
	Write(taskPrefix, ext, content string) (string, error)
	EnsureExportDir() error
}

type exportService struct {
	dir string
}

func NewExportService(dir string) ExportService {
	return &exportService{dir: dir}
}

func (s *exportService) EnsureExportDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create export directory: %v", ErrExport, err)
	}
	return nil
}

func (s *exportService) Write(taskPrefix, ext, content string) (string, error) {
	if err := s.EnsureExportDir(); err != nil {
		return "", err
	}

	// Monotonic counter probing. O_EXCL makes the name claim atomic, so a
	// concurrent writer racing for the same candidate just moves us to the
	// next one. Content is then written straight to the claimed file; a crash
	// mid-write can leave a short file, which is accepted at this scale.
	for counter := 1; ; counter++ {
		path := filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", taskPrefix, counter, ext))

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("%w: %v", ErrExport, err)
		}

		if _, err := f.WriteString(content); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("%w: %v", ErrExport, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("%w: %v", ErrExport, err)
		}

		return path, nil
	}
}
