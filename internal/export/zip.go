package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"hrcell_backend/internal/models"
)

// ResumesZIP пакует локально сохраненные резюме откликов в один архив.
// Отклики без файла или с недоступным файлом молча пропускаются:
// экспорт не должен падать из-за одного битого пути.
func ResumesZIP(apps []models.Application, storageBase string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	added := 0
	for i := range apps {
		app := &apps[i]
		if app.ResumeURL == "" {
			continue
		}

		localPath := filepath.Join(storageBase, filepath.Clean("/"+app.ResumeURL))
		f, err := os.Open(localPath)
		if err != nil {
			continue
		}

		name := fmt.Sprintf("%s_%s%s",
			sanitize(app.CandidateName),
			app.ID[:8],
			filepath.Ext(app.ResumeURL),
		)
		entry, err := w.Create(name)
		if err != nil {
			f.Close()
			w.Close()
			return nil, err
		}
		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			w.Close()
			return nil, err
		}
		f.Close()
		added++
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	if added == 0 {
		return nil, fmt.Errorf("no resumes available for export")
	}
	return buf.Bytes(), nil
}

func sanitize(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", "..", "")
	out := replacer.Replace(name)
	if out == "" {
		out = "candidate"
	}
	return out
}
