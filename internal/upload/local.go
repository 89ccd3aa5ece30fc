package upload

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"paperdesk/internal/models"
)

// FromPath describes a local file the way a file dialog would. The media type
// comes from the extension only; content is opened lazily at submit time.
func FromPath(path string) (models.CandidateFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.CandidateFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return models.CandidateFile{}, fmt.Errorf("%s is a directory", path)
	}
	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return models.CandidateFile{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: mt,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FromPaths resolves every path, collecting the ones that could not be read.
func FromPaths(paths []string) ([]models.CandidateFile, []error) {
	files := make([]models.CandidateFile, 0, len(paths))
	var errs []error
	for _, p := range paths {
		f, err := FromPath(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, f)
	}
	return files, errs
}
