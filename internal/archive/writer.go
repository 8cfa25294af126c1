package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/frzanini/downloadSiegHub/internal/dfe"
)

// Writer lays fiscal XML out on disk under
// {root}/{year}/{month}/{day}/{TYPE}/{issuer_cnpj}[/eventos]/{name}.
// The issuer level only exists when extraction recovered an issuer id;
// unparseable blobs land directly in the type directory under a temp name.
type Writer struct {
	root   string
	logger *slog.Logger
}

func NewWriter(root string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{root: root, logger: logger}
}

// Write persists one raw document and returns the absolute path written.
// counter feeds the temp-name generator for failed records.
func (w *Writer) Write(day time.Time, xmlType string, rec dfe.Record, rawXML string, counter int) (string, error) {
	dir := filepath.Join(w.root,
		fmt.Sprintf("%04d", day.Year()),
		fmt.Sprintf("%02d", int(day.Month())),
		fmt.Sprintf("%02d", day.Day()),
		xmlType,
	)
	if rec.IssuerID != "" {
		dir = filepath.Join(dir, rec.IssuerID)
		if rec.IsEvent {
			dir = filepath.Join(dir, "eventos")
		}
	}

	var name string
	if rec.OK() && rec.AccessKey != "" {
		name = FileName(rec)
	} else {
		name = TempFileName(counter)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(rawXML), 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}

	w.logger.Debug("archive.write.ok", "path", path, "kind", rec.DocumentKind)
	return path, nil
}
