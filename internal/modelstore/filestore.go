package modelstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"StockCast/internal/domain/models"
	"StockCast/internal/forecast"
	"StockCast/pkg/logger"
)

// FileStore keeps one JSON artifact per symbol under a flat directory.
type FileStore struct {
	dir string
	log *logger.Logger
}

func New(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("modelstore: create dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log.With(logger.String("component", "modelstore"))}, nil
}

// sanitize maps a user-supplied symbol to a safe file stem: uppercased,
// with path separators replaced so a symbol can never escape the directory.
func sanitize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "..", "_")
	return s
}

// Path returns where the artifact for symbol lives, whether or not it exists.
func (f *FileStore) Path(symbol string) string {
	return filepath.Join(f.dir, sanitize(symbol)+".json")
}

func (f *FileStore) Exists(symbol string) bool {
	info, err := os.Stat(f.Path(symbol))
	return err == nil && !info.IsDir()
}

// Load reads the cached artifact. A missing file is not an error: it returns
// (nil, nil) so the caller can fall through to training. A present but
// unreadable or corrupt file reports ErrCacheIO.
func (f *FileStore) Load(symbol string) (*forecast.Artifact, error) {
	path := f.Path(symbol)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("modelstore: read %s: %w: %v", path, forecast.ErrCacheIO, err)
	}

	var art forecast.Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("modelstore: decode %s: %w: %v", path, forecast.ErrCacheIO, err)
	}
	if art.Net == nil || art.Lookback < 1 {
		return nil, fmt.Errorf("modelstore: %s has no usable network: %w", path, forecast.ErrCacheIO)
	}
	return &art, nil
}

// Save writes the artifact atomically: encode to a temp file in the same
// directory, then rename over the final path. A crash mid-write never leaves
// a truncated artifact behind.
func (f *FileStore) Save(art *forecast.Artifact) (string, error) {
	path := f.Path(art.Symbol)

	data, err := json.Marshal(art)
	if err != nil {
		return "", fmt.Errorf("modelstore: encode %s: %w: %v", art.Symbol, forecast.ErrCacheIO, err)
	}

	tmp, err := os.CreateTemp(f.dir, sanitize(art.Symbol)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("modelstore: temp file: %w: %v", forecast.ErrCacheIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("modelstore: write %s: %w: %v", tmpName, forecast.ErrCacheIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("modelstore: close %s: %w: %v", tmpName, forecast.ErrCacheIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("modelstore: rename to %s: %w: %v", path, forecast.ErrCacheIO, err)
	}

	f.log.Debug("model saved", logger.String("symbol", art.Symbol), logger.String("path", path))
	return path, nil
}

// Delete removes the artifact. The bool reports whether anything was removed.
func (f *FileStore) Delete(symbol string) (bool, error) {
	err := os.Remove(f.Path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("modelstore: delete %s: %w: %v", symbol, forecast.ErrCacheIO, err)
	}
	return true, nil
}

// List enumerates cached artifacts, skipping entries that fail to decode.
func (f *FileStore) List() ([]models.ModelInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("modelstore: list %s: %w: %v", f.dir, forecast.ErrCacheIO, err)
	}

	out := make([]models.ModelInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		symbol := strings.TrimSuffix(e.Name(), ".json")
		art, err := f.Load(symbol)
		if err != nil || art == nil {
			f.log.Warn("skipping unreadable model", logger.String("file", e.Name()), logger.Error(err))
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, models.ModelInfo{
			Symbol:      art.Symbol,
			Lookback:    art.Lookback,
			TrainedAt:   art.TrainedAt,
			EpochsRun:   art.EpochsRun,
			BestValLoss: art.BestValLoss,
			Path:        f.Path(symbol),
			SizeBytes:   info.Size(),
		})
	}
	return out, nil
}
