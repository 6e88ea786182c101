package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	currentVersion = 1
	latestFileName = "latest_report.json"
	historyDirName = "reports"
)

// ErrNotFound is returned when no report has been saved yet.
var ErrNotFound = errors.New("no saved report")

// envelope is the on-disk wrapper around a report.
type envelope struct {
	Version   int             `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
	Report    json.RawMessage `json:"report"`
}

// Storage persists analysis reports as JSON files under a data directory.
type Storage struct {
	dataDir string
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

// New creates a new Storage instance.
func New(dataDir string, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.Default()
	}
	return &Storage{
		dataDir: dataDir,
		logger:  logger,
		now:     time.Now,
	}
}

// Save writes report as the latest report and archives a timestamped copy.
// It returns the archive path.
func (s *Storage) Save(report any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	now := s.now().UTC()
	env := envelope{
		Version:   currentVersion,
		UpdatedAt: now,
		Report:    body,
	}

	latest := filepath.Join(s.dataDir, latestFileName)
	if err := writeJSONAtomic(latest, env); err != nil {
		return "", err
	}

	archive := filepath.Join(s.dataDir, historyDirName, now.Format("20060102T150405.000000000Z")+".json")
	if err := writeJSONAtomic(archive, env); err != nil {
		return "", err
	}

	s.logger.Debug("saved report", "path", latest, "archive", archive)
	return archive, nil
}

// Load decodes the latest report into dst and returns when it was saved.
func (s *Storage) Load(dst any) (time.Time, error) {
	return s.LoadFile(filepath.Join(s.dataDir, latestFileName), dst)
}

// LoadFile decodes a report file written by Save.
func (s *Storage) LoadFile(path string, dst any) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return time.Time{}, err
	}
	defer file.Close()

	var env envelope
	if err := json.NewDecoder(file).Decode(&env); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if env.Version > currentVersion {
		return time.Time{}, fmt.Errorf("%s: report version %d is newer than supported version %d",
			path, env.Version, currentVersion)
	}

	if err := json.Unmarshal(env.Report, dst); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode report in %s: %w", path, err)
	}

	s.logger.Debug("loaded report", "path", path, "updated_at", env.UpdatedAt)
	return env.UpdatedAt, nil
}

// History returns archived report paths, oldest first.
func (s *Storage) History() ([]string, error) {
	dir := filepath.Join(s.dataDir, historyDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}

	return nil
}
