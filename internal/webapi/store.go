package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrResultNotFound is returned when an ID does not match any stored result.
var ErrResultNotFound = errors.New("result not found")

// DefaultMaxResults bounds how many results a FileStore keeps in memory.
const DefaultMaxResults = 1000

// Entry is a result about to be stored.
type Entry struct {
	Kind       string
	Headline   string
	Score      *float64
	MustRepair bool
	Result     any
}

// ResultStore keeps recent analysis results.
type ResultStore interface {
	// Add stores an entry and returns its summary with a fresh ID.
	Add(e Entry) (*ResultSummary, error)
	// ListResults returns stored results of kind (all kinds when empty),
	// sorted by the given field and order.
	ListResults(kind, sortField, order string) ([]ResultSummary, error)
	// GetResult returns a single result with its full document.
	GetResult(id string) (*ResultDetail, error)
	// Summary returns aggregate metrics across stored results.
	Summary() (*SummaryResponse, error)
}

// FileStore keeps results in memory and, when dir is set, mirrors each one
// to <dir>/<id>.json so a restarted server sees earlier results.
type FileStore struct {
	dir string
	max int
	now func() time.Time

	mu      sync.RWMutex
	results map[string]*ResultDetail
	loaded  bool
	loadErr error
}

// NewFileStore creates a FileStore persisting to dir. An empty dir keeps
// results in memory only.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:     dir,
		max:     DefaultMaxResults,
		now:     time.Now,
		results: make(map[string]*ResultDetail),
	}
}

// load reads all result JSON files from the configured directory. Unless
// force is set it does nothing once a load has succeeded, so a caller that
// lost the race to the first load cannot discard results added since.
func (fs *FileStore) load(force bool) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.loaded && !force {
		return nil
	}
	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		fs.loadErr = err
		return err
	}

	results := make(map[string]*ResultDetail, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(fs.dir, e.Name()))
		if err != nil {
			continue
		}
		var detail ResultDetail
		if err := json.Unmarshal(data, &detail); err != nil {
			continue
		}
		if detail.ID == "" {
			detail.ID = strings.TrimSuffix(e.Name(), ".json")
		}
		results[detail.ID] = &detail
	}
	fs.results = results
	fs.evictLocked()

	fs.loaded = true
	fs.loadErr = nil
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load(false)
}

// Reload forces a fresh reload of all result files from disk. A store
// without a directory keeps its in-memory results.
func (fs *FileStore) Reload() error {
	return fs.load(true)
}

// Add stores e under a new random ID.
func (fs *FileStore) Add(e Entry) (*ResultSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(e.Result)
	if err != nil {
		return nil, fmt.Errorf("encoding %s result: %w", e.Kind, err)
	}
	detail := &ResultDetail{
		ResultSummary: ResultSummary{
			ID:         uuid.NewString(),
			Kind:       e.Kind,
			Headline:   e.Headline,
			Score:      e.Score,
			MustRepair: e.MustRepair,
			Timestamp:  fs.now().UTC(),
		},
		Result: raw,
	}

	if fs.dir != "" {
		data, err := json.MarshalIndent(detail, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding result %s: %w", detail.ID, err)
		}
		if err := os.MkdirAll(fs.dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating results dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(fs.dir, detail.ID+".json"), data, 0o644); err != nil {
			return nil, fmt.Errorf("writing result %s: %w", detail.ID, err)
		}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.results[detail.ID] = detail
	fs.evictLocked()

	s := detail.ResultSummary
	return &s, nil
}

// evictLocked drops the oldest in-memory results beyond fs.max.
func (fs *FileStore) evictLocked() {
	if fs.max <= 0 || len(fs.results) <= fs.max {
		return
	}
	all := make([]ResultSummary, 0, len(fs.results))
	for _, d := range fs.results {
		all = append(all, d.ResultSummary)
	}
	sortResults(all, "timestamp", "asc")
	for _, s := range all[:len(all)-fs.max] {
		delete(fs.results, s.ID)
	}
}

// ListResults returns stored results sorted by the given field and order.
func (fs *FileStore) ListResults(kind, sortField, order string) ([]ResultSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make([]ResultSummary, 0, len(fs.results))
	for _, d := range fs.results {
		if kind != "" && d.Kind != kind {
			continue
		}
		out = append(out, d.ResultSummary)
	}

	sortResults(out, sortField, order)
	return out, nil
}

// GetResult returns a single result with its full document.
func (fs *FileStore) GetResult(id string) (*ResultDetail, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	d, ok := fs.results[id]
	if !ok {
		return nil, ErrResultNotFound
	}
	cp := *d
	return &cp, nil
}

// Summary returns aggregate metrics across stored results.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{ByKind: map[string]int{}}
	totalScore := 0.0
	repairs := 0
	for _, d := range fs.results {
		resp.TotalResults++
		resp.ByKind[d.Kind]++
		if d.Kind != KindReport {
			continue
		}
		resp.ReportsScored++
		if d.Score != nil {
			totalScore += *d.Score
		}
		if d.MustRepair {
			repairs++
		}
	}

	if resp.ReportsScored > 0 {
		resp.AvgReportScore = totalScore / float64(resp.ReportsScored)
		resp.RepairRate = float64(repairs) / float64(resp.ReportsScored) * 100.0
	}
	return resp, nil
}

func sortResults(results []ResultSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "score":
			return scoreOf(results[i]) < scoreOf(results[j])
		case "kind":
			if results[i].Kind != results[j].Kind {
				return results[i].Kind < results[j].Kind
			}
			return results[i].Timestamp.Before(results[j].Timestamp)
		default: // "timestamp" or empty
			return results[i].Timestamp.Before(results[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.SliceStable(results, less)
	} else {
		sort.SliceStable(results, func(i, j int) bool { return less(j, i) })
	}
}

// scoreOf sorts unscored results first.
func scoreOf(s ResultSummary) float64 {
	if s.Score == nil {
		return -1
	}
	return *s.Score
}
