package fixturedoc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/weekend-fixtures/internal/domain/weekend"
)

const defaultSplitWorkers = 4

type SplitResult struct {
	Items   int
	Months  []weekend.Month
	Skipped int
}

type rawEntry struct {
	startsAt time.Time
	raw      json.RawMessage
}

// Split regroups a raw export into one "<outDir>/YYYY-MM.json" document per
// month of starts_at, items sorted by kickoff. Items without a parsable
// starts_at are counted and dropped. Existing month files are overwritten.
func Split(data []byte, outDir string, now time.Time, workers int) (SplitResult, error) {
	var doc RawDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return SplitResult{}, crerr.Wrap(err, "decode raw export")
	}

	buckets := make(map[weekend.Month][]rawEntry)
	result := SplitResult{Items: len(doc.Items)}
	for _, item := range doc.Items {
		var probe struct {
			StartsAt string `json:"starts_at"`
		}
		if err := sonic.Unmarshal(item, &probe); err != nil {
			result.Skipped++
			continue
		}
		month, ok := MonthOfStartsAt(probe.StartsAt)
		if !ok {
			result.Skipped++
			continue
		}
		buckets[month] = append(buckets[month], rawEntry{startsAt: ParseStartsAt(probe.StartsAt), raw: item})
	}

	for month := range buckets {
		result.Months = append(result.Months, month)
	}
	sort.Slice(result.Months, func(i, j int) bool {
		return result.Months[i].String() < result.Months[j].String()
	})

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return SplitResult{}, crerr.Wrapf(err, "create %s", outDir)
	}

	if workers <= 0 {
		workers = defaultSplitWorkers
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return SplitResult{}, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		writers  sync.WaitGroup
		mu       sync.Mutex
		writeErr error
	)
	stamp := now.UTC().Format(time.RFC3339)
	for _, month := range result.Months {
		entries := buckets[month]
		writers.Add(1)
		if err := pool.Submit(func() {
			defer writers.Done()
			if err := writeMonth(outDir, month, entries, stamp); err != nil {
				mu.Lock()
				writeErr = crerr.CombineErrors(writeErr, err)
				mu.Unlock()
			}
		}); err != nil {
			writers.Done()
			writers.Wait()
			return SplitResult{}, crerr.Wrap(err, "submit month to worker pool")
		}
	}
	writers.Wait()

	if writeErr != nil {
		return SplitResult{}, writeErr
	}
	return result, nil
}

func writeMonth(outDir string, month weekend.Month, entries []rawEntry, stamp string) error {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].startsAt.Before(entries[j].startsAt)
	})

	doc := RawDocument{UpdatedAt: &stamp, Items: make([]json.RawMessage, 0, len(entries))}
	for _, entry := range entries {
		doc.Items = append(doc.Items, entry.raw)
	}
	return writeDocument(filepath.Join(outDir, month.String()+".json"), doc)
}

// Touch refreshes updated_at of the document at path, creating an empty
// document when the file does not exist. Items are kept byte for byte.
func Touch(path string, now time.Time) error {
	doc := RawDocument{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return crerr.Wrapf(err, "decode %s", path)
		}
	case os.IsNotExist(err):
	default:
		return crerr.Wrapf(err, "read %s", path)
	}
	if doc.Items == nil {
		doc.Items = []json.RawMessage{}
	}

	stamp := now.UTC().Format(time.RFC3339Nano)
	doc.UpdatedAt = &stamp
	return writeDocument(path, doc)
}

// writeDocument replaces path atomically through a sibling temp file.
func writeDocument(path string, doc RawDocument) error {
	data, err := sonic.ConfigDefault.MarshalIndent(doc, "", "  ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp for %s", path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "rename %s", tmpName)
	}
	return nil
}
