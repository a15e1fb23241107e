package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"quorum/internal/logging"
)

// Options tunes how documents are converted.
type Options struct {
	// UnanimousMarkers lists vote modes meaning "adopted unanimously".
	// Comparison is case-insensitive.
	UnanimousMarkers []string
	// Unanimous replaces UnanimousMarkers when set.
	Unanimous func(mode string) bool
	Logger    *slog.Logger
}

// LoadResult holds the sessions that loaded and the documents that were skipped.
type LoadResult struct {
	Sessions []Session
	Skipped  []*MalformedSessionError
}

var documentExtensions = map[string]struct{}{
	".json": {},
	".yaml": {},
	".yml":  {},
}

// Load reads every session document directly inside dir. Malformed documents
// are skipped and reported in LoadResult.Skipped; only a missing or
// unreadable directory (InputNotFoundError) or context cancellation aborts.
func Load(ctx context.Context, dir string, opts Options) (*LoadResult, error) {
	logger := logging.NewComponentLogger(logging.WithContext(ctx, opts.Logger), "loader")

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &InputNotFoundError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &InputNotFoundError{Dir: dir, Err: errors.New("not a directory")}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &InputNotFoundError{Dir: dir, Err: err}
	}

	unanimous := opts.Unanimous
	if unanimous == nil {
		unanimous = markerSet(opts.UnanimousMarkers)
	}
	result := &LoadResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := documentExtensions[ext]; !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		s, err := LoadFile(path, unanimous)
		if err != nil {
			var bad *MalformedSessionError
			if !errors.As(err, &bad) {
				bad = malformed(path, "unreadable", err)
			}
			result.Skipped = append(result.Skipped, bad)
			attrs := []logging.Attr{
				logging.String(logging.FieldDocument, path),
				logging.String("reason", bad.Reason),
				logging.String(logging.FieldErrorHint, "fix or remove the document and rerun"),
				logging.String(logging.FieldImpact, "session excluded from attendance and deliberation totals"),
			}
			if bad.Err != nil {
				attrs = append(attrs, logging.Error(bad.Err))
			}
			logging.WarnWithContext(logger, "session document skipped", "session_skipped", attrs...)
			continue
		}
		logger.Debug("session document loaded",
			logging.String(logging.FieldDocument, path),
			logging.String(logging.FieldSessionDate, s.DateString()),
			logging.Int("attendees", len(s.Attendees)),
			logging.Int("deliberations", len(s.Deliberations)),
		)
		result.Sessions = append(result.Sessions, s)
	}

	SortByDate(result.Sessions)
	logger.Info("session documents loaded",
		logging.String("dir", dir),
		logging.Int("sessions", len(result.Sessions)),
		logging.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// LoadFile decodes a single session document. The unanimous predicate decides
// which vote modes mean "adopted unanimously"; nil treats none as such.
func LoadFile(path string, unanimous func(string) bool) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, malformed(path, "read document", err)
	}
	return Parse(path, data, unanimous)
}

// Parse decodes document bytes. The format is picked from the path extension;
// anything other than .yaml/.yml is decoded as JSON.
func Parse(path string, data []byte, unanimous func(string) bool) (Session, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Session{}, malformed(path, "empty document", nil)
	}
	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Session{}, malformed(path, "decode yaml", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Session{}, malformed(path, "decode json", err)
		}
	}
	return doc.toSession(path, unanimous)
}

// SortByDate orders sessions chronologically, breaking ties by source path so
// the order never depends on directory listing order.
func SortByDate(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].Source < sessions[j].Source
	})
}

func markerSet(markers []string) func(string) bool {
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			set[m] = struct{}{}
		}
	}
	return func(mode string) bool {
		_, ok := set[strings.ToUpper(strings.TrimSpace(mode))]
		return ok
	}
}
