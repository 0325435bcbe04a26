// Package repository loads event collections from disk.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/lfgmenu/internal/domain/model"
	"github.com/okian/lfgmenu/internal/domain/types"
	"github.com/okian/lfgmenu/pkg/logger"
	"github.com/okian/lfgmenu/pkg/metrics"
)

// Collection names used in logs and metrics.
const (
	CollectionTeam   = "team"
	CollectionLeague = "league"
)

// Store provides read access to the event collections of a run.
type Store interface {
	// TeamEvents returns the team event collection in authoring order.
	TeamEvents(ctx context.Context) ([]model.GroupEvent, error)
	// LeagueEvents returns the league event collection in authoring order.
	LeagueEvents(ctx context.Context) ([]model.GroupEvent, error)
}

// FileStore reads each collection from a JSON or YAML file. Nothing is
// cached; every call reads the file again.
type FileStore struct {
	teamPath   string
	leaguePath string
	scheme     types.TipScheme
	logger     logger.Logger
}

// NewFileStore creates a FileStore with configuration options.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		teamPath:   "properties/team_events.json",
		leaguePath: "properties/league_events.json",
		scheme:     types.SchemeFlat,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// TeamEvents loads the team collection.
func (s *FileStore) TeamEvents(ctx context.Context) ([]model.GroupEvent, error) {
	return s.load(ctx, CollectionTeam, s.teamPath)
}

// LeagueEvents loads the league collection.
func (s *FileStore) LeagueEvents(ctx context.Context) ([]model.GroupEvent, error) {
	return s.load(ctx, CollectionLeague, s.leaguePath)
}

func (s *FileStore) load(ctx context.Context, collection, path string) ([]model.GroupEvent, error) {
	events, err := LoadFile(path, s.scheme)
	if err != nil {
		return nil, fmt.Errorf("%s collection: %w", collection, err)
	}
	metrics.RecordEventsLoaded(collection, len(events))
	s.logger.Debug(ctx, "loaded event collection",
		logger.String("collection", collection), logger.String("path", path), logger.Int("events", len(events)))
	return events, nil
}

// LoadFile reads and decodes one collection file. The format is chosen by
// extension: .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string, scheme types.TipScheme) ([]model.GroupEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var records []model.Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		records, err = decodeYAML(raw)
	default:
		records, err = decodeJSON(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	events := make([]model.GroupEvent, 0, len(records))
	for i, r := range records {
		ev, err := r.Event(scheme)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", ErrLoad, path, i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeJSON(raw []byte) ([]model.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var records *[]model.Record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, ErrNotSequence
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	if err := checkKeyCase(raw); err != nil {
		return nil, err
	}
	return *records, nil
}

// Field names of the serialized records, as written by authors.
var (
	recordKeys = []string{
		"type", "name", "level_requirement", "merits", "team_size",
		"requirements", "rewards", "league_size", "location", "tips",
	}
	tipKeys = []string{"type", "name", "content"}
)

// checkKeyCase rejects keys that name a field only when case is ignored.
// encoding/json would otherwise bind "NAME" to name.
func checkKeyCase(raw []byte) error {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	for i, rec := range records {
		if err := matchKeys(rec, recordKeys); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		var tips []map[string]json.RawMessage
		if err := json.Unmarshal(rec["tips"], &tips); err != nil {
			// Shape errors were already reported by the typed decode.
			continue
		}
		for j, tip := range tips {
			if err := matchKeys(tip, tipKeys); err != nil {
				return fmt.Errorf("record %d: tip %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func matchKeys(obj map[string]json.RawMessage, fields []string) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, f := range fields {
			if k != f && strings.EqualFold(k, f) {
				return fmt.Errorf("%w: %q, want %q", ErrKeyCase, k, f)
			}
		}
	}
	return nil
}

func decodeYAML(raw []byte) ([]model.Record, error) {
	var records *[]model.Record
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, ErrNotSequence
	}
	return *records, nil
}
