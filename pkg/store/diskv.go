// Package store persists the board's documents in a diskv-backed
// key-document store. Documents are addressed by (collection, documentId):
// day snapshots live in the "tallies" collection keyed by date, the shared
// custom-type list and display order live in "globalSettings".
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/marszhhx/recare-tally/pkg/tally"
)

const (
	// CollectionTallies holds one document per civil day, id = YYYY-MM-DD.
	CollectionTallies = "tallies"
	// CollectionSettings holds the shared settings documents.
	CollectionSettings = "globalSettings"

	// DocCustomTypes is the settings document holding the custom tally list.
	DocCustomTypes = "customTallyTypes"
	// DocOrder is the settings document holding the display order.
	DocOrder = "tallyOrder"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("store: document not found")

// Persistence is the persistence contract for the board. The store is the
// source of truth; in-memory state is a cache re-derived from it on load.
type Persistence interface {
	Snapshot(ctx context.Context, dateKey string) (*tally.Snapshot, error)
	PutSnapshot(snap *tally.Snapshot) error
	Snapshots(ctx context.Context) []*tally.Snapshot
	CustomTypes(ctx context.Context) ([]string, error)
	PutCustomTypes(types []string, at tally.Timestamp) error
	Order(ctx context.Context) ([]string, error)
	PutOrder(order []string, at tally.Timestamp) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// settingsDoc is the on-disk shape of both globalSettings documents; only
// one of the two lists is populated per document.
type settingsDoc struct {
	CustomTallyTypes []string        `json:"customTallyTypes,omitempty"`
	TallyOrder       []string        `json:"tallyOrder,omitempty"`
	UpdatedAt        tally.Timestamp `json:"updatedAt"`
}

func (p *persistence) Snapshot(_ context.Context, dateKey string) (*tally.Snapshot, error) {
	val, err := p.d.Read(toKey(CollectionTallies, dateKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read snapshot %s: %w", dateKey, err)
	}
	snap := &tally.Snapshot{}
	if err := json.Unmarshal(val, snap); err != nil {
		return nil, fmt.Errorf("store: decode snapshot %s: %w", dateKey, err)
	}
	if snap.Date == "" {
		snap.Date = dateKey
	}
	if snap.Tallies == nil {
		snap.Tallies = tally.Counts{}
	}
	return snap, nil
}

func (p *persistence) PutSnapshot(snap *tally.Snapshot) error {
	if snap == nil || snap.Date == "" {
		return errors.New("store: snapshot date key required")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: encode snapshot %s: %w", snap.Date, err)
	}
	if err := p.d.Write(toKey(CollectionTallies, snap.Date), data); err != nil {
		return fmt.Errorf("store: write snapshot %s: %w", snap.Date, err)
	}
	return nil
}

// Snapshots returns every day document, sorted ascending by date key.
// Documents that fail to decode are reported on stderr and skipped rather
// than failing the whole listing.
func (p *persistence) Snapshots(ctx context.Context) []*tally.Snapshot {
	all := make([]*tally.Snapshot, 0)
	for key := range p.d.Keys(ctx.Done()) {
		collection, id, ok := fromKey(key)
		if !ok || collection != CollectionTallies {
			continue
		}
		snap, err := p.Snapshot(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, snap)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date < all[j].Date
	})
	return all
}

func (p *persistence) CustomTypes(_ context.Context) ([]string, error) {
	doc, err := p.readSettings(DocCustomTypes)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.CustomTallyTypes, nil
}

func (p *persistence) PutCustomTypes(types []string, at tally.Timestamp) error {
	return p.writeSettings(DocCustomTypes, &settingsDoc{
		CustomTallyTypes: append([]string{}, types...),
		UpdatedAt:        at,
	})
}

func (p *persistence) Order(_ context.Context) ([]string, error) {
	doc, err := p.readSettings(DocOrder)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.TallyOrder, nil
}

func (p *persistence) PutOrder(order []string, at tally.Timestamp) error {
	return p.writeSettings(DocOrder, &settingsDoc{
		TallyOrder: append([]string{}, order...),
		UpdatedAt:  at,
	})
}

// readSettings returns nil with no error when the document does not exist;
// a missing settings document reads as an empty list.
func (p *persistence) readSettings(id string) (*settingsDoc, error) {
	val, err := p.d.Read(toKey(CollectionSettings, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read settings %s: %w", id, err)
	}
	doc := &settingsDoc{}
	if err := json.Unmarshal(val, doc); err != nil {
		return nil, fmt.Errorf("store: decode settings %s: %w", id, err)
	}
	return doc, nil
}

func (p *persistence) writeSettings(id string, doc *settingsDoc) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode settings %s: %w", id, err)
	}
	if err := p.d.Write(toKey(CollectionSettings, id), data); err != nil {
		return fmt.Errorf("store: write settings %s: %w", id, err)
	}
	return nil
}

// Keys are `collection/documentId`, mapped to one directory per collection.
// Date keys contain dashes, so the separator must not be "-".
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}

func toKey(collection, id string) string {
	return fmt.Sprintf("%s/%s", collection, id)
}

func fromKey(key string) (collection, id string, ok bool) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
