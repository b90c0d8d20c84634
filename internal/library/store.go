package library

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"bookfinder/internal/httpx"
	"bookfinder/internal/platform/upstream"
)

type snapshot struct {
	libraries   []Library
	refreshedAt time.Time
}

// Stats describes the snapshot currently being served.
type Stats struct {
	Count       int       `json:"count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Store serves lookups from an immutable in-memory snapshot of the library
// list. Refresh builds a new snapshot and swaps it in whole, so readers see
// either the old list or the new one.
type Store struct {
	source Source

	refreshMu sync.Mutex

	mu   sync.RWMutex
	snap *snapshot
}

func NewStore(source Source) *Store {
	return &Store{source: source, snap: &snapshot{}}
}

func (s *Store) current() (*snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, fmt.Errorf("library snapshot missing: %w", upstream.ErrStateCorruption)
	}
	return s.snap, nil
}

// Refresh replaces the snapshot with a freshly fetched list. On failure the
// previous snapshot keeps serving.
func (s *Store) Refresh(ctx context.Context) (Stats, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	libs, err := s.source.FetchLibraries(ctx)
	if err != nil {
		slog.Error("library refresh failed", "error", err)
		return Stats{}, err
	}

	next := &snapshot{libraries: libs, refreshedAt: time.Now()}

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	slog.Info("library snapshot refreshed",
		"count", len(libs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return Stats{Count: len(libs), RefreshedAt: next.refreshedAt}, nil
}

func (s *Store) Stats() (Stats, error) {
	snap, err := s.current()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Count: len(snap.libraries), RefreshedAt: snap.refreshedAt}, nil
}

// FindByRegion returns page (0-based) of the libraries whose prefecture and
// city both match exactly. TotalCount counts every match.
func (s *Store) FindByRegion(prefecture, city string, pageSize, page int) (Chunk, error) {
	snap, err := s.current()
	if err != nil {
		return Chunk{}, err
	}

	var matched []Library
	for _, lib := range snap.libraries {
		if lib.Prefecture == prefecture && lib.City == city {
			matched = append(matched, lib)
		}
	}

	chunk := Chunk{Libraries: []Library{}, TotalCount: len(matched)}
	start, end := httpx.PageWindow(len(matched), pageSize, page)
	chunk.Libraries = append(chunk.Libraries, matched[start:end]...)
	return chunk, nil
}

// FindByName returns the first library with exactly this name.
func (s *Store) FindByName(name string) (Library, error) {
	snap, err := s.current()
	if err != nil {
		return Library{}, err
	}
	for _, lib := range snap.libraries {
		if lib.Name == name {
			return lib, nil
		}
	}
	return Library{}, fmt.Errorf("library %q: %w", name, ErrNotFound)
}

// ResolveNames looks up every name against one snapshot. Entry i is the
// first library named names[i], or nil when no library has that name.
func (s *Store) ResolveNames(names []string) ([]*Library, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Library, len(names))
	for _, name := range names {
		byName[name] = nil
	}
	for i := range snap.libraries {
		lib := &snap.libraries[i]
		if found, want := byName[lib.Name]; want && found == nil {
			byName[lib.Name] = lib
		}
	}

	out := make([]*Library, len(names))
	for i, name := range names {
		if lib := byName[name]; lib != nil {
			cp := *lib
			out[i] = &cp
		}
	}
	return out, nil
}

// RankByDistance returns up to limit libraries nearest to (lat, lng).
// Libraries at the same whole-meter distance keep snapshot order.
func (s *Store) RankByDistance(lat, lng float64, limit int) (Chunk, error) {
	snap, err := s.current()
	if err != nil {
		return Chunk{}, err
	}

	origin := Geocode{Lat: lat, Lng: lng}
	type ranked struct {
		lib  Library
		dist uint32
	}
	all := make([]ranked, len(snap.libraries))
	for i, lib := range snap.libraries {
		all[i] = ranked{lib: lib, dist: distanceKey(origin, lib.Geocode)}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].dist < all[j].dist
	})

	n := max(0, min(limit, len(all)))
	out := make([]Library, n)
	for i := range n {
		lib := all[i].lib
		d := all[i].dist
		lib.DistanceMeters = &d
		out[i] = lib
	}
	return Chunk{Libraries: out, TotalCount: n}, nil
}
