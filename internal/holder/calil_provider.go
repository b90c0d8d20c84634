package holder

import (
	"context"
	"log/slog"
)

type branchKey struct {
	systemID string
	libKey   string
}

// CalilProvider resolves names against the library snapshot and runs a
// single availability job covering every distinct library system.
type CalilProvider struct {
	libraries LibraryResolver
	checker   Checker
}

func NewCalilProvider(libraries LibraryResolver, checker Checker) *CalilProvider {
	return &CalilProvider{libraries: libraries, checker: checker}
}

// Query returns one Holder per requested name, in request order and with
// duplicates kept. Names that do not resolve, or that the job did not
// report on, are Nothing.
func (p *CalilProvider) Query(ctx context.Context, isbn string, names []string) (Chunk, error) {
	libs, err := p.libraries.ResolveNames(names)
	if err != nil {
		return Chunk{}, err
	}

	resolved := make([]*branchKey, len(names))
	var systemIDs []string
	seen := make(map[string]bool)

	for i, lib := range libs {
		if lib == nil {
			continue
		}
		resolved[i] = &branchKey{systemID: lib.SystemID, libKey: lib.LibKey}
		if !seen[lib.SystemID] {
			seen[lib.SystemID] = true
			systemIDs = append(systemIDs, lib.SystemID)
		}
	}

	states := make(map[branchKey]State)
	if len(systemIDs) > 0 {
		job, err := p.checker.Check(ctx, isbn, systemIDs)
		if err != nil {
			return Chunk{}, err
		}
		for _, st := range job.Statuses {
			key := branchKey{systemID: st.SystemID, libKey: st.LibKey}
			if _, dup := states[key]; !dup {
				states[key] = ParseState(st.Token)
			}
		}
		slog.Debug("holder query complete",
			"isbn", isbn,
			"systems", len(systemIDs),
			"rounds", job.Rounds,
		)
	}

	chunk := Chunk{Holders: make([]Holder, len(names)), TotalCount: len(names)}
	for i, name := range names {
		state := Nothing
		if key := resolved[i]; key != nil {
			state = states[*key]
		}
		chunk.Holders[i] = Holder{ISBN: isbn, LibraryName: name, State: state}
	}
	return chunk, nil
}
