package holder

import (
	"context"
)

// CiNiiProvider reports academic libraries from the CiNii holder list.
// A library on the list Exists; every other name is Nothing.
type CiNiiProvider struct {
	source AcademicSource
}

func NewCiNiiProvider(source AcademicSource) *CiNiiProvider {
	return &CiNiiProvider{source: source}
}

func (p *CiNiiProvider) Query(ctx context.Context, isbn string, names []string) (Chunk, error) {
	holdings, err := p.source.Holders(ctx, isbn)
	if err != nil {
		return Chunk{}, err
	}

	present := make(map[string]bool, len(holdings.Libraries))
	for _, name := range holdings.Libraries {
		present[name] = true
	}

	chunk := Chunk{Holders: make([]Holder, len(names)), TotalCount: len(names)}
	for i, name := range names {
		state := Nothing
		if present[name] {
			state = Exists
		}
		chunk.Holders[i] = Holder{ISBN: isbn, LibraryName: name, State: state}
	}
	return chunk, nil
}
