package holder

import (
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned for a provider tag that is not registered.
var ErrUnknownProvider = errors.New("unknown holder provider")

// State is the availability of one book at one library.
type State int

const (
	Nothing State = iota
	Exists
	Reserved
	Borrowed
	Inplace
)

var stateNames = [...]string{
	Nothing:  "Nothing",
	Exists:   "Exists",
	Reserved: "Reserved",
	Borrowed: "Borrowed",
	Inplace:  "Inplace",
}

// statusTokens maps the catalog status vocabulary. Anything else is Nothing.
var statusTokens = map[string]State{
	"貸出可":  Exists,
	"蔵書あり": Exists,
	"予約中":  Reserved,
	"貸出中":  Borrowed,
	"館内のみ": Inplace,
}

// ParseState maps a raw status token by exact match.
func ParseState(token string) State {
	if s, ok := statusTokens[token]; ok {
		return s
	}
	return Nothing
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("invalid holder state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("invalid holder state %q", string(text))
}

// Holder is the availability of isbn at the named library.
type Holder struct {
	ISBN        string `json:"isbn"`
	LibraryName string `json:"library_name"`
	State       State  `json:"state"`
}

// Chunk is the answer to one holder query.
type Chunk struct {
	Holders    []Holder `json:"holders"`
	TotalCount int      `json:"total_count"`
}
