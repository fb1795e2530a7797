// Package scenarios loads the canned scenario library consumed by the
// simulated-mode rule cascade. Entries are validated once at load time and
// immutable afterwards.
package scenarios

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeremyyuAWS/lyzr-copilot/internal/core"
)

//go:embed scenarios.json
var embedded []byte

// Library is an id-keyed, order-preserving set of scenarios.
type Library struct {
	byID  map[string]*core.Scenario
	order []string
}

type libraryFile struct {
	Scenarios []core.Scenario `json:"scenarios"`
}

// LoadEmbedded loads the library shipped with the binary.
func LoadEmbedded() (*Library, error) {
	return load(embedded)
}

// LoadFile loads a scenario library override from disk.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.DataError{Reason: fmt.Sprintf("failed to read scenario file: %v", err)}
	}
	return load(data)
}

func load(data []byte) (*Library, error) {
	var file libraryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &core.DataError{Reason: fmt.Sprintf("invalid scenario JSON: %v", err)}
	}
	if len(file.Scenarios) == 0 {
		return nil, &core.DataError{Reason: "scenario library is empty"}
	}

	lib := &Library{byID: make(map[string]*core.Scenario, len(file.Scenarios))}
	for i := range file.Scenarios {
		s := file.Scenarios[i]
		if err := validate(&s); err != nil {
			return nil, err
		}
		if _, dup := lib.byID[s.ID]; dup {
			return nil, &core.DataError{ScenarioID: s.ID, Reason: "duplicate scenario id"}
		}
		s.Response.EnsureDefaults()
		lib.byID[s.ID] = &s
		lib.order = append(lib.order, s.ID)
	}

	return lib, nil
}

func validate(s *core.Scenario) error {
	if s.ID == "" {
		return &core.DataError{Reason: "scenario is missing an id"}
	}
	if s.Input == "" {
		return &core.DataError{ScenarioID: s.ID, Reason: "scenario is missing its example input"}
	}
	if s.Response.Intent == "" {
		return &core.DataError{ScenarioID: s.ID, Reason: "scenario response is missing an intent"}
	}
	if s.Response.Routing == "" {
		return &core.DataError{ScenarioID: s.ID, Reason: "scenario response is missing a routing"}
	}
	if s.Response.Confidence < 0 || s.Response.Confidence > 1 {
		return &core.DataError{ScenarioID: s.ID, Reason: "scenario confidence is outside [0,1]"}
	}
	for _, m := range s.Response.KBMatches {
		if m.Confidence < 0 || m.Confidence > 1 {
			return &core.DataError{ScenarioID: s.ID, Reason: fmt.Sprintf("kb match %q confidence is outside [0,1]", m.Title)}
		}
	}
	return nil
}

// Get returns the scenario with the given id.
func (l *Library) Get(id string) (*core.Scenario, bool) {
	s, ok := l.byID[id]
	return s, ok
}

// All returns the scenarios in library order.
func (l *Library) All() []*core.Scenario {
	out := make([]*core.Scenario, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// Len reports the number of loaded scenarios.
func (l *Library) Len() int {
	return len(l.order)
}
