// Package profile holds the named sets of behavioural flags that change how
// observations and capabilities are presented to clients.
package profile

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v2"
)

const DefaultIdentifier string = "SOS_20_PROFILE"

type Profile struct {
	Identifier                                 string `yaml:"identifier"`
	ShowMetadataOfEmptyObservations            bool   `yaml:"showMetadataOfEmptyObservations"`
	ListFeaturesInOfferings                    bool   `yaml:"listFeaturesInOfferings"`
	OverallExtrema                             bool   `yaml:"overallExtrema"`
	ReturnLatestValueIfTemporalFilterIsMissing bool   `yaml:"returnLatestValueIfTemporalFilterIsMissing"`
}

func Default() Profile {
	return Profile{
		Identifier:              DefaultIdentifier,
		ListFeaturesInOfferings: true,
	}
}

//go:generate moq -rm -out handler_mock.go . Handler
type Handler interface {
	Active() Profile
}

type file struct {
	Active   string    `yaml:"activeProfile"`
	Profiles []Profile `yaml:"profiles"`
}

// Registry knows every configured profile and which one is active
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	active   string
}

func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{profiles: map[string]Profile{}}

	def := Default()
	r.profiles[def.Identifier] = def
	r.active = def.Identifier

	for _, p := range profiles {
		r.profiles[p.Identifier] = p
	}

	return r
}

// Load reads the profiles in the yaml file at path. An empty path yields a
// registry that only knows the default profile.
func Load(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile file %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

func Read(r io.Reader) (*Registry, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	pf := file{}
	if err = yaml.UnmarshalStrict(b, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	for _, p := range pf.Profiles {
		if p.Identifier == "" {
			return nil, fmt.Errorf("every profile needs an identifier")
		}
	}

	reg := NewRegistry(pf.Profiles...)

	if pf.Active != "" {
		if err = reg.Activate(pf.Active); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func (r *Registry) Active() Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[r.active]
}

func (r *Registry) Activate(identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[identifier]; !ok {
		return fmt.Errorf("no profile named %s", identifier)
	}

	r.active = identifier
	return nil
}

func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
