// Package cache keeps the content of the capabilities document in memory.
// The feeder rebuilds it from the database and installs every new version
// as one immutable snapshot.
package cache

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/diwise/api-sos/internal/pkg/domain"
)

type Offering struct {
	Identifier           string
	Name                 string
	Names                map[string]string
	Description          string
	Parents              []string
	Children             []string
	Procedures           []string
	ObservableProperties []string
	Features             []string
	ObservationTypes     []string
	Envelope             *domain.Envelope
	PhenomenonTime       domain.TimePeriod
	ResultTime           domain.TimePeriod
}

// LocalizedName returns the name of the offering in locale, falling back to
// the untranslated name
func (o Offering) LocalizedName(locale string) string {
	if name, ok := o.Names[locale]; ok && name != "" {
		return name
	}
	return o.Name
}

// Snapshot must not be modified once it has been installed
type Snapshot struct {
	offerings map[string]Offering

	Procedures           []string
	ObservableProperties []string
	CompositePhenomena   map[string][]string
	Features             []string
	Envelope             *domain.Envelope
	PhenomenonTime       domain.TimePeriod
	ResultTime           domain.TimePeriod
	UpdatedAt            time.Time
}

func newSnapshot(offerings map[string]Offering, phenomena map[string][]string, updatedAt time.Time) *Snapshot {
	s := &Snapshot{
		offerings:          offerings,
		CompositePhenomena: map[string][]string{},
		UpdatedAt:          updatedAt,
	}

	procedures := set{}
	properties := set{}
	features := set{}

	for _, o := range offerings {
		procedures.add(o.Procedures...)
		properties.add(o.ObservableProperties...)
		features.add(o.Features...)

		s.Envelope = domain.ExpandEnvelope(s.Envelope, o.Envelope)
		s.PhenomenonTime.ExtendToContain(o.PhenomenonTime)
		s.ResultTime.ExtendToContain(o.ResultTime)
	}

	for parent, children := range phenomena {
		s.CompositePhenomena[parent] = children
	}

	s.Procedures = procedures.sorted()
	s.ObservableProperties = properties.sorted()
	s.Features = features.sorted()

	return s
}

func (s *Snapshot) Offering(identifier string) (Offering, bool) {
	o, ok := s.offerings[identifier]
	return o, ok
}

// Offerings returns every cached offering ordered by identifier
func (s *Snapshot) Offerings() []Offering {
	result := make([]Offering, 0, len(s.offerings))
	for _, o := range s.offerings {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Identifier < result[j].Identifier })
	return result
}

func (s *Snapshot) IsEmpty() bool {
	return len(s.offerings) == 0
}

// Cache is read by every GetCapabilities request and written by the feeder
type Cache struct {
	current atomic.Pointer[Snapshot]
}

func New() *Cache {
	c := &Cache{}
	c.current.Store(newSnapshot(map[string]Offering{}, nil, time.Time{}))
	return c
}

func (c *Cache) Get() *Snapshot {
	return c.current.Load()
}

func (c *Cache) install(s *Snapshot) {
	c.current.Store(s)
}

type set map[string]struct{}

func (s set) add(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

func (s set) sorted() []string {
	result := make([]string, 0, len(s))
	for v := range s {
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}
