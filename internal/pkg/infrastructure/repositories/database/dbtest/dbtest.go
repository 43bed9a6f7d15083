// Package dbtest seeds in memory sqlite databases for package tests
package dbtest

import (
	"strings"
	"testing"
	"time"

	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-sos/internal/pkg/infrastructure/repositories/persistence"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewDB returns a migrated in memory database that is private to the test
// but shared between the connections of its pool
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := database.NewDatabaseConnection(
		database.NewSQLiteConnector("file:" + name + "?mode=memory&cache=shared"),
	)
	if err != nil {
		t.Fatalf("failed to create test database: %s", err.Error())
	}

	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func NewProvider(t testing.TB) (*database.Provider, *Fixture) {
	db := NewDB(t)
	return database.NewSessionProvider(db, 10, nil, zerolog.Nop()), NewFixture(t, db)
}

type Fixture struct {
	t           testing.TB
	db          *gorm.DB
	offerings   map[string]int64
	procedures  map[string]int64
	phenomena   map[string]int64
	features    map[string]int64
	observation int
}

func NewFixture(t testing.TB, db *gorm.DB) *Fixture {
	return &Fixture{
		t:          t,
		db:         db,
		offerings:  map[string]int64{},
		procedures: map[string]int64{},
		phenomena:  map[string]int64{},
		features:   map[string]int64{},
	}
}

func (f *Fixture) DB() *gorm.DB {
	return f.db
}

func (f *Fixture) must(err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("failed to seed test database: %s", err.Error())
	}
}

// Offering creates the offering if needed and links it as a child of parent
func (f *Fixture) Offering(identifier string, parent ...string) int64 {
	id, ok := f.offerings[identifier]
	if !ok {
		o := persistence.Offering{Identifier: identifier, Name: identifier}
		f.must(f.db.Create(&o).Error)
		id = o.ID
		f.offerings[identifier] = id
	}

	for _, p := range parent {
		f.must(f.db.Create(&persistence.OfferingRelation{ParentID: f.Offering(p), ChildID: id}).Error)
	}

	return id
}

func (f *Fixture) Procedure(identifier string) int64 {
	if id, ok := f.procedures[identifier]; ok {
		return id
	}
	p := persistence.Procedure{
		Identifier:          identifier,
		Name:                identifier,
		DescriptionFormat:   "http://www.opengis.net/sensorml/2.0",
		DescriptionDocument: "<sml:PhysicalSystem gml:id=\"" + identifier + "\"/>",
	}
	f.must(f.db.Create(&p).Error)
	f.procedures[identifier] = p.ID
	return p.ID
}

// Phenomenon creates the phenomenon if needed and links it as a child of
// the composite phenomena in parent
func (f *Fixture) Phenomenon(identifier string, parent ...string) int64 {
	id, ok := f.phenomena[identifier]
	if !ok {
		p := persistence.Phenomenon{Identifier: identifier, Name: identifier}
		f.must(f.db.Create(&p).Error)
		id = p.ID
		f.phenomena[identifier] = id
	}

	for _, p := range parent {
		f.must(f.db.Create(&persistence.PhenomenonRelation{ParentID: f.Phenomenon(p), ChildID: id}).Error)
	}

	return id
}

// Feature creates a point feature with lon/lat coordinates
func (f *Fixture) Feature(identifier string, lon, lat float64) int64 {
	if id, ok := f.features[identifier]; ok {
		return id
	}
	feature := persistence.Feature{
		Identifier:  identifier,
		Name:        identifier,
		FeatureType: "http://www.opengis.net/def/samplingFeatureType/OGC-OM/2.0/SF_SamplingPoint",
		SRID:        4326,
		MinX:        &lon,
		MinY:        &lat,
		MaxX:        &lon,
		MaxY:        &lat,
	}
	f.must(f.db.Create(&feature).Error)
	f.features[identifier] = feature.ID
	return feature.ID
}

func (f *Fixture) Translate(table string, entityID int64, locale, name string) {
	f.must(f.db.Table(table).Create(map[string]any{
		"entity_id": entityID,
		"locale":    locale,
		"name":      name,
	}).Error)
}

type Series struct {
	Procedure   string
	Phenomenon  string
	Feature     string
	Offering    string
	ValueType   string
	Unit        string
	Description string
	Hidden      bool
	Unpublished bool
	Deleted     bool
}

// Dataset creates an empty dataset. Features that have not been created
// before are placed at 17,62.
func (f *Fixture) Dataset(s Series) *persistence.Dataset {
	f.t.Helper()

	if s.ValueType == "" {
		s.ValueType = "quantity"
	}
	if _, ok := f.features[s.Feature]; !ok {
		f.Feature(s.Feature, 17.0, 62.0)
	}

	ds := &persistence.Dataset{
		ProcedureID:  f.Procedure(s.Procedure),
		PhenomenonID: f.Phenomenon(s.Phenomenon),
		FeatureID:    f.features[s.Feature],
		OfferingID:   f.Offering(s.Offering),
		ValueType:    s.ValueType,
		Unit:         s.Unit,
		Description:  s.Description,
		Published:    !s.Unpublished,
		Hidden:       s.Hidden,
		Deleted:      s.Deleted,
	}
	f.must(f.db.Create(ds).Error)
	return ds
}

type Value struct {
	Time       time.Time
	Quantity   float64
	Identifier string
	ParentID   *int64
}

// Observations inserts the values and updates the cached first/last
// timestamps and count of the dataset
func (f *Fixture) Observations(ds *persistence.Dataset, values ...Value) []persistence.Observation {
	f.t.Helper()

	rows := make([]persistence.Observation, 0, len(values))
	for _, v := range values {
		t := v.Time.UTC()
		q := v.Quantity
		o := persistence.Observation{
			DatasetID:           ds.ID,
			PhenomenonTimeStart: t,
			PhenomenonTimeEnd:   t,
			ResultTime:          t,
			ValueQuantity:       &q,
			ParentID:            v.ParentID,
		}
		if v.Identifier != "" {
			id := v.Identifier
			o.Identifier = &id
		}
		f.must(f.db.Create(&o).Error)
		rows = append(rows, o)

		if v.ParentID != nil {
			continue
		}
		if ds.FirstValueAt == nil || t.Before(*ds.FirstValueAt) {
			ds.FirstValueAt = &t
		}
		if ds.LastValueAt == nil || t.After(*ds.LastValueAt) {
			tt := t
			ds.LastValueAt = &tt
		}
		ds.ObservationCount++
	}

	f.must(f.db.Model(ds).Select("first_value_at", "last_value_at", "observation_count").Updates(ds).Error)
	return rows
}

// Series is a shorthand for a dataset with hourly values starting at start
func (f *Fixture) Series(s Series, start time.Time, quantities ...float64) *persistence.Dataset {
	ds := f.Dataset(s)
	values := make([]Value, 0, len(quantities))
	for i, q := range quantities {
		values = append(values, Value{Time: start.Add(time.Duration(i) * time.Hour), Quantity: q})
	}
	if len(values) > 0 {
		f.Observations(ds, values...)
	}
	return ds
}

func (f *Fixture) ResultTemplate(identifier, offering, phenomenon, procedure, structure, encoding string) {
	rt := persistence.ResultTemplate{
		Identifier:   identifier,
		OfferingID:   f.Offering(offering),
		PhenomenonID: f.Phenomenon(phenomenon),
		ProcedureID:  f.Procedure(procedure),
		Structure:    structure,
		Encoding:     encoding,
	}
	f.must(f.db.Create(&rt).Error)
}
