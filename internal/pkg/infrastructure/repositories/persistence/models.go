package persistence

import (
	"time"

	"github.com/diwise/api-sos/internal/pkg/domain"
)

//Offering groups datasets. Offerings form a tree through OfferingRelation.
type Offering struct {
	ID          int64  `gorm:"primaryKey"`
	Identifier  string `gorm:"uniqueIndex;not null"`
	Name        string
	Description string
}

func (Offering) TableName() string {
	return "offerings"
}

//OfferingRelation ...
type OfferingRelation struct {
	ParentID int64 `gorm:"primaryKey;autoIncrement:false"`
	ChildID  int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (OfferingRelation) TableName() string {
	return "offering_hierarchy"
}

//Procedure ...
type Procedure struct {
	ID                  int64  `gorm:"primaryKey"`
	Identifier          string `gorm:"uniqueIndex;not null"`
	Name                string
	Description         string
	DescriptionFormat   string
	DescriptionDocument string
	Deleted             bool
}

func (Procedure) TableName() string {
	return "procedures"
}

//Phenomenon is an observable property, composite phenomena have children
//in phenomenon_hierarchy
type Phenomenon struct {
	ID          int64  `gorm:"primaryKey"`
	Identifier  string `gorm:"uniqueIndex;not null"`
	Name        string
	Description string
}

func (Phenomenon) TableName() string {
	return "phenomena"
}

//PhenomenonRelation ...
type PhenomenonRelation struct {
	ParentID int64 `gorm:"primaryKey;autoIncrement:false"`
	ChildID  int64 `gorm:"primaryKey;autoIncrement:false"`
}

func (PhenomenonRelation) TableName() string {
	return "phenomenon_hierarchy"
}

//Feature is a feature of interest. The geometry is stored as an envelope
//with X as longitude/easting, a point has min == max.
type Feature struct {
	ID          int64  `gorm:"primaryKey"`
	Identifier  string `gorm:"uniqueIndex;not null"`
	Name        string
	Description string
	FeatureType string
	SRID        int
	MinX        *float64
	MinY        *float64
	MaxX        *float64
	MaxY        *float64
}

func (Feature) TableName() string {
	return "features"
}

func (f Feature) Envelope() *domain.Envelope {
	if f.MinX == nil || f.MinY == nil || f.MaxX == nil || f.MaxY == nil {
		return nil
	}
	e := domain.NewEnvelope(*f.MinX, *f.MinY, *f.MaxX, *f.MaxY, f.SRID)
	return &e
}

func (f Feature) ToDomain() domain.Feature {
	return domain.Feature{
		Identifier:  f.Identifier,
		Name:        f.Name,
		Description: f.Description,
		FeatureType: f.FeatureType,
		Geometry:    f.Envelope(),
	}
}

//Dataset is one time series. The tuple of procedure, phenomenon, feature,
//offering and value type is unique.
type Dataset struct {
	ID               int64  `gorm:"primaryKey"`
	ProcedureID      int64  `gorm:"uniqueIndex:idx_dataset_constellation;not null"`
	PhenomenonID     int64  `gorm:"uniqueIndex:idx_dataset_constellation;not null"`
	FeatureID        int64  `gorm:"uniqueIndex:idx_dataset_constellation;not null"`
	OfferingID       int64  `gorm:"uniqueIndex:idx_dataset_constellation;not null"`
	ValueType        string `gorm:"uniqueIndex:idx_dataset_constellation;not null"`
	Unit             string
	Description      string
	FirstValueAt     *time.Time
	LastValueAt      *time.Time
	ObservationCount int64
	Deleted          bool
	Published        bool
	Hidden           bool

	Procedure  Procedure
	Phenomenon Phenomenon
	Feature    Feature
	Offering   Offering
}

func (Dataset) TableName() string {
	return "datasets"
}

//Observation is a single value of a dataset
type Observation struct {
	ID                  int64     `gorm:"primaryKey"`
	DatasetID           int64     `gorm:"index;not null"`
	Identifier          *string   `gorm:"index"`
	PhenomenonTimeStart time.Time `gorm:"index"`
	PhenomenonTimeEnd   time.Time
	ResultTime          time.Time
	ValidTimeStart      *time.Time
	ValidTimeEnd        *time.Time
	ValueQuantity       *float64
	ValueCount          *int64
	ValueBoolean        *bool
	ValueText           *string
	ValueCodespace      *string
	ValueHref           *string
	ValueTitle          *string
	ValueGeometry       *string
	ParentID            *int64 `gorm:"index"`
	VerticalFrom        *float64
	VerticalTo          *float64
	Deleted             bool
}

func (Observation) TableName() string {
	return "observations"
}

// ToDomain converts the row into a domain observation with the value type
// and unit of its dataset
func (o Observation) ToDomain(valueType domain.ValueType, unit string) domain.Observation {
	obs := domain.Observation{
		ID:             o.ID,
		DatasetID:      o.DatasetID,
		PhenomenonTime: domain.NewPeriod(o.PhenomenonTimeStart, o.PhenomenonTimeEnd),
		ParentID:       o.ParentID,
		VerticalFrom:   o.VerticalFrom,
		VerticalTo:     o.VerticalTo,
		Value: domain.Value{
			Type:      valueType,
			Unit:      unit,
			Quantity:  o.ValueQuantity,
			Count:     o.ValueCount,
			Boolean:   o.ValueBoolean,
			Text:      o.ValueText,
			Codespace: o.ValueCodespace,
			Href:      o.ValueHref,
			Title:     o.ValueTitle,
			Geometry:  o.ValueGeometry,
		},
	}

	if o.Identifier != nil {
		obs.Identifier = *o.Identifier
	}

	if !o.ResultTime.IsZero() {
		rt := o.ResultTime.UTC()
		obs.ResultTime = &rt
	}

	if o.ValidTimeStart != nil && o.ValidTimeEnd != nil {
		vt := domain.NewPeriod(*o.ValidTimeStart, *o.ValidTimeEnd)
		obs.ValidTime = &vt
	}

	return obs
}

// InferValueType guesses the value type from the populated value column,
// used for profile children that carry no dataset of their own
func (o Observation) InferValueType() domain.ValueType {
	switch {
	case o.ValueQuantity != nil:
		return domain.QuantityValue
	case o.ValueCount != nil:
		return domain.CountValue
	case o.ValueBoolean != nil:
		return domain.BooleanValue
	case o.ValueGeometry != nil:
		return domain.GeometryValue
	case o.ValueHref != nil:
		return domain.ReferencedValue
	case o.ValueCodespace != nil:
		return domain.CategoryValue
	}
	return domain.TextValue
}

//ResultTemplate ...
type ResultTemplate struct {
	ID           int64  `gorm:"primaryKey"`
	Identifier   string `gorm:"uniqueIndex;not null"`
	OfferingID   int64  `gorm:"index;not null"`
	PhenomenonID int64  `gorm:"index;not null"`
	ProcedureID  int64
	FeatureID    *int64
	Structure    string
	Encoding     string

	Offering   Offering
	Phenomenon Phenomenon
	Procedure  Procedure
	Feature    *Feature
}

func (ResultTemplate) TableName() string {
	return "result_templates"
}

//I18n holds the translated name and description of a reference entity
type I18n struct {
	ID          int64  `gorm:"primaryKey"`
	EntityID    int64  `gorm:"index;not null"`
	Locale      string `gorm:"not null"`
	Name        string
	Description string
}

type OfferingI18n struct{ I18n }

func (OfferingI18n) TableName() string { return "offering_i18n" }

type ProcedureI18n struct{ I18n }

func (ProcedureI18n) TableName() string { return "procedure_i18n" }

type PhenomenonI18n struct{ I18n }

func (PhenomenonI18n) TableName() string { return "phenomenon_i18n" }

type FeatureI18n struct{ I18n }

func (FeatureI18n) TableName() string { return "feature_i18n" }

// Models lists every table in migration order
func Models() []any {
	return []any{
		&Offering{},
		&OfferingRelation{},
		&Procedure{},
		&Phenomenon{},
		&PhenomenonRelation{},
		&Feature{},
		&Dataset{},
		&Observation{},
		&ResultTemplate{},
		&OfferingI18n{},
		&ProcedureI18n{},
		&PhenomenonI18n{},
		&FeatureI18n{},
	}
}
