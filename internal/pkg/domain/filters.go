package domain

type TemporalOperator string

const (
	TimeAfter        TemporalOperator = "After"
	TimeBefore       TemporalOperator = "Before"
	TimeBegins       TemporalOperator = "Begins"
	TimeBegunBy      TemporalOperator = "BegunBy"
	TimeContains     TemporalOperator = "TContains"
	TimeDuring       TemporalOperator = "During"
	TimeEndedBy      TemporalOperator = "EndedBy"
	TimeEnds         TemporalOperator = "Ends"
	TimeEquals       TemporalOperator = "TEquals"
	TimeMeets        TemporalOperator = "Meets"
	TimeMetBy        TemporalOperator = "MetBy"
	TimeOverlaps     TemporalOperator = "TOverlaps"
	TimeOverlappedBy TemporalOperator = "OverlappedBy"
)

// Indeterminate marks a temporal filter that asks for the first or latest
// observation instead of a time range
type Indeterminate string

const (
	Determinate Indeterminate = ""
	First       Indeterminate = "first"
	Latest      Indeterminate = "latest"
)

type TemporalFilter struct {
	Operator       TemporalOperator
	ValueReference string
	Time           TimePeriod
	Indeterminate  Indeterminate
}

func (f TemporalFilter) IsIndeterminate() bool {
	return f.Indeterminate != Determinate
}

type SpatialOperator string

const (
	SpatialBBOX       SpatialOperator = "BBOX"
	SpatialEquals     SpatialOperator = "Equals"
	SpatialIntersects SpatialOperator = "Intersects"
	SpatialWithin     SpatialOperator = "Within"
	SpatialContains   SpatialOperator = "Contains"
	SpatialDisjoint   SpatialOperator = "Disjoint"
	SpatialTouches    SpatialOperator = "Touches"
	SpatialOverlaps   SpatialOperator = "Overlaps"
	SpatialCrosses    SpatialOperator = "Crosses"
	SpatialDWithin    SpatialOperator = "DWithin"
	SpatialBeyond     SpatialOperator = "Beyond"
)

// SpatialFilter holds a filter geometry in the axis order of its SRID
type SpatialFilter struct {
	Operator       SpatialOperator
	ValueReference string
	Geometry       Envelope
}

// Filter is the common type of comparison and logic filters in a result filter tree
type Filter interface {
	filter()
}

type ComparisonOperator string

const (
	PropertyIsLike           ComparisonOperator = "PropertyIsLike"
	PropertyIsEqualTo        ComparisonOperator = "PropertyIsEqualTo"
	PropertyIsNotEqualTo     ComparisonOperator = "PropertyIsNotEqualTo"
	PropertyIsLessThan       ComparisonOperator = "PropertyIsLessThan"
	PropertyIsGreaterThan    ComparisonOperator = "PropertyIsGreaterThan"
	PropertyIsNull           ComparisonOperator = "PropertyIsNull"
	PropertyIsBetween        ComparisonOperator = "PropertyIsBetween"
	PropertyIsLessOrEqual    ComparisonOperator = "PropertyIsLessThanOrEqualTo"
	PropertyIsGreaterOrEqual ComparisonOperator = "PropertyIsGreaterThanOrEqualTo"
)

type ComparisonFilter struct {
	Operator       ComparisonOperator
	ValueReference string
	Value          string
	WildCard       string
	SingleChar     string
	EscapeString   string
	IgnoreCase     bool
}

func (ComparisonFilter) filter() {}

type LogicOperator string

const (
	And LogicOperator = "And"
	Or  LogicOperator = "Or"
)

type BinaryLogicFilter struct {
	Operator LogicOperator
	Filters  []Filter
}

func (BinaryLogicFilter) filter() {}
