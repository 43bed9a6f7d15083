package capabilities

import (
	"context"
	"slices"
	"strconv"

	"github.com/diwise/api-sos/internal/pkg/application/cache"
	"github.com/diwise/api-sos/internal/pkg/application/operations"
	"github.com/diwise/api-sos/internal/pkg/application/ows"
	"github.com/diwise/api-sos/internal/pkg/application/profile"
	"github.com/diwise/api-sos/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-sos/svcs/capabilities")

var allSections = []string{
	domain.SectionServiceIdentification,
	domain.SectionServiceProvider,
	domain.SectionOperationsMetadata,
	domain.SectionFilterCapabilities,
	domain.SectionContents,
}

//go:generate moq -rm -out operationlister_mock.go . OperationLister
type OperationLister interface {
	Operations() []string
}

type Settings struct {
	Title                      string
	Abstract                   string
	Provider                   string
	URL                        string
	DefaultLocale              string
	ResponseFormats            []string
	ProcedureDescriptionFormat string
}

type Service struct {
	cache      *cache.Cache
	operations OperationLister
	profiles   profile.Handler
	settings   Settings
}

func NewService(c *cache.Cache, ops OperationLister, profiles profile.Handler, settings Settings) *Service {
	return &Service{
		cache:      c,
		operations: ops,
		profiles:   profiles,
		settings:   settings,
	}
}

func (s *Service) Handlers() []operations.Handler {
	return []operations.Handler{
		operations.For(s.GetCapabilities),
	}
}

// GetCapabilities answers from the content cache only and never touches
// the database
func (s *Service) GetCapabilities(ctx context.Context, req domain.GetCapabilitiesRequest) (resp *domain.GetCapabilitiesResponse, err error) {
	ctx, span := tracer.Start(ctx, "get-capabilities")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, _, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	sections, err := requestedSections(req.Sections)
	if err != nil {
		return nil, err
	}

	version := req.Version
	if version == "" {
		version = domain.Version200
	}

	snapshot := s.cache.Get()
	prof := s.profiles.Active()

	resp = &domain.GetCapabilitiesResponse{
		Version:        version,
		UpdateSequence: strconv.FormatInt(snapshot.UpdatedAt.Unix(), 10),
	}

	if sections[domain.SectionServiceIdentification] {
		resp.ServiceIdentification = &domain.ServiceIdentification{
			Title:              s.settings.Title,
			Abstract:           s.settings.Abstract,
			ServiceType:        domain.ServiceType,
			ServiceTypeVersion: []string{domain.Version100, domain.Version200},
			Profiles:           []string{prof.Identifier},
		}
	}

	if sections[domain.SectionServiceProvider] {
		resp.ServiceProvider = &domain.ServiceProvider{
			Name: s.settings.Provider,
			Site: s.settings.URL,
		}
	}

	if sections[domain.SectionOperationsMetadata] {
		resp.OperationsMetadata = s.operationsMetadata(snapshot, prof)
	}

	if sections[domain.SectionFilterCapabilities] {
		resp.FilterCapabilities = filterCapabilities()
	}

	if sections[domain.SectionContents] {
		resp.Contents = s.contents(snapshot, prof, s.locale(req.Language))
	}

	log.Debug().Int("offerings", len(resp.Contents)).Msg("capabilities assembled")

	return resp, nil
}

func requestedSections(requested []string) (map[string]bool, error) {
	sections := map[string]bool{}

	if len(requested) == 0 || slices.Contains(requested, domain.SectionAll) {
		for _, section := range allSections {
			sections[section] = true
		}
		return sections, nil
	}

	for _, section := range requested {
		if !slices.Contains(allSections, section) {
			return nil, ows.InvalidParameter("sections", "the section %s is not supported", section)
		}
		sections[section] = true
	}

	return sections, nil
}

func (s *Service) contents(snapshot *cache.Snapshot, prof profile.Profile, locale string) []domain.ObservationOffering {
	offerings := snapshot.Offerings()
	contents := make([]domain.ObservationOffering, 0, len(offerings))

	for _, o := range offerings {
		if len(o.Procedures) == 0 && len(o.Children) == 0 {
			continue
		}

		offering := domain.ObservationOffering{
			Identifier:           o.Identifier,
			Name:                 o.LocalizedName(locale),
			Description:          o.Description,
			Procedures:           o.Procedures,
			ObservableProperties: o.ObservableProperties,
			ObservationTypes:     o.ObservationTypes,
			ResponseFormats:      s.settings.ResponseFormats,
			Parents:              o.Parents,
			Children:             o.Children,
			ObservedArea:         o.Envelope,
			PhenomenonTime:       o.PhenomenonTime,
			ResultTime:           o.ResultTime,
		}

		if prof.ListFeaturesInOfferings {
			offering.FeaturesOfInterest = o.Features
		}

		contents = append(contents, offering)
	}

	return contents
}

func (s *Service) operationsMetadata(snapshot *cache.Snapshot, prof profile.Profile) []domain.OperationMetadata {
	offerings := make([]string, 0)
	for _, o := range snapshot.Offerings() {
		offerings = append(offerings, o.Identifier)
	}

	features := []string{}
	if prof.ListFeaturesInOfferings {
		features = snapshot.Features
	}

	parameters := map[string][]domain.Parameter{
		domain.OperationGetCapabilities: {
			{Name: "sections", AllowedValues: append(slices.Clone(allSections), domain.SectionAll)},
		},
		domain.OperationDescribeSensor: {
			{Name: "procedure", AllowedValues: snapshot.Procedures},
			{Name: "procedureDescriptionFormat", AllowedValues: []string{s.settings.ProcedureDescriptionFormat}},
		},
		domain.OperationGetObservation: {
			{Name: "offering", AllowedValues: offerings},
			{Name: "observedProperty", AllowedValues: snapshot.ObservableProperties},
			{Name: "procedure", AllowedValues: snapshot.Procedures},
			{Name: "featureOfInterest", AllowedValues: features},
			{Name: "responseFormat", AllowedValues: s.settings.ResponseFormats},
		},
		domain.OperationGetFeatureOfInterest: {
			{Name: "featureOfInterest", AllowedValues: features},
			{Name: "observedProperty", AllowedValues: snapshot.ObservableProperties},
			{Name: "procedure", AllowedValues: snapshot.Procedures},
		},
		domain.OperationGetDataAvailability: {
			{Name: "offering", AllowedValues: offerings},
			{Name: "observedProperty", AllowedValues: snapshot.ObservableProperties},
			{Name: "procedure", AllowedValues: snapshot.Procedures},
			{Name: "responseFormat", AllowedValues: []string{domain.GDAVersion10Namespace, domain.GDAVersion20Namespace}},
		},
		domain.OperationGetResult: {
			{Name: "offering", AllowedValues: offerings},
			{Name: "observedProperty", AllowedValues: snapshot.ObservableProperties},
		},
		domain.OperationGetResultTemplate: {
			{Name: "offering", AllowedValues: offerings},
			{Name: "observedProperty", AllowedValues: snapshot.ObservableProperties},
		},
	}

	metadata := []domain.OperationMetadata{}
	for _, op := range s.operations.Operations() {
		metadata = append(metadata, domain.OperationMetadata{
			Name:       op,
			URL:        s.settings.URL,
			Parameters: parameters[op],
		})
	}

	return metadata
}

func filterCapabilities() *domain.FilterCapabilities {
	return &domain.FilterCapabilities{
		SpatialOperators: []domain.SpatialOperator{domain.SpatialBBOX, domain.SpatialEquals},
		TemporalOperators: []domain.TemporalOperator{
			domain.TimeAfter, domain.TimeBefore, domain.TimeDuring, domain.TimeEquals,
			domain.TimeBegins, domain.TimeBegunBy, domain.TimeEnds, domain.TimeEndedBy,
			domain.TimeOverlaps,
		},
		ComparisonOperators: []domain.ComparisonOperator{domain.PropertyIsLike},
	}
}

func (s *Service) locale(requested string) string {
	if requested != "" {
		return requested
	}
	return s.settings.DefaultLocale
}
