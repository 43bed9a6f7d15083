package dataavailability

import (
	"github.com/diwise/api-sos/internal/pkg/domain"
)

type referenceKind int

const (
	procedureRef referenceKind = iota
	propertyRef
	featureRef
	offeringRef
)

// requestContext interns the references of one GetDataAvailability request
// so that every record pointing at the same entity shares one ReferenceType,
// and owns the records collected for the response
type requestContext struct {
	references map[referenceKind]map[string]*domain.ReferenceType
	records    []*domain.DataAvailability
	collected  []*domain.DataAvailability
}

func newRequestContext() *requestContext {
	return &requestContext{
		references: map[referenceKind]map[string]*domain.ReferenceType{
			procedureRef: {},
			propertyRef:  {},
			featureRef:   {},
			offeringRef:  {},
		},
	}
}

func (c *requestContext) reference(kind referenceKind, ref domain.Reference) *domain.ReferenceType {
	if rt, ok := c.references[kind][ref.Identifier]; ok {
		return rt
	}

	title := ref.Name
	if title == "" {
		title = ref.Identifier
	}

	rt := &domain.ReferenceType{Href: ref.Identifier, Title: title}
	c.references[kind][ref.Identifier] = rt
	return rt
}

func (c *requestContext) newRecord(ds domain.Dataset) *domain.DataAvailability {
	return &domain.DataAvailability{
		Procedure:         c.reference(procedureRef, ds.Procedure),
		ObservedProperty:  c.reference(propertyRef, ds.Phenomenon),
		FeatureOfInterest: c.reference(featureRef, ds.Feature),
		Offering:          c.reference(offeringRef, ds.Offering),
		PhenomenonTime:    ds.Extent(),
	}
}

// add appends da, or merges its extent into an earlier record of the same
// constellation when dedup is set
func (c *requestContext) add(da *domain.DataAvailability, dedup bool) {
	if dedup {
		for _, existing := range c.records {
			if existing.SameConstellation(da) {
				existing.Merge(da, false)
				return
			}
		}
	}
	c.records = append(c.records, da)
}

type constellationKey struct {
	procedure, property, feature string
}

func keyOf(da *domain.DataAvailability) constellationKey {
	return constellationKey{da.Procedure.Href, da.ObservedProperty.Href, da.FeatureOfInterest.Href}
}

// freeze keeps a copy of the records collected from datasets. Parent
// records are built from these copies so that neither the order of the
// requested offerings nor earlier merges change what a parent receives.
func (c *requestContext) freeze() {
	c.collected = make([]*domain.DataAvailability, len(c.records))
	for i, da := range c.records {
		c.collected[i] = da.Copy()
	}
}

// aggregate adds a record for the parent offering per constellation found
// in any of its descendant offerings. A record the parent already has
// through its own datasets absorbs the children, otherwise a new one is
// created from the first contributing child. Synthesized parents are never
// merged into other parents.
func (c *requestContext) aggregate(parent domain.Reference, descendants []string) {
	inChild := make(map[string]bool, len(descendants))
	for _, d := range descendants {
		inChild[d] = true
	}

	parentRef := c.reference(offeringRef, parent)

	targets := map[constellationKey]*domain.DataAvailability{}
	for _, da := range c.records[:len(c.collected)] {
		if da.Offering == parentRef {
			if _, ok := targets[keyOf(da)]; !ok {
				targets[keyOf(da)] = da
			}
		}
	}

	for _, child := range c.collected {
		if !inChild[child.Offering.Href] {
			continue
		}

		key := keyOf(child)
		target, ok := targets[key]
		if !ok {
			target = child.Copy()
			target.Offering = parentRef
			targets[key] = target
			c.records = append(c.records, target)
			continue
		}

		target.Merge(child, true)
	}
}
