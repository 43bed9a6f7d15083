// Package geometry normalises filter geometries to the reference system and
// axis order the feature geometries are stored in.
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diwise/api-sos/internal/pkg/domain"
)

const (
	WGS84       int = 4326
	ETRS89      int = 4258
	WebMercator int = 3857
	SWEREF99TM  int = 3006
)

// codes whose EPSG axis order is northing (latitude) first
var northingFirst = map[int]bool{
	WGS84:      true,
	ETRS89:     true,
	SWEREF99TM: true,
}

// codes that denote the same datum as WGS84 and therefore need no reprojection
var equivalent = map[int]int{
	ETRS89: WGS84,
}

type Handler struct {
	storageSRID int
}

func NewHandler(storageSRID int) *Handler {
	if storageSRID == 0 {
		storageSRID = WGS84
	}
	return &Handler{storageSRID: storageSRID}
}

func (h *Handler) StorageSRID() int {
	return h.storageSRID
}

func (h *Handler) IsNorthingFirst(srid int) bool {
	return northingFirst[srid]
}

// Normalize returns e in the storage reference system with X as the
// easting/longitude axis. Only reference systems that share the storage
// datum are accepted, anything else would require a reprojection.
func (h *Handler) Normalize(e domain.Envelope) (domain.Envelope, error) {
	srid := e.SRID
	if srid == 0 {
		srid = h.storageSRID
	}

	target := srid
	if eq, ok := equivalent[srid]; ok {
		target = eq
	}

	if target != h.storageSRID {
		return domain.Envelope{}, fmt.Errorf("reprojection from EPSG:%d to EPSG:%d is not supported", srid, h.storageSRID)
	}

	if h.IsNorthingFirst(srid) {
		return domain.NewEnvelope(e.MinY, e.MinX, e.MaxY, e.MaxX, h.storageSRID), nil
	}

	return domain.NewEnvelope(e.MinX, e.MinY, e.MaxX, e.MaxY, h.storageSRID), nil
}

// ParseSRID extracts the EPSG code from the CRS notations used by SOS
// clients, i.e. URNs, http URIs, EPSG:xxxx and bare codes
func ParseSRID(crs string) (int, error) {
	crs = strings.TrimSpace(crs)
	if crs == "" {
		return 0, fmt.Errorf("empty crs")
	}

	upper := strings.ToUpper(crs)
	if strings.HasSuffix(upper, "CRS84") {
		// CRS84 is WGS84 with longitude first, callers handle the axis order
		return -WGS84, nil
	}

	idx := strings.LastIndexAny(crs, ":/")
	code := crs[idx+1:]

	srid, err := strconv.Atoi(code)
	if err != nil || srid <= 0 {
		return 0, fmt.Errorf("unable to parse a srid from crs %q", crs)
	}

	return srid, nil
}

// EnvelopeFromCRS builds an envelope from corner coordinates given in the
// axis order of the crs
func EnvelopeFromCRS(coords []float64, crs string) (domain.Envelope, error) {
	if len(coords) != 4 {
		return domain.Envelope{}, fmt.Errorf("an envelope needs exactly four coordinates, got %d", len(coords))
	}

	srid := WGS84
	if crs != "" {
		var err error
		srid, err = ParseSRID(crs)
		if err != nil {
			return domain.Envelope{}, err
		}
	}

	if srid < 0 {
		// CRS84 (longitude, latitude), convert to EPSG:4326 axis order
		return domain.Envelope{MinX: coords[1], MinY: coords[0], MaxX: coords[3], MaxY: coords[2], SRID: -srid}, nil
	}

	return domain.Envelope{MinX: coords[0], MinY: coords[1], MaxX: coords[2], MaxY: coords[3], SRID: srid}, nil
}
