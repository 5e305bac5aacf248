package geo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/punjabfloodrelief/relief-api/external/geoinfo"
	"github.com/punjabfloodrelief/relief-api/schema"
)

var (
	ErrNoGeoInfoFound = fmt.Errorf("no geo information found")
)

const (
	// preciseTimeout bounds the first, narrowly scoped lookup; totalTimeout
	// bounds the whole resolution including the relaxed retry. A lookup
	// fails over instead of hanging.
	preciseTimeout = 10 * time.Second
	totalTimeout   = 15 * time.Second
)

// preciseResultTypes restricts the first attempt to the administrative
// levels a location label is built from.
var preciseResultTypes = []string{"locality|administrative_area_level_2|administrative_area_level_1"}

// LocationResolver turns raw coordinates into a short human-readable label
// such as "Rajpura, Patiala, Punjab".
type LocationResolver interface {
	ResolveLabel(loc schema.Coordinates) (string, error)
}

type GeocodingLocationResolver struct {
	client geoinfo.GeoInfo
}

func NewGeocodingLocationResolver(client geoinfo.GeoInfo) *GeocodingLocationResolver {
	return &GeocodingLocationResolver{
		client: client,
	}
}

// ResolveLabel reverse geocodes with a restricted result set first and
// retries unrestricted within the remaining time budget when the precise
// attempt returns nothing.
func (g *GeocodingLocationResolver) ResolveLabel(loc schema.Coordinates) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), totalTimeout)
	defer cancel()

	preciseCtx, preciseCancel := context.WithTimeout(ctx, preciseTimeout)
	results, err := g.client.Geocode(preciseCtx, loc, preciseResultTypes)
	preciseCancel()

	if err != nil || len(results) == 0 {
		results, err = g.client.Geocode(ctx, loc, nil)
		if err != nil {
			return "", err
		}
	}

	if len(results) == 0 {
		return "", ErrNoGeoInfoFound
	}

	label := buildLabel(results[0])
	if label == "" {
		return "", ErrNoGeoInfoFound
	}

	return label, nil
}

// buildLabel joins the locality, district and state components of a
// geocoding result, most specific first.
func buildLabel(result maps.GeocodingResult) string {
	var locality, district, state string

	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "sublocality", "neighborhood", "locality":
				if locality == "" {
					locality = component.LongName
				}
			case "administrative_area_level_2":
				if district == "" {
					district = component.LongName
				}
			case "administrative_area_level_1":
				if state == "" {
					state = component.LongName
				}
			}
		}
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{locality, district, state} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}

// FallbackLabel is the coordinate-based location text used when reverse
// geocoding fails. Lookup failure never blocks a submission.
func FallbackLabel(loc schema.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", loc.Latitude, loc.Longitude)
}
