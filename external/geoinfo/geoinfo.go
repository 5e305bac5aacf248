package geoinfo

import (
	"context"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/punjabfloodrelief/relief-api/schema"
)

const logPrefix = "geoinfo"

// GeoInfo - interface to reverse geocode coordinates through google maps
type GeoInfo interface {
	Geocode(ctx context.Context, loc schema.Coordinates, resultTypes []string) ([]maps.GeocodingResult, error)
}

type geoInfo struct {
	client *maps.Client
}

// Geocode looks up the addresses covering a Lat,Lng pair. An empty
// resultTypes leaves the lookup unrestricted.
func (g geoInfo) Geocode(ctx context.Context, loc schema.Coordinates, resultTypes []string) ([]maps.GeocodingResult, error) {
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"lat":    loc.Latitude,
		"lng":    loc.Longitude,
	}).Info("query geo info")

	return g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		ResultType: resultTypes,
		Language:   "en",
	})
}

// New - new GeoInfo interface
func New(apiKey string) (GeoInfo, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("new map client")

		return nil, err
	}

	return &geoInfo{
		client: client,
	}, nil
}
