package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/punjabfloodrelief/relief-api/geo"
	"github.com/punjabfloodrelief/relief-api/schema"
)

type resolveLocationParams struct {
	Latitude  float64 `form:"lat" binding:"required"`
	Longitude float64 `form:"lng" binding:"required"`
	Accuracy  float64 `form:"accuracy"`
}

// resolveLocation reverse geocodes device coordinates into a location
// label for the request form. Lookup failure is not an error: the caller
// gets the coordinate fallback and can still submit.
func (s *Server) resolveLocation(c *gin.Context) {
	var params resolveLocationParams
	if err := c.Bind(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	loc := schema.Coordinates{
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		Accuracy:  params.Accuracy,
	}

	if s.locationResolver != nil {
		if label, err := s.locationResolver.ResolveLabel(loc); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"location": label,
				"fallback": false,
			})
			return
		} else {
			c.Error(err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"location": geo.FallbackLabel(loc),
		"fallback": true,
	})
}
