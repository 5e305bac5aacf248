package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/punjabfloodrelief/relief-api/schema"
	"github.com/punjabfloodrelief/relief-api/utils"
)

type helplineView struct {
	ID              string `json:"id"`
	OrgName         string `json:"org_name"`
	District        string `json:"district,omitempty"`
	DistrictDisplay string `json:"district_display,omitempty"`
	Contact         string `json:"contact"`
	Category        string `json:"category,omitempty"`
	IsStateWide     bool   `json:"is_state_wide"`
}

// listDistricts returns the canonical district names the directory knows
// about. The dropdown stays canonical regardless of display language.
func (s *Server) listDistricts(c *gin.Context) {
	districts, err := s.mongoStore.ListDistricts()
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"districts": districts})
}

// listHelplines returns the state-wide helplines plus the ones scoped to
// the requested district, localized per Accept-Language.
func (s *Server) listHelplines(c *gin.Context) {
	district := c.Query("district")
	lang := utils.NormalizeLanguage(c.GetHeader("Accept-Language"))

	helplines, err := s.mongoStore.ListHelplines(district)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	views := make([]helplineView, 0, len(helplines))
	for _, h := range helplines {
		views = append(views, localizeHelpline(h, lang))
	}

	response := gin.H{"helplines": views}
	if len(views) == 0 {
		response["message"] = utils.Localize(lang, "no_helplines_found")
	}

	c.JSON(http.StatusOK, response)
}

func localizeHelpline(h schema.Helpline, lang string) helplineView {
	return helplineView{
		ID:              h.ID.Hex(),
		OrgName:         h.LocalizedOrgName(lang),
		District:        h.District,
		DistrictDisplay: h.LocalizedDistrict(lang),
		Contact:         h.Contact,
		Category:        h.Category,
		IsStateWide:     h.IsStateWide,
	}
}
