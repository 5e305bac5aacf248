package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	HelplineCategoryGovernment     = "government"
	HelplineCategoryNGO            = "ngo"
	HelplineCategoryPlaceOfWorship = "place_of_worship"
)

// HelplineText holds the localized display strings of a helpline entry.
type HelplineText struct {
	OrgName  string `json:"org_name" bson:"org_name"`
	District string `json:"district,omitempty" bson:"district,omitempty"`
}

// Helpline is a directory entry of an organization offering assistance.
// District is the canonical English district name used as the lookup key;
// the Language map carries per-language display strings. A state-wide entry
// has IsStateWide set and no district.
type Helpline struct {
	ID          primitive.ObjectID      `json:"id" bson:"_id,omitempty"`
	District    string                  `json:"district,omitempty" bson:"district,omitempty"`
	IsStateWide bool                    `json:"is_state_wide" bson:"is_state_wide"`
	Contact     string                  `json:"contact" bson:"contact"`
	Category    string                  `json:"category,omitempty" bson:"category,omitempty"`
	Language    map[string]HelplineText `json:"language" bson:"language"`
}

// LocalizedOrgName returns the organization name for the given language,
// falling back to English when the language has no entry.
func (h Helpline) LocalizedOrgName(lang string) string {
	if text, ok := h.Language[lang]; ok && text.OrgName != "" {
		return text.OrgName
	}
	if text, ok := h.Language["en"]; ok {
		return text.OrgName
	}
	return ""
}

// LocalizedDistrict returns the district display string for the given
// language, falling back to the canonical district name.
func (h Helpline) LocalizedDistrict(lang string) string {
	if text, ok := h.Language[lang]; ok && text.District != "" {
		return text.District
	}
	return h.District
}
