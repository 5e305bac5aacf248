package consts

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPunjabDistrictKey(t *testing.T) {
	expected := map[string]string{
		"Amritsar":                  "amritsar",
		"Fatehgarh Sahib":           "fatehgarh_sahib",
		"S.A.S. Nagar (Mohali)":     "sas_nagar_mohali",
		"Shahid Bhagat Singh Nagar": "shahid_bhagat_singh_nagar",
		"Tarn Taran":                "tarn_taran",
	}

	for district, key := range expected {
		k, err := PunjabDistrictKey(district)
		assert.NoError(t, err)
		assert.Equal(t, key, k)
	}

	_, err := PunjabDistrictKey("Chandigarh")
	assert.Error(t, err)
}

func TestPunjabDistricts(t *testing.T) {
	districts := PunjabDistricts()
	assert.Len(t, districts, len(PunjabDistrictPunjabi))
	assert.True(t, sort.StringsAreSorted(districts))

	for _, d := range districts {
		assert.True(t, IsPunjabDistrict(d))
		assert.NotEmpty(t, PunjabDistrictPunjabi[d])
	}
}

func TestIsPunjabDistrict(t *testing.T) {
	assert.True(t, IsPunjabDistrict("Patiala"))
	assert.False(t, IsPunjabDistrict("patiala"))
	assert.False(t, IsPunjabDistrict("Chandigarh"))
	assert.False(t, IsPunjabDistrict(""))
}
