package consts

import (
	"fmt"
	"sort"
	"strings"
)

var PunjabDistrictPunjabi map[string]string

func init() {
	PunjabDistrictPunjabi = make(map[string]string)

	PunjabDistrictPunjabi["Amritsar"] = "ਅਮ੍ਰਿਤਸਰ"
	PunjabDistrictPunjabi["Barnala"] = "ਬਰਨਾਲਾ"
	PunjabDistrictPunjabi["Bathinda"] = "ਬਠਿੰਡਾ"
	PunjabDistrictPunjabi["Faridkot"] = "ਫਰੀਦਕੋਟ"
	PunjabDistrictPunjabi["Fatehgarh Sahib"] = "ਫਤਿਹਗੜ੍ਹ ਸਾਹਿਬ"
	PunjabDistrictPunjabi["Fazilka"] = "ਫਾਜ਼ਿਲਕਾ"
	PunjabDistrictPunjabi["Ferozepur"] = "ਫਿਰੋਜ਼ਪੁਰ"
	PunjabDistrictPunjabi["Gurdaspur"] = "ਗੁਰਦਾਸਪੁਰ"
	PunjabDistrictPunjabi["Hoshiarpur"] = "ਹੋਸ਼ਿਆਰਪੁਰ"
	PunjabDistrictPunjabi["Jalandhar"] = "ਜਲੰਧਰ"
	PunjabDistrictPunjabi["Kapurthala"] = "ਕਪੂਰਥਲਾ"
	PunjabDistrictPunjabi["Ludhiana"] = "ਲੁਧਿਆਣਾ"
	PunjabDistrictPunjabi["Malerkotla"] = "ਮਲੇਰਕੋਟਲਾ"
	PunjabDistrictPunjabi["Mansa"] = "ਮਾਨਸਾ"
	PunjabDistrictPunjabi["Moga"] = "ਮੋਗਾ"
	PunjabDistrictPunjabi["Muktsar"] = "ਮੁਕਤਸਰ"
	PunjabDistrictPunjabi["Pathankot"] = "ਪਠਾਨਕੋਟ"
	PunjabDistrictPunjabi["Patiala"] = "ਪਟਿਆਲਾ"
	PunjabDistrictPunjabi["Rupnagar"] = "ਰੂਪਨਗਰ"
	PunjabDistrictPunjabi["S.A.S. Nagar (Mohali)"] = "ਸ. ਐ. ਐਸ. ਨਗਰ (ਮੋਹਾਲੀ)"
	PunjabDistrictPunjabi["Sangrur"] = "ਸੰਗਰੂਰ"
	PunjabDistrictPunjabi["Shahid Bhagat Singh Nagar"] = "ਸ਼ਹੀਦ ਭਗਤ ਸਿੰਘ ਨਗਰ"
	PunjabDistrictPunjabi["Tarn Taran"] = "ਟਰਨ ਤਾਰਨ"
}

// PunjabDistricts - the canonical district names, sorted
func PunjabDistricts() []string {
	districts := make([]string, 0, len(PunjabDistrictPunjabi))
	for d := range PunjabDistrictPunjabi {
		districts = append(districts, d)
	}
	sort.Strings(districts)
	return districts
}

// PunjabDistrictKey - convert a canonical district name into key
func PunjabDistrictKey(district string) (string, error) {
	if _, ok := PunjabDistrictPunjabi[district]; !ok {
		return "", fmt.Errorf("%s not exist", district)
	}

	key := strings.ToLower(district)
	for _, c := range []string{".", "(", ")"} {
		key = strings.Replace(key, c, "", -1)
	}
	key = strings.Join(strings.Fields(key), "_")
	return key, nil
}

// IsPunjabDistrict - check a canonical district name exists
func IsPunjabDistrict(district string) bool {
	_, ok := PunjabDistrictPunjabi[district]
	return ok
}
