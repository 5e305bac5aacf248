package helpline

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/punjabfloodrelief/relief-api/consts"
	"github.com/punjabfloodrelief/relief-api/schema"
	"github.com/punjabfloodrelief/relief-api/store"
)

// ImportFile reads a helpline directory JSON file and loads it into the
// helplines collection. Entries must either be state-wide or name a known
// Punjab district.
func ImportFile(client *mongo.Client, dbName, jsonFile string) error {
	file, err := os.Open(jsonFile)
	if err != nil {
		return err
	}
	defer file.Close()

	var helplines []schema.Helpline
	if err := json.NewDecoder(file).Decode(&helplines); err != nil {
		return err
	}

	for i, h := range helplines {
		if err := validateEntry(h); err != nil {
			return fmt.Errorf("entry #%d: %s", i, err)
		}
	}

	imported, err := store.NewMongoStore(client, dbName).ImportHelplines(helplines)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"prefix":   "helpline",
		"imported": imported,
	}).Info("imported helpline entries")

	return nil
}

func validateEntry(h schema.Helpline) error {
	if h.Contact == "" {
		return fmt.Errorf("missing contact")
	}

	if text, ok := h.Language["en"]; !ok || text.OrgName == "" {
		return fmt.Errorf("missing english organization name")
	}

	if h.IsStateWide {
		return nil
	}

	if h.District == "" {
		return fmt.Errorf("missing district on a district-scoped entry")
	}
	if !consts.IsPunjabDistrict(h.District) {
		return fmt.Errorf("unknown district %q", h.District)
	}

	return nil
}
