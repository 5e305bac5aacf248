package store

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/punjabfloodrelief/relief-api/schema"
)

// helplineImportBatchSize is the upper bound the store imposes on a single
// atomic batch write. Larger imports are split into sequential batches.
const helplineImportBatchSize = 500

var (
	ErrEmptyHelplineImport = fmt.Errorf("no helpline entries to import")
)

type HelplineStore interface {
	ListDistricts() ([]string, error)
	ListHelplines(district string) ([]schema.Helpline, error)
	ImportHelplines(helplines []schema.Helpline) (int, error)
}

// ListDistricts returns the sorted set of canonical district names that
// have at least one district-scoped helpline.
func (m *mongoDB) ListDistricts() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HelplineCollection)
	values, err := c.Distinct(ctx, "district", bson.M{"district": bson.M{"$ne": ""}})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("query helpline districts")
		return nil, err
	}

	districts := make([]string, 0, len(values))
	for _, v := range values {
		if d, ok := v.(string); ok && d != "" {
			districts = append(districts, d)
		}
	}
	sort.Strings(districts)

	return districts, nil
}

// ListHelplines returns the state-wide helplines followed by the ones
// scoped to the given district.
func (m *mongoDB) ListHelplines(district string) ([]schema.Helpline, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HelplineCollection)

	helplines := make([]schema.Helpline, 0)

	cur, err := c.Find(ctx, bson.M{"is_state_wide": true})
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &helplines); err != nil {
		return nil, err
	}

	if district != "" {
		cur, err := c.Find(ctx, bson.M{
			"district":      district,
			"is_state_wide": false,
		})
		if err != nil {
			return nil, err
		}

		districtHelplines := make([]schema.Helpline, 0)
		if err := cur.All(ctx, &districtHelplines); err != nil {
			return nil, err
		}
		helplines = append(helplines, districtHelplines...)
	}

	return helplines, nil
}

// ImportHelplines inserts directory entries in batches. Each batch commits
// atomically; batches are applied in sequence so a failure leaves earlier
// batches in place.
func (m *mongoDB) ImportHelplines(helplines []schema.Helpline) (int, error) {
	if len(helplines) == 0 {
		return 0, ErrEmptyHelplineImport
	}

	c := m.client.Database(m.database).Collection(schema.HelplineCollection)

	imported := 0
	for start := 0; start < len(helplines); start += helplineImportBatchSize {
		end := start + helplineImportBatchSize
		if end > len(helplines) {
			end = len(helplines)
		}

		models := make([]mongo.WriteModel, 0, end-start)
		for _, h := range helplines[start:end] {
			models = append(models, mongo.NewInsertOneModel().SetDocument(h))
		}

		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		result, err := c.BulkWrite(ctx, models)
		cancel()
		if err != nil {
			log.WithFields(log.Fields{
				"prefix":   mongoLogPrefix,
				"imported": imported,
				"error":    err,
			}).Error("bulk import helplines")
			return imported, err
		}

		imported += int(result.InsertedCount)
	}

	return imported, nil
}
