package store

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/punjabfloodrelief/relief-api/schema"
)

var (
	ErrLocationRequired     = fmt.Errorf("location is required")
	ErrInvalidContactNumber = fmt.Errorf("invalid contact number")
	ErrTypeOfHelpRequired   = fmt.Errorf("at least one type of help is required")
	ErrUnknownHelpType      = fmt.Errorf("unknown type of help")

	ErrRequestNotExist   = fmt.Errorf("the request does not exist")
	ErrRequestNotPending = fmt.Errorf("the request is no longer pending")
)

// RequestFilter selects a slice of the request collection. An empty or
// "all" status applies no status predicate. A non-empty SessionID limits
// the result to records owned by that session and is mandatory for the
// owner-scoped view.
type RequestFilter struct {
	Status    string
	SessionID string
}

// RequestCursor points after the last record of a previously fetched page.
// It is only meaningful under the same filter it was produced with.
type RequestCursor struct {
	Timestamp int64
	ID        primitive.ObjectID
}

type HelpRequestStore interface {
	RequestHelp(params schema.HelpRequestParams, sessionID string) (*schema.HelpRequest, error)
	GetRequest(id primitive.ObjectID) (*schema.HelpRequest, error)
	ListRequests(filter RequestFilter, cursor *RequestCursor, limit int64) ([]schema.HelpRequest, error)
	ListAllRequests(filter RequestFilter) ([]schema.HelpRequest, error)
	MarkRequestCompleted(id primitive.ObjectID) (int64, error)
}

// validateHelpRequestParams checks a submission before any document is
// written. Checks run in a fixed order and the first violation wins.
func validateHelpRequestParams(params schema.HelpRequestParams) error {
	if strings.TrimSpace(params.Location) == "" {
		return ErrLocationRequired
	}

	if !schema.ContactNumberCheck.MatchString(params.ContactNumber) {
		return ErrInvalidContactNumber
	}

	if len(params.TypeOfHelp) == 0 {
		return ErrTypeOfHelpRequired
	}

	for _, t := range params.TypeOfHelp {
		if _, ok := schema.HelpTypes[t]; !ok {
			return ErrUnknownHelpType
		}
	}

	return nil
}

// RequestHelp validates a submission and creates a pending help request
// owned by the given session. Validation failures are returned before any
// database call is made.
func (m *mongoDB) RequestHelp(params schema.HelpRequestParams, sessionID string) (*schema.HelpRequest, error) {
	if err := validateHelpRequestParams(params); err != nil {
		return nil, err
	}

	request := schema.HelpRequest{
		Name:          strings.TrimSpace(params.Name),
		Location:      strings.TrimSpace(params.Location),
		Coordinates:   params.Coordinates,
		ContactNumber: params.ContactNumber,
		TypeOfHelp:    params.TypeOfHelp,
		Description:   strings.TrimSpace(params.Description),
		SessionID:     sessionID,
		Status:        schema.RequestStatusPending,
		Timestamp:     schema.TimestampNow(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.RequestCollection)
	result, err := c.InsertOne(ctx, request)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("insert help request")
		return nil, err
	}

	request.ID = result.InsertedID.(primitive.ObjectID)
	return &request, nil
}

// GetRequest finds a help request by its ID.
func (m *mongoDB) GetRequest(id primitive.ObjectID) (*schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.RequestCollection)

	var request schema.HelpRequest
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRequestNotExist
		}
		return nil, err
	}

	return &request, nil
}

// ListRequests returns one page of help requests ordered by submission
// time, most recent first, with the object ID as tie-break so the order is
// total. A cursor continues a previous page; a zero limit disables paging.
func (m *mongoDB) ListRequests(filter RequestFilter, cursor *RequestCursor, limit int64) ([]schema.HelpRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := requestQuery(filter, cursor)

	opts := options.Find().SetSort(bson.D{
		{Key: "ts", Value: -1},
		{Key: "_id", Value: -1},
	})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	c := m.client.Database(m.database).Collection(schema.RequestCollection)
	cur, err := c.Find(ctx, query, opts)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("query help requests")
		return nil, err
	}

	requests := make([]schema.HelpRequest, 0)
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// ListAllRequests returns the entire filtered result set in one call.
func (m *mongoDB) ListAllRequests(filter RequestFilter) ([]schema.HelpRequest, error) {
	return m.ListRequests(filter, nil, 0)
}

// MarkRequestCompleted transitions a pending request to completed and
// stamps the completion time. The transition is one-way; marking an
// already completed request returns ErrRequestNotPending, which callers
// treat as a no-op since the record is already in the target state.
func (m *mongoDB) MarkRequestCompleted(id primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	completedAt := schema.TimestampNow()

	c := m.client.Database(m.database).Collection(schema.RequestCollection)
	result, err := c.UpdateOne(ctx,
		bson.M{
			"_id":    id,
			"status": schema.RequestStatusPending,
		},
		bson.M{
			"$set": bson.M{
				"status":       schema.RequestStatusCompleted,
				"completed_at": completedAt,
			},
		})
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":     mongoLogPrefix,
			"request ID": id.Hex(),
			"error":      err,
		}).Error("mark request completed")
		return 0, err
	}

	if result.MatchedCount == 0 {
		request, err := m.GetRequest(id)
		if err != nil {
			return 0, err
		}
		if request.Status == schema.RequestStatusCompleted {
			return request.CompletedAt, ErrRequestNotPending
		}
		return 0, ErrRequestNotExist
	}

	return completedAt, nil
}

func requestQuery(filter RequestFilter, cursor *RequestCursor) bson.M {
	query := bson.M{}

	if filter.Status != "" && filter.Status != schema.RequestStatusAll {
		query["status"] = filter.Status
	}

	if filter.SessionID != "" {
		query["session_id"] = filter.SessionID
	}

	if cursor != nil {
		query["$or"] = bson.A{
			bson.M{"ts": bson.M{"$lt": cursor.Timestamp}},
			bson.M{"ts": cursor.Timestamp, "_id": bson.M{"$lt": cursor.ID}},
		}
	}

	return query
}
