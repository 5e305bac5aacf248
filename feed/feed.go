// Package feed maintains the merged, incrementally paginated view of the
// help request collection that a single client displays: the public feed or
// the owner-scoped "my requests" view. A Feed belongs to one UI context and
// is not safe for concurrent use.
package feed

import (
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/punjabfloodrelief/relief-api/schema"
	"github.com/punjabfloodrelief/relief-api/store"
)

const logPrefix = "feed"

// DefaultPageSize matches the batch size the web client fetches with.
const DefaultPageSize = 10

// RequestSource is the slice of the store a Feed reads and writes through.
// store.MongoStore satisfies it.
type RequestSource interface {
	ListRequests(filter store.RequestFilter, cursor *store.RequestCursor, limit int64) ([]schema.HelpRequest, error)
	ListAllRequests(filter store.RequestFilter) ([]schema.HelpRequest, error)
	MarkRequestCompleted(id primitive.ObjectID) (int64, error)
}

type cacheKey struct {
	sessionID string
	status    string
}

type cacheEntry struct {
	requests []schema.HelpRequest
	cursor   *store.RequestCursor
	hasMore  bool
}

// Feed tracks the pages fetched so far, the cursor to resume from and
// whether another page may exist. Initial pages are cached per
// (owner, status) so switching between status filters does not refetch;
// the cache is dropped whenever a record is mutated through this feed.
type Feed struct {
	source   RequestSource
	pageSize int64

	// sessionID scopes the feed to records owned by one session. Empty
	// means the public view of all requests.
	sessionID string
	status    string

	requests  []schema.HelpRequest
	cursor    *store.RequestCursor
	hasMore   bool
	loadedAll bool

	cache map[cacheKey]cacheEntry
}

// New returns a feed over the given source. An empty sessionID produces
// the public feed; a non-empty one restricts every query to that owner.
func New(source RequestSource, pageSize int64, sessionID string) *Feed {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Feed{
		source:    source,
		pageSize:  pageSize,
		sessionID: sessionID,
		status:    schema.RequestStatusAll,
		hasMore:   true,
		cache:     make(map[cacheKey]cacheEntry),
	}
}

// Requests returns the records fetched so far, most recent first.
func (f *Feed) Requests() []schema.HelpRequest {
	return f.requests
}

// HasMore reports whether another page may exist. It is true when the last
// page came back full, which can over-report by exactly one empty page.
func (f *Feed) HasMore() bool {
	return f.hasMore && !f.loadedAll
}

// StatusFilter returns the active status filter.
func (f *Feed) StatusFilter() string {
	return f.status
}

// SetStatusFilter switches the status view and restarts pagination from
// the beginning. The old cursor is never reused under the new filter.
func (f *Feed) SetStatusFilter(status string) error {
	f.status = status
	f.requests = nil
	f.cursor = nil
	f.hasMore = true
	f.loadedAll = false
	return f.Refresh()
}

func (f *Feed) filter() store.RequestFilter {
	return store.RequestFilter{
		Status:    f.status,
		SessionID: f.sessionID,
	}
}

// Refresh fetches the first page, serving it from the cache when an
// unexpired entry exists for the current (owner, status) view.
func (f *Feed) Refresh() error {
	key := cacheKey{sessionID: f.sessionID, status: f.status}
	if entry, ok := f.cache[key]; ok {
		f.requests = entry.requests
		f.cursor = entry.cursor
		f.hasMore = entry.hasMore
		f.loadedAll = false
		return nil
	}

	page, err := f.source.ListRequests(f.filter(), nil, f.pageSize)
	if err != nil {
		return err
	}

	f.requests = page
	f.cursor = pageCursor(page)
	f.hasMore = int64(len(page)) == f.pageSize
	f.loadedAll = false

	f.cache[key] = cacheEntry{
		requests: page,
		cursor:   f.cursor,
		hasMore:  f.hasMore,
	}

	return nil
}

// LoadMore fetches the next page and appends it. Pages already fetched
// stay valid when a later page fails.
func (f *Feed) LoadMore() error {
	if !f.HasMore() {
		return nil
	}

	page, err := f.source.ListRequests(f.filter(), f.cursor, f.pageSize)
	if err != nil {
		return err
	}

	f.requests = append(f.requests, page...)
	if cursor := pageCursor(page); cursor != nil {
		f.cursor = cursor
	}
	f.hasMore = int64(len(page)) == f.pageSize

	return nil
}

// LoadAll replaces the paginated view with the entire filtered result set
// and disables further pagination.
func (f *Feed) LoadAll() error {
	requests, err := f.source.ListAllRequests(f.filter())
	if err != nil {
		return err
	}

	f.requests = requests
	f.cursor = nil
	f.hasMore = false
	f.loadedAll = true

	return nil
}

// MarkCompleted transitions a request to completed. The local entry is
// updated before the write so the UI reflects the change immediately; a
// store failure rolls the entry back. Completing an already completed
// request is a no-op. Any successful transition drops the page cache so no
// view serves the pre-transition status.
func (f *Feed) MarkCompleted(id primitive.ObjectID) error {
	idx := -1
	for i := range f.requests {
		if f.requests[i].ID == id {
			idx = i
			break
		}
	}

	var snapshot schema.HelpRequest
	if idx >= 0 {
		if f.requests[idx].Status == schema.RequestStatusCompleted {
			return nil
		}
		snapshot = f.requests[idx]
		f.requests[idx].Status = schema.RequestStatusCompleted
		f.requests[idx].CompletedAt = schema.TimestampNow()
	}

	completedAt, err := f.source.MarkRequestCompleted(id)
	if err == store.ErrRequestNotPending {
		// already in the target state, keep the optimistic update
		log.WithFields(log.Fields{
			"prefix":     logPrefix,
			"request ID": id.Hex(),
		}).Info("request already completed")
		if idx >= 0 && completedAt > 0 {
			f.requests[idx].CompletedAt = completedAt
		}
		f.invalidate()
		return nil
	}
	if err != nil {
		if idx >= 0 {
			f.requests[idx] = snapshot
		}
		return err
	}

	if idx >= 0 {
		f.requests[idx].CompletedAt = completedAt
	}
	f.invalidate()

	return nil
}

func (f *Feed) invalidate() {
	f.cache = make(map[cacheKey]cacheEntry)
}

func pageCursor(page []schema.HelpRequest) *store.RequestCursor {
	if len(page) == 0 {
		return nil
	}
	last := page[len(page)-1]
	return &store.RequestCursor{
		Timestamp: last.Timestamp,
		ID:        last.ID,
	}
}
