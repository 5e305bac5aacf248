package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/punjabfloodrelief/relief-api/api/mocks"
	"github.com/punjabfloodrelief/relief-api/schema"
	"github.com/punjabfloodrelief/relief-api/store"
)

const testSessionID = "session_1756600000000_a1b2c3d4e"

func testRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.sessionMiddleware())
	router.POST("/requests", s.submitRequest)
	router.GET("/requests", s.listRequests)
	router.GET("/requests/mine", s.listMyRequests)
	router.PATCH("/requests/:requestID/complete", s.completeRequest)
	return router
}

func TestSubmitRequest(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	created := &schema.HelpRequest{
		ID:            primitive.NewObjectID(),
		Location:      "Patiala",
		ContactNumber: "9876543210",
		TypeOfHelp:    []string{schema.HelpTypeFood},
		SessionID:     testSessionID,
		Status:        schema.RequestStatusPending,
		Timestamp:     1756600000000,
	}

	m.EXPECT().
		RequestHelp(gomock.Any(), testSessionID).
		Return(created, nil).
		Times(1)

	body := `{"location": "Patiala", "contact_number": "9876543210", "type_of_help": ["food"]}`
	req := httptest.NewRequest("POST", "/requests", strings.NewReader(body))
	req.Header.Set("X-Session-Id", testSessionID)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Request schema.HelpRequest `json:"request"`
		Message string             `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, schema.RequestStatusPending, resp.Request.Status)
	assert.Equal(t, testSessionID, resp.Request.SessionID)
	assert.Zero(t, resp.Request.CompletedAt)
	assert.NotEmpty(t, resp.Message)
}

func TestSubmitRequestValidationError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	m.EXPECT().
		RequestHelp(gomock.Any(), gomock.Any()).
		Return(nil, store.ErrInvalidContactNumber).
		Times(1)

	body := `{"location": "Patiala", "contact_number": "98765", "type_of_help": ["food"]}`
	req := httptest.NewRequest("POST", "/requests", strings.NewReader(body))
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1201), resp.Code)
}

func TestSessionIssuedWhenMissing(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	m.EXPECT().
		ListRequests(gomock.Any(), gomock.Nil(), int64(10)).
		Return([]schema.HelpRequest{}, nil).
		Times(1)

	req := httptest.NewRequest("GET", "/requests", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.NotEmpty(t, w.Header().Get("X-Session-Id"))
}

func TestListRequestsPage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	page := make([]schema.HelpRequest, 0, 10)
	for i := 0; i < 10; i++ {
		page = append(page, schema.HelpRequest{
			ID:        primitive.NewObjectID(),
			Location:  "Patiala",
			Status:    schema.RequestStatusPending,
			Timestamp: int64(1756600000000 - i*1000),
		})
	}

	var gotFilter store.RequestFilter
	m.EXPECT().
		ListRequests(gomock.Any(), gomock.Nil(), int64(10)).
		DoAndReturn(func(filter store.RequestFilter, cursor *store.RequestCursor, limit int64) ([]schema.HelpRequest, error) {
			gotFilter = filter
			return page, nil
		}).
		Times(1)

	req := httptest.NewRequest("GET", "/requests?status=pending", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Equal(t, schema.RequestStatusPending, gotFilter.Status)
	assert.Empty(t, gotFilter.SessionID, "public feed must not be owner scoped")

	var resp struct {
		Requests []schema.HelpRequest `json:"requests"`
		HasMore  bool                 `json:"has_more"`
		Cursor   struct {
			BeforeTS int64  `json:"before_ts"`
			BeforeID string `json:"before_id"`
		} `json:"cursor"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Requests, 10)
	assert.True(t, resp.HasMore)
	assert.Equal(t, page[9].Timestamp, resp.Cursor.BeforeTS)
	assert.Equal(t, page[9].ID.Hex(), resp.Cursor.BeforeID)
}

func TestListRequestsWithCursor(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	lastID := primitive.NewObjectID()

	var gotCursor *store.RequestCursor
	m.EXPECT().
		ListRequests(gomock.Any(), gomock.Any(), int64(5)).
		DoAndReturn(func(filter store.RequestFilter, cursor *store.RequestCursor, limit int64) ([]schema.HelpRequest, error) {
			gotCursor = cursor
			return []schema.HelpRequest{}, nil
		}).
		Times(1)

	req := httptest.NewRequest("GET", "/requests?before_ts=1756600000000&before_id="+lastID.Hex()+"&limit=5", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.NotNil(t, gotCursor)
	assert.Equal(t, int64(1756600000000), gotCursor.Timestamp)
	assert.Equal(t, lastID, gotCursor.ID)
}

func TestListRequestsAll(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	m.EXPECT().
		ListAllRequests(gomock.Any()).
		Return(make([]schema.HelpRequest, 37), nil).
		Times(1)

	req := httptest.NewRequest("GET", "/requests?all=true", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Requests []schema.HelpRequest `json:"requests"`
		HasMore  bool                 `json:"has_more"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Requests, 37)
	assert.False(t, resp.HasMore, "load all must disable pagination")
}

func TestListRequestsInvalidStatus(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	req := httptest.NewRequest("GET", "/requests?status=resolved", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestListMyRequestsScopedToSession(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	var gotFilter store.RequestFilter
	m.EXPECT().
		ListRequests(gomock.Any(), gomock.Nil(), int64(10)).
		DoAndReturn(func(filter store.RequestFilter, cursor *store.RequestCursor, limit int64) ([]schema.HelpRequest, error) {
			gotFilter = filter
			return []schema.HelpRequest{}, nil
		}).
		Times(1)

	req := httptest.NewRequest("GET", "/requests/mine", nil)
	req.Header.Set("X-Session-Id", testSessionID)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Equal(t, testSessionID, gotFilter.SessionID, "owner view must always carry the session predicate")
}

func TestCompleteRequest(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	id := primitive.NewObjectID()
	m.EXPECT().
		MarkRequestCompleted(id).
		Return(int64(1756600001000), nil).
		Times(1)

	req := httptest.NewRequest("PATCH", "/requests/"+id.Hex()+"/complete", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp["result"])
	assert.Equal(t, float64(1756600001000), resp["completed_at"])
}

func TestCompleteRequestAlreadyCompleted(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	id := primitive.NewObjectID()
	m.EXPECT().
		MarkRequestCompleted(id).
		Return(int64(1756600001000), store.ErrRequestNotPending).
		Times(1)

	req := httptest.NewRequest("PATCH", "/requests/"+id.Hex()+"/complete", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	// the record is already in the target state, so the retry succeeds
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
}

func TestCompleteRequestNotFound(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	id := primitive.NewObjectID()
	m.EXPECT().
		MarkRequestCompleted(id).
		Return(int64(0), store.ErrRequestNotExist).
		Times(1)

	req := httptest.NewRequest("PATCH", "/requests/"+id.Hex()+"/complete", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1300), resp.Code)
}

func TestCompleteRequestBadID(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockMongoStore(ctl)
	s := Server{mongoStore: m}

	req := httptest.NewRequest("PATCH", "/requests/not-an-id/complete", nil)
	w := httptest.NewRecorder()
	testRouter(&s).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}
