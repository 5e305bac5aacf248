package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/punjabfloodrelief/relief-api/schema"
	"github.com/punjabfloodrelief/relief-api/store"
	"github.com/punjabfloodrelief/relief-api/utils"
)

const defaultPageSize = int64(10)

// submitRequest is the API for submitting a help request
func (s *Server) submitRequest(c *gin.Context) {
	sessionID := c.GetString("session_id")

	var params schema.HelpRequestParams
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	request, err := s.mongoStore.RequestHelp(params, sessionID)
	if err != nil {
		switch err {
		case store.ErrLocationRequired:
			abortWithEncoding(c, http.StatusBadRequest, errorLocationRequired)
		case store.ErrInvalidContactNumber:
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidContactNumber)
		case store.ErrTypeOfHelpRequired:
			abortWithEncoding(c, http.StatusBadRequest, errorTypeOfHelpRequired)
		case store.ErrUnknownHelpType:
			abortWithEncoding(c, http.StatusBadRequest, errorUnknownHelpType)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	lang := utils.NormalizeLanguage(c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, gin.H{
		"request": request,
		"message": utils.Localize(lang, "request_submitted"),
	})
}

type listRequestsParams struct {
	Status   string `form:"status"`
	BeforeTS int64  `form:"before_ts"`
	BeforeID string `form:"before_id"`
	Limit    int64  `form:"limit"`
	All      bool   `form:"all"`
}

// listRequests is the public feed of help requests
func (s *Server) listRequests(c *gin.Context) {
	s.respondRequestList(c, "")
}

// listMyRequests is the owner-scoped feed. The session predicate is always
// applied; a feed without it would expose other sessions' records as the
// caller's own.
func (s *Server) listMyRequests(c *gin.Context) {
	s.respondRequestList(c, c.GetString("session_id"))
}

func (s *Server) respondRequestList(c *gin.Context, sessionID string) {
	var params listRequestsParams
	if err := c.Bind(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	switch params.Status {
	case "", schema.RequestStatusAll, schema.RequestStatusPending, schema.RequestStatusCompleted:
	default:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if params.Limit < 0 || params.BeforeTS < 0 {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	filter := store.RequestFilter{
		Status:    params.Status,
		SessionID: sessionID,
	}

	if params.All {
		requests, err := s.mongoStore.ListAllRequests(filter)
		if err != nil {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"requests": requests,
			"has_more": false,
		})
		return
	}

	limit := params.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	var cursor *store.RequestCursor
	if params.BeforeTS > 0 {
		id, err := primitive.ObjectIDFromHex(params.BeforeID)
		if err != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
			return
		}
		cursor = &store.RequestCursor{
			Timestamp: params.BeforeTS,
			ID:        id,
		}
	}

	requests, err := s.mongoStore.ListRequests(filter, cursor, limit)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	response := gin.H{
		"requests": requests,
		"has_more": int64(len(requests)) == limit,
	}
	if len(requests) > 0 {
		last := requests[len(requests)-1]
		response["cursor"] = gin.H{
			"before_ts": last.Timestamp,
			"before_id": last.ID.Hex(),
		}
	}

	c.JSON(http.StatusOK, response)
}

// completeRequest marks a pending request as completed. Completing an
// already completed request responds OK with the stored completion time so
// retries and concurrent callers converge on the same state.
func (s *Server) completeRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("requestID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	completedAt, err := s.mongoStore.MarkRequestCompleted(id)
	if err != nil && err != store.ErrRequestNotPending {
		if err == store.ErrRequestNotExist {
			abortWithEncoding(c, http.StatusNotFound, errorRequestNotExist)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	lang := utils.NormalizeLanguage(c.GetHeader("Accept-Language"))
	c.JSON(http.StatusOK, gin.H{
		"result":       "OK",
		"completed_at": completedAt,
		"message":      utils.Localize(lang, "request_completed"),
	})
}
