package api

import (
	"github.com/gin-gonic/gin"

	"github.com/punjabfloodrelief/relief-api/session"
)

const sessionHeader = "X-Session-Id"

// sessionMiddleware reads the client session token and issues a fresh one
// when the client sent none. The token is echoed back on every response so
// the client can persist it. The token only scopes "my requests" queries;
// it authenticates nothing.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(sessionHeader)
		if !session.IsValid(token) {
			token = session.Generate()
		}

		c.Header(sessionHeader, token)
		c.Set("session_id", token)
		c.Next()
	}
}
