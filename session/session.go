// Package session issues and persists the pseudo-anonymous tokens that
// scope "my requests" queries. A token is not a credential: anyone holding
// the string can act as that session.
package session

import (
	"fmt"
	"io/ioutil"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	logPrefix   = "session"
	tokenPrefix = "session_"
)

// tokenCheck accepts tokens of the form session_<unix-ms>_<suffix>.
var tokenCheck = regexp.MustCompile(`^session_[0-9]+_[0-9a-z]+$`)

// Generate returns a fresh session token: a fixed prefix, the current unix
// millisecond time and a short random suffix. Collisions are negligible at
// this application's scale.
func Generate() string {
	suffix := strings.Replace(uuid.New().String(), "-", "", -1)[:9]
	return fmt.Sprintf("%s%d_%s", tokenPrefix, time.Now().UnixNano()/int64(time.Millisecond), suffix)
}

// IsValid reports whether a client-supplied string looks like a token this
// system issued.
func IsValid(token string) bool {
	return tokenCheck.MatchString(token)
}

// Provider hands out one stable session token per installation, persisted
// in a local file. When the file cannot be read or written it degrades to
// a fresh in-memory token instead of failing.
type Provider struct {
	mu    sync.Mutex
	path  string
	token string
}

func NewProvider(path string) *Provider {
	return &Provider{
		path: path,
	}
}

// SessionID returns the persisted token, creating and storing a new one on
// first use. Repeated calls within a provider lifetime return the same
// token even when storage is unavailable.
func (p *Provider) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" {
		return p.token
	}

	if data, err := ioutil.ReadFile(p.path); err == nil {
		token := strings.TrimSpace(string(data))
		if IsValid(token) {
			p.token = token
			return p.token
		}
	}

	p.token = Generate()
	if err := ioutil.WriteFile(p.path, []byte(p.token), 0600); err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Warn("persist session token")
	}

	return p.token
}

// Clear forgets the persisted token so the next call starts a new session.
func (p *Provider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	_ = os.Remove(p.path)
}
