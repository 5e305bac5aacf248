package session

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	token := Generate()
	assert.True(t, IsValid(token), "generated token %q should be valid", token)

	another := Generate()
	assert.NotEqual(t, token, another)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("session_1756600000000_a1b2c3d4e"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("session__abc"))
	assert.False(t, IsValid("sess_1756600000000_a1b2c3d4e"))
	assert.False(t, IsValid("session_1756600000000_"))
}

func TestProviderPersistsToken(t *testing.T) {
	dir, err := ioutil.TempDir("", "session")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "session-id")

	p := NewProvider(path)
	token := p.SessionID()
	assert.True(t, IsValid(token))
	assert.Equal(t, token, p.SessionID())

	// a new provider over the same file resumes the same session
	p2 := NewProvider(path)
	assert.Equal(t, token, p2.SessionID())
}

func TestProviderIgnoresCorruptFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "session")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "session-id")
	assert.NoError(t, ioutil.WriteFile(path, []byte("not a token"), 0600))

	p := NewProvider(path)
	token := p.SessionID()
	assert.True(t, IsValid(token))
}

func TestProviderDegradesWithoutStorage(t *testing.T) {
	// a path that cannot be written still yields a stable in-memory token
	p := NewProvider(filepath.Join(string(os.PathSeparator), "nonexistent-dir", "session-id"))
	token := p.SessionID()
	assert.True(t, IsValid(token))
	assert.Equal(t, token, p.SessionID())
}

func TestProviderClear(t *testing.T) {
	dir, err := ioutil.TempDir("", "session")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "session-id")

	p := NewProvider(path)
	token := p.SessionID()

	p.Clear()
	assert.NotEqual(t, token, p.SessionID())
}
