// Package session implements transient flash messages carried in an
// encrypted cookie. Messages survive exactly one redirect: they are set
// on the response that redirects and popped by the next page load.
package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fernet/fernet-go"
)

const (
	cookieName = "flash"

	// flashTTL bounds how long a flash cookie stays decryptable. Anything
	// older is treated as absent.
	flashTTL = 5 * time.Minute
)

// Flash encrypts and signs flash messages with a fernet key so clients
// cannot read or forge them.
type Flash struct {
	key *fernet.Key
}

// NewFlash creates a flash store from a base64-encoded fernet key. An
// empty key generates an ephemeral one; messages then do not survive a
// process restart, which is acceptable for transient notices.
func NewFlash(encodedKey string) (*Flash, error) {
	if encodedKey == "" {
		key := new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, err
		}
		return &Flash{key: key}, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, err
	}
	return &Flash{key: key}, nil
}

// Add appends a message to the flash cookie on the response. Existing
// messages already queued on the request survive.
func (f *Flash) Add(w http.ResponseWriter, r *http.Request, message string) {
	messages := append(f.peek(r), message)
	payload, err := json.Marshal(messages)
	if err != nil {
		return
	}
	token, err := fernet.EncryptAndSign(payload, f.key)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    string(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns all pending messages and clears the cookie.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) []string {
	messages := f.peek(r)
	if messages != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return messages
}

// peek decrypts the flash cookie without clearing it. Tampered, expired
// or absent cookies all read as no messages.
func (f *Flash) peek(r *http.Request) []string {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	payload := fernet.VerifyAndDecrypt([]byte(cookie.Value), flashTTL, []*fernet.Key{f.key})
	if payload == nil {
		return nil
	}
	var messages []string
	if err := json.Unmarshal(payload, &messages); err != nil {
		return nil
	}
	return messages
}
