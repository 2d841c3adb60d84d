package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

const CookieName = "sf_sess"

// Cookies signs session ids with HMAC-SHA256.
type Cookies struct {
	key    []byte
	secure bool
	maxAge time.Duration
}

func NewCookies(key string, secure bool, maxAge time.Duration) *Cookies {
	if key == "" {
		key = "dev-insecure"
	}
	return &Cookies{key: []byte(key), secure: secure, maxAge: maxAge}
}

func (c *Cookies) sign(v string) string {
	h := hmac.New(sha256.New, c.key)
	h.Write([]byte(v))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (c *Cookies) Encode(id string) string {
	return c.sign(id) + "." + base64.RawURLEncoding.EncodeToString([]byte(id))
}

func (c *Cookies) Decode(value string) (string, error) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return "", errors.New("malformed session cookie")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", errors.New("malformed session cookie")
	}
	if !hmac.Equal([]byte(parts[0]), []byte(c.sign(string(payload)))) {
		return "", errors.New("bad session signature")
	}
	return string(payload), nil
}

// Read returns the session id carried by r, if the signature checks out.
func (c *Cookies) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	id, err := c.Decode(ck.Value)
	if err != nil {
		return "", false
	}
	return id, true
}

func (c *Cookies) Write(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    c.Encode(id),
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
