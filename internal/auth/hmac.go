// Package auth computes the HMAC-SHA256 signatures used by the Advanced Trade API.
//
// A REST signature covers timestamp+method+resource+body concatenated without
// delimiters; a channel signature covers timestamp+channel+product ids joined by ",".
// Both are rendered as lowercase hex.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrEmptySecret is returned by NewKey for a zero-length secret.
var ErrEmptySecret = errors.New("auth: empty api secret")

// Key holds the signing secret. The zero value is unusable.
type Key struct {
	secret []byte
}

// NewKey copies secret into a Key.
func NewKey(secret string) (Key, error) {
	if secret == "" {
		return Key{}, ErrEmptySecret
	}
	return Key{secret: []byte(secret)}, nil
}

// Sign returns the REST signature for one request.
func (k Key) Sign(timestamp, method, resource, body string) string {
	return Sign(k.secret, timestamp, method, resource, body)
}

// SignChannel returns the signature for a channel subscription.
func (k Key) SignChannel(timestamp, channel string, ids []string) string {
	return SignChannel(k.secret, timestamp, channel, ids)
}

// Sign computes hex(HMAC-SHA256(secret, timestamp+method+resource+body)).
// It panics if secret is empty.
func Sign(secret []byte, timestamp, method, resource, body string) string {
	return digest(secret, timestamp, method, resource, body)
}

// SignChannel computes hex(HMAC-SHA256(secret, timestamp+channel+join(ids, ","))).
// It panics if secret is empty.
func SignChannel(secret []byte, timestamp, channel string, ids []string) string {
	return digest(secret, timestamp, channel, strings.Join(ids, ","))
}

func digest(secret []byte, parts ...string) string {
	if len(secret) == 0 {
		panic(ErrEmptySecret)
	}
	mac := hmac.New(sha256.New, secret)
	for _, p := range parts {
		mac.Write([]byte(p))
	}
	return hex.EncodeToString(mac.Sum(nil))
}
