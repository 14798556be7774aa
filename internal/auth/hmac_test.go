package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RFC 4231 test case 2: key "Jefe", data "what do ya want for nothing?".
const rfc4231Case2 = "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"

func TestSign_KnownVector(t *testing.T) {
	got := Sign([]byte("Jefe"), "what do ya", " want", " for", " nothing?")
	assert.Equal(t, rfc4231Case2, got)
}

func TestSign_ConcatenatesWithoutDelimiters(t *testing.T) {
	secret := []byte("secret")

	a := Sign(secret, "1700000000", "GET", "/api/v3/brokerage/accounts", "")
	b := Sign(secret, "1700000000GET", "", "/api/v3/brokerage/accounts", "")
	assert.Equal(t, a, b)
}

func TestSign_FieldOrder(t *testing.T) {
	secret := []byte("secret")
	const ts, path = "1700000000", "/api/v3/brokerage/accounts"

	want := Sign(secret, ts, "GET", path, "")
	assert.NotEqual(t, want, Sign(secret, "GET", ts, path, ""))
	assert.NotEqual(t, want, Sign(secret, ts, path, "GET", ""))
	assert.NotEqual(t, want, Sign(secret, path, "GET", ts, ""))
}

func TestSign_Deterministic(t *testing.T) {
	secret := []byte("secret")
	a := Sign(secret, "1700000000", "POST", "/api/v3/brokerage/orders", `{"a":1}`)
	b := Sign(secret, "1700000000", "POST", "/api/v3/brokerage/orders", `{"a":1}`)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", a)
}

func TestSign_InputSensitivity(t *testing.T) {
	secret := []byte("secret")
	base := Sign(secret, "1700000000", "GET", "/api/v3/brokerage/accounts", "")

	tests := []struct {
		name string
		got  string
	}{
		{"timestamp", Sign(secret, "1700000001", "GET", "/api/v3/brokerage/accounts", "")},
		{"method", Sign(secret, "1700000000", "POST", "/api/v3/brokerage/accounts", "")},
		{"resource", Sign(secret, "1700000000", "GET", "/api/v3/brokerage/orders", "")},
		{"body", Sign(secret, "1700000000", "GET", "/api/v3/brokerage/accounts", "{}")},
		{"secret", Sign([]byte("other"), "1700000000", "GET", "/api/v3/brokerage/accounts", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.got)
		})
	}
}

func TestSignChannel(t *testing.T) {
	secret := []byte("Jefe")

	got := SignChannel(secret, "what do ya", " want for", []string{" nothing?"})
	assert.Equal(t, rfc4231Case2, got)

	joined := SignChannel(secret, "1700000000", "level2", []string{"BTC-USD", "ETH-USD"})
	manual := Sign(secret, "1700000000", "level2", "BTC-USD,ETH-USD", "")
	assert.Equal(t, manual, joined)

	reordered := SignChannel(secret, "1700000000", "level2", []string{"ETH-USD", "BTC-USD"})
	assert.NotEqual(t, joined, reordered)

	single := SignChannel(secret, "1700000000", "level2", []string{"BTC-USD"})
	assert.NotEqual(t, Sign(secret, "1700000000", "GET", "level2", "BTC-USD"), single)
	assert.NotEqual(t, Sign(secret, "1700000000", "POST", "level2", "BTC-USD"), single)

	empty := SignChannel(secret, "1700000000", "heartbeats", nil)
	assert.Equal(t, Sign(secret, "1700000000", "heartbeats", "", ""), empty)
}

func TestSign_EmptySecretPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrEmptySecret, func() {
		Sign(nil, "1", "GET", "/", "")
	})
	assert.Panics(t, func() {
		SignChannel([]byte{}, "1", "ticker", []string{"BTC-USD"})
	})
	assert.Panics(t, func() {
		var k Key
		k.Sign("1", "GET", "/", "")
	})
}

func TestNewKey(t *testing.T) {
	_, err := NewKey("")
	assert.ErrorIs(t, err, ErrEmptySecret)

	key, err := NewKey("Jefe")
	require.NoError(t, err)
	assert.Equal(t, rfc4231Case2, key.Sign("what do ya", " want", " for", " nothing?"))
	assert.Equal(t, SignChannel([]byte("Jefe"), "1", "ticker", []string{"BTC-USD"}), key.SignChannel("1", "ticker", []string{"BTC-USD"}))
}
