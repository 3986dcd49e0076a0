package ajax

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Nonce purposes.
const (
	NonceAjax      = "ajax-nonce"
	NonceChart     = "get_graphina_chart_settings"
	NonceDatatable = "get_jquery_datatable_data"
	NoncePassword  = "graphina_restrict_password_ajax"
)

const nonceLength = 20

// NonceManager mints and checks purpose scoped anti-forgery tokens. A token
// is valid for the tick it was minted in and the following one, a tick
// being half the lifetime.
type NonceManager struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewNonceManager(secret string, lifetime time.Duration) *NonceManager {
	if lifetime < 2 {
		lifetime = 24 * time.Hour
	}
	return &NonceManager{secret: []byte(secret), lifetime: lifetime, now: time.Now}
}

func (m *NonceManager) tick(t time.Time) int64 {
	return t.UnixNano()/int64(m.lifetime/2) + 1
}

func (m *NonceManager) sign(tick int64, purpose string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(strconv.FormatInt(tick, 10)))
	mac.Write([]byte{'|'})
	mac.Write([]byte(purpose))
	return hex.EncodeToString(mac.Sum(nil))[:nonceLength]
}

// Create mints a token for purpose.
func (m *NonceManager) Create(purpose string) string {
	return m.sign(m.tick(m.now()), purpose)
}

// Verify checks nonce against purpose.
func (m *NonceManager) Verify(nonce, purpose string) bool {
	if len(nonce) != nonceLength || len(m.secret) == 0 {
		return false
	}
	tick := m.tick(m.now())
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(nonce), []byte(m.sign(t, purpose))) {
			return true
		}
	}
	return false
}
