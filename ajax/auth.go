package ajax

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authorizer grants the settings capability to a request.
type Authorizer interface {
	Authorized(r *http.Request) bool
}

// TokenAuthorizer accepts requests carrying "Authorization: Bearer <Token>".
// An empty token denies every request.
type TokenAuthorizer struct {
	Token string
}

func (a TokenAuthorizer) Authorized(r *http.Request) bool {
	if a.Token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), []byte(a.Token)) == 1
}

// PasswordChecker compares a submitted password with a stored hash.
type PasswordChecker interface {
	Check(hash, password string) bool
}

// BcryptChecker checks bcrypt hashes.
type BcryptChecker struct{}

func (BcryptChecker) Check(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword hashes a restriction password for storage in the widget
// settings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
