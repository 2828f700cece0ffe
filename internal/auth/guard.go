package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/xmkt/marketplace/internal/model"
)

// DeleteKeyCost is the bcrypt cost for per-item delete keys. Tuned for
// interactive latency, same ballpark as a login check.
const DeleteKeyCost = 10

// Decision is the outcome of an authorization check. Master override and
// owner match are distinct so audit logs can tell them apart.
type Decision int

const (
	DecisionDenied Decision = iota
	DecisionMaster
	DecisionOwner
)

func (d Decision) String() string {
	switch d {
	case DecisionMaster:
		return "master"
	case DecisionOwner:
		return "owner"
	default:
		return "denied"
	}
}

// Authorized reports whether the decision grants access.
func (d Decision) Authorized() bool {
	return d != DecisionDenied
}

// HashDeleteKey returns the bcrypt hash of a caller-chosen delete key.
func HashDeleteKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), DeleteKeyCost)
	if err != nil {
		return "", fmt.Errorf("hashing delete key: %w", err)
	}
	return string(hash), nil
}

// Authorize checks a caller-supplied secret against the master key and,
// failing that, against the item's stored delete key hash. A wrong secret is
// not an error. Items without a stored hash (created before delete keys
// existed) are only ever authorized by the master key.
func Authorize(masterKey, provided string, item *model.Item) (Decision, error) {
	if provided == "" {
		return DecisionDenied, nil
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(masterKey)) == 1 {
		return DecisionMaster, nil
	}

	if item == nil || item.DeleteKeyHash == "" {
		return DecisionDenied, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(item.DeleteKeyHash), []byte(provided))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return DecisionDenied, nil
	}
	if err != nil {
		return DecisionDenied, fmt.Errorf("comparing delete key: %w", err)
	}
	return DecisionOwner, nil
}

// VerifySharedSecret checks a caller-presented header value against the
// shared API key or the master key. Used to gate endpoints independent of
// per-item ownership.
func VerifySharedSecret(provided, apiKey, masterKey string) bool {
	if provided == "" {
		return false
	}
	if apiKey != "" && subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1 {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(masterKey)) == 1
}
