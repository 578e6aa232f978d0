package oauth1

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Nonce returns a fresh request nonce.
func Nonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Timestamp formats t as the oauth_timestamp value (Unix seconds).
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// BaseParams fills the reserved oauth_* parameters for a request signed
// with the given method, with a fresh nonce and the current timestamp.
// Callers add request-specific parameters on top before signing.
func BaseParams(consumerKey string, method SignatureMethod) map[string]string {
	return map[string]string{
		"oauth_consumer_key":     consumerKey,
		"oauth_timestamp":        Timestamp(time.Now()),
		"oauth_nonce":            Nonce(),
		"oauth_version":          "1.0",
		"oauth_signature_method": method.String(),
	}
}
