package oauth1

import (
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/arest/oauthkit/errx"
)

var sigErrors = errx.NewRegistry("OAUTH1")

// Error codes
var (
	ErrMissingParameter  = sigErrors.Register("MISSING_PARAMETER", errx.TypeValidation, http.StatusBadRequest, "Missing required signing parameter")
	ErrUnsupportedMethod = sigErrors.Register("UNSUPPORTED_METHOD", errx.TypeValidation, http.StatusBadRequest, "Unsupported signature method")
	ErrKeyLoad           = sigErrors.Register("KEY_LOAD", errx.TypeInternal, http.StatusInternalServerError, "Could not load RSA private key")
	ErrKeyParse          = sigErrors.Register("KEY_PARSE", errx.TypeInternal, http.StatusInternalServerError, "Could not parse RSA private key")
	ErrSigning           = sigErrors.Register("SIGNING", errx.TypeInternal, http.StatusInternalServerError, "RSA signing failed")
)

// SignatureMethod is the closed set of supported OAuth1 signature methods.
type SignatureMethod int

const (
	HMACSHA1 SignatureMethod = iota
	RSASHA1
	Plaintext
)

// String returns the RFC 5849 wire name of the method.
func (m SignatureMethod) String() string {
	switch m {
	case HMACSHA1:
		return "HMAC-SHA1"
	case RSASHA1:
		return "RSA-SHA1"
	case Plaintext:
		return "PLAINTEXT"
	default:
		return fmt.Sprintf("SignatureMethod(%d)", int(m))
	}
}

// ParseSignatureMethod maps a wire name onto a SignatureMethod. Unknown
// names yield a validation error naming the input.
func ParseSignatureMethod(s string) (SignatureMethod, error) {
	switch s {
	case "HMAC-SHA1":
		return HMACSHA1, nil
	case "RSA-SHA1":
		return RSASHA1, nil
	case "PLAINTEXT":
		return Plaintext, nil
	default:
		return 0, sigErrors.New(ErrUnsupportedMethod).WithDetail("method", s)
	}
}

// requiredParams must be present in every request before it is signed.
var requiredParams = []string{
	"oauth_consumer_key",
	"oauth_timestamp",
	"oauth_nonce",
	"oauth_version",
	"oauth_signature_method",
}

// Sign computes the OAuth1 signature for a request.
//
// For HMACSHA1 clientSecret is the consumer secret and tokenSecret the
// (possibly empty) token secret. For RSASHA1 clientSecret is a filesystem
// path to a PEM-encoded RSA private key and tokenSecret, when non-empty, is
// the key's passphrase. For Plaintext the base string itself is
// base64-encoded; every method returns base64 so callers can treat the
// result uniformly.
//
// Sign is pure: it never reads a clock or random source, so identical
// inputs always produce identical signatures. Timestamp and nonce
// freshness is the caller's concern, supplied through params.
func Sign(httpMethod, rawURL string, params map[string]string, clientSecret, tokenSecret string, method SignatureMethod) (string, error) {
	for _, key := range requiredParams {
		if _, ok := params[key]; !ok {
			return "", sigErrors.New(ErrMissingParameter).WithDetail("parameter", key)
		}
	}

	base := baseString(httpMethod, rawURL, params)

	switch method {
	case HMACSHA1:
		key := percentEncode(clientSecret) + "&" + percentEncode(tokenSecret)
		mac := hmac.New(sha1.New, []byte(key))
		mac.Write([]byte(base))
		return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil

	case RSASHA1:
		privateKey, err := loadRSAKey(clientSecret, tokenSecret)
		if err != nil {
			return "", err
		}
		digest := sha1.Sum([]byte(base))
		signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA1, digest[:])
		if err != nil {
			return "", sigErrors.NewWithCause(ErrSigning, err)
		}
		return base64.StdEncoding.EncodeToString(signature), nil

	case Plaintext:
		return base64.StdEncoding.EncodeToString([]byte(base)), nil

	default:
		return "", sigErrors.New(ErrUnsupportedMethod).WithDetail("method", method.String())
	}
}

// baseString builds the RFC 5849 3.4.1 signature base string. A previously
// computed oauth_signature never signs over itself.
func baseString(httpMethod, rawURL string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "oauth_signature" {
			continue
		}
		keys = append(keys, k)
	}
	// byte-wise lexicographic, not locale-aware
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(params[k]))
	}

	return strings.Join([]string{
		strings.ToUpper(httpMethod),
		percentEncode(rawURL),
		percentEncode(strings.Join(pairs, "&")),
	}, "&")
}

// percentEncode encodes per RFC 3986: unreserved characters stay bare,
// space becomes %20 (never +), and ~ is not escaped.
func percentEncode(input string) string {
	var buf strings.Builder
	for _, b := range []byte(input) {
		if isUnreserved(b) {
			buf.WriteByte(b)
		} else {
			fmt.Fprintf(&buf, "%%%02X", b)
		}
	}
	return buf.String()
}

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// loadRSAKey reads and parses a PEM RSA private key from disk. PKCS#1 and
// PKCS#8 blocks are both accepted; passphrase decrypts legacy encrypted
// PEM blocks.
func loadRSAKey(path, passphrase string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sigErrors.NewWithCause(ErrKeyLoad, err).WithDetail("path", path)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, sigErrors.New(ErrKeyParse).WithDetail("path", path)
	}

	keyBytes := block.Bytes
	if x509.IsEncryptedPEMBlock(block) {
		if passphrase == "" {
			return nil, sigErrors.NewWithMessage(ErrKeyParse, "Encrypted private key requires a passphrase").
				WithDetail("path", path)
		}
		keyBytes, err = x509.DecryptPEMBlock(block, []byte(passphrase))
		if err != nil {
			return nil, sigErrors.NewWithCause(ErrKeyParse, err).WithDetail("path", path)
		}
	}

	if key, err := x509.ParsePKCS1PrivateKey(keyBytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(keyBytes)
	if err != nil {
		return nil, sigErrors.NewWithCause(ErrKeyParse, err).WithDetail("path", path)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, sigErrors.NewWithMessage(ErrKeyParse, "Private key is not an RSA key").
			WithDetail("path", path)
	}
	return key, nil
}
