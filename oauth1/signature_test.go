package oauth1

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arest/oauthkit/errx"
)

// referenceParams is the fixed parameter set used by the pinned vectors.
func referenceParams() map[string]string {
	return map[string]string{
		"oauth_consumer_key":     "ck",
		"oauth_timestamp":        "1",
		"oauth_nonce":            "n",
		"oauth_version":          "1.0",
		"oauth_signature_method": "HMAC-SHA1",
	}
}

func TestSignHMACReferenceVector(t *testing.T) {
	// Pinned against an RFC 5849 reference implementation.
	sig, err := Sign("POST", "https://api.example.com/token",
		referenceParams(), "secret", "", HMACSHA1)
	require.NoError(t, err)
	assert.Equal(t, "2vDQh6eJSaiwEAd6lCqropP2pms=", sig)
}

func TestSignHMACWithTokenSecretAndReservedChars(t *testing.T) {
	params := referenceParams()
	params["foo"] = "bar baz~"
	params["empty"] = ""

	sig, err := Sign("GET", "http://example.com/cb",
		params, "se/cret", "tok en", HMACSHA1)
	require.NoError(t, err)
	assert.Equal(t, "V3+/ZANktGwsVwLsjv2w//QNeWo=", sig)
}

func TestSignLowercaseMethodIsUppercased(t *testing.T) {
	upper, err := Sign("POST", "https://api.example.com/token",
		referenceParams(), "secret", "", HMACSHA1)
	require.NoError(t, err)

	lower, err := Sign("post", "https://api.example.com/token",
		referenceParams(), "secret", "", HMACSHA1)
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
}

func TestSignStripsPreviousSignature(t *testing.T) {
	first, err := Sign("POST", "https://api.example.com/token",
		referenceParams(), "secret", "", HMACSHA1)
	require.NoError(t, err)

	// Feeding the signature back in must not change the result.
	params := referenceParams()
	params["oauth_signature"] = first
	second, err := Sign("POST", "https://api.example.com/token",
		params, "secret", "", HMACSHA1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSignIsDeterministic(t *testing.T) {
	var last string
	for i := 0; i < 5; i++ {
		sig, err := Sign("POST", "https://api.example.com/token",
			referenceParams(), "secret", "", HMACSHA1)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, last, sig)
		}
		last = sig
	}
}

func TestSignPlaintextIsBase64OfBaseString(t *testing.T) {
	sig, err := Sign("POST", "https://api.example.com/token",
		referenceParams(), "secret", "", Plaintext)
	require.NoError(t, err)

	wantBase := "POST&https%3A%2F%2Fapi.example.com%2Ftoken&" +
		"oauth_consumer_key%3Dck%26oauth_nonce%3Dn%26" +
		"oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1%26oauth_version%3D1.0"
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte(wantBase)), sig)

	decoded, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)
	assert.Equal(t, wantBase, string(decoded))
}

func TestSignMissingRequiredParameter(t *testing.T) {
	for _, missing := range requiredParams {
		params := referenceParams()
		delete(params, missing)

		sig, err := Sign("POST", "https://api.example.com/token",
			params, "secret", "", HMACSHA1)
		require.Error(t, err, "expected error when %s is missing", missing)
		assert.Empty(t, sig)
		assert.True(t, errx.IsCode(err, ErrMissingParameter))

		var xerr *errx.Error
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, missing, xerr.Details["parameter"])
	}
}

func TestSignUnsupportedMethod(t *testing.T) {
	_, err := Sign("POST", "https://api.example.com/token",
		referenceParams(), "secret", "", SignatureMethod(42))
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrUnsupportedMethod))
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

func TestParseSignatureMethod(t *testing.T) {
	cases := []struct {
		in   string
		want SignatureMethod
	}{
		{"HMAC-SHA1", HMACSHA1},
		{"RSA-SHA1", RSASHA1},
		{"PLAINTEXT", Plaintext},
	}
	for _, tc := range cases {
		got, err := ParseSignatureMethod(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.in, got.String())
	}

	_, err := ParseSignatureMethod("HMAC-SHA256")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrUnsupportedMethod))

	var xerr *errx.Error
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "HMAC-SHA256", xerr.Details["method"])
}

func writeRSAKey(t *testing.T, pkcs8 bool) (string, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var block *pem.Block
	if pkcs8 {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)
		block = &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	} else {
		block = &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	}

	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path, key
}

func TestSignRSA(t *testing.T) {
	for _, pkcs8 := range []bool{false, true} {
		path, key := writeRSAKey(t, pkcs8)

		sig, err := Sign("POST", "https://api.example.com/token",
			referenceParams(), path, "", RSASHA1)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(sig)
		require.NoError(t, err)

		base := "POST&https%3A%2F%2Fapi.example.com%2Ftoken&" +
			"oauth_consumer_key%3Dck%26oauth_nonce%3Dn%26" +
			"oauth_signature_method%3DHMAC-SHA1%26oauth_timestamp%3D1%26oauth_version%3D1.0"
		digest := sha1.Sum([]byte(base))
		assert.NoError(t, rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA1, digest[:], raw))
	}
}

func TestSignRSAKeyErrors(t *testing.T) {
	_, err := Sign("POST", "https://api.example.com/token",
		referenceParams(), filepath.Join(t.TempDir(), "missing.pem"), "", RSASHA1)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrKeyLoad))

	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pem"), 0o600))
	_, err = Sign("POST", "https://api.example.com/token",
		referenceParams(), garbage, "", RSASHA1)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrKeyParse))
}

func TestPercentEncode(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"abcABC123", "abcABC123"},
		{"-._~", "-._~"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"ä", "%C3%A4"},
		{"http://x/y?z=1", "http%3A%2F%2Fx%2Fy%3Fz%3D1"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, percentEncode(tc.in), "input %q", tc.in)
	}
}

func TestBaseParams(t *testing.T) {
	params := BaseParams("ck", HMACSHA1)
	for _, key := range requiredParams {
		assert.NotEmpty(t, params[key], "missing %s", key)
	}
	assert.Equal(t, "HMAC-SHA1", params["oauth_signature_method"])
	assert.Equal(t, "1.0", params["oauth_version"])

	// Nonces must not repeat.
	assert.NotEqual(t, params["oauth_nonce"], BaseParams("ck", HMACSHA1)["oauth_nonce"])
}
