/*
Package oauth1 implements OAuth 1.0a request signing (RFC 5849).

Sign canonicalizes the request parameters into a signature base string and
computes the signature under HMAC-SHA1, RSA-SHA1 or PLAINTEXT:

	params := oauth1.BaseParams("consumer-key", oauth1.HMACSHA1)
	params["oauth_callback"] = callbackURL

	sig, err := oauth1.Sign("POST", "https://api.example.com/request_token",
		params, consumerSecret, "", oauth1.HMACSHA1)

The five reserved oauth_* parameters (consumer key, timestamp, nonce,
version, signature method) must be present before signing; BaseParams fills
them with fresh values. Sign itself is deterministic and safe for
concurrent use.

One deliberate divergence from RFC 5849: PLAINTEXT returns the
base64-encoded base string rather than the raw plaintext convention, so all
three methods share a uniform base64 return type.
*/
package oauth1
