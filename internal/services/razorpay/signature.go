package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	ErrInvalidSignature   = errors.New("webhook signature mismatch")
	ErrMalformedSignature = errors.New("webhook signature is not valid hex")
)

// VerifyWebhookSignature checks the x-razorpay-signature header against
// an HMAC-SHA256 of the raw request body. The header value is lowercase
// hex. Comparison is constant time.
func VerifyWebhookSignature(body []byte, signature, secret string) error {
	if signature == "" {
		return ErrInvalidSignature
	}

	expected, err := hex.DecodeString(signature)
	if err != nil {
		return ErrMalformedSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return ErrInvalidSignature
	}
	return nil
}

// ComputeWebhookSignature produces the hex signature Razorpay would send
// for the given body. Used by tests and local tooling.
func ComputeWebhookSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
