package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	secretCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	couponCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	secretCodeLength = 8
	couponCodeLength = 9
)

func randomString(alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			out[i] = alphabet[0]
			continue
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}

// GenerateSecretCode produces the pickup code the buyer hands the courier.
func GenerateSecretCode() string {
	return randomString(secretCodeAlphabet, secretCodeLength)
}

// GenerateCouponCode produces a 9-character alphanumeric coupon code.
func GenerateCouponCode() string {
	return randomString(couponCodeAlphabet, couponCodeLength)
}
