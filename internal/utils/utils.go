package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"regexp"
	"strings"

	"github.com/luckyroue/wheelplay-backend/internal/models"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// rewardCodeLength is the number of characters in a reward code, excluding
// any test prefix.
const rewardCodeLength = 8

// HashIdentifier maps a raw personal identifier (email, phone) to a stable
// one-way token. Unsalted on purpose: the same raw value must produce the
// same token across requests and campaigns for deduplication and ban checks.
func HashIdentifier(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// GenerateRewardCode generates an 8-character uppercase-alphanumeric reward
// code from crypto/rand. Test-mode codes carry the TEST- prefix so they are
// visually distinct and unredeemable.
func GenerateRewardCode(isTest bool) (string, error) {
	var b strings.Builder
	b.Grow(rewardCodeLength)
	max := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < rewardCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeCharset[n.Int64()])
	}
	if isTest {
		return models.TestCodePrefix + b.String(), nil
	}
	return b.String(), nil
}

// GenerateTestToken generates an opaque URL-safe token for test links.
func GenerateTestToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a campaign title into a URL slug.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// MaskIdentifier masks an email or phone for logging (first 2 and last 2
// characters visible).
func MaskIdentifier(v string) string {
	if len(v) > 4 {
		return v[:2] + "******" + v[len(v)-2:]
	}
	return "******"
}
