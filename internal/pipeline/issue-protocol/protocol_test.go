// internal/pipeline/issue-protocol/protocol_test.go
package issueprotocol

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Format(t *testing.T) {
	at := time.Date(2026, 3, 15, 9, 45, 30, 0, time.UTC)
	code := Generate("ILH-Saude", "12345678901", at)

	assert.Equal(t, "ILH-Saude-12345678901-20260315094530", code)
}

func TestGenerate_Pattern(t *testing.T) {
	code := Generate("", "98765432100", time.Now())

	pattern := regexp.MustCompile(`^ILH-Saude-\d{11}-\d{14}$`)
	assert.Regexp(t, pattern, code)
}

func TestGenerate_Deterministic(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := Generate("ILH-Saude", "12345678901", at)
	second := Generate("ILH-Saude", "12345678901", at)
	assert.Equal(t, first, second)
}

func TestGenerate_TimestampInUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	at := time.Date(2026, 6, 1, 22, 0, 0, 0, loc) // 2026-06-02 01:00 UTC

	code := Generate("ILH-Saude", "12345678901", at)
	assert.Equal(t, "ILH-Saude-12345678901-20260602010000", code)
}
