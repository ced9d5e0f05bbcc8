// internal/pipeline/issue-protocol/protocol.go

// Package issueprotocol generates the applicant-facing protocol code
// handed back on an accepted submission. The code is deterministic in
// its inputs so a given CPF and instant always map to the same value.
package issueprotocol

import (
	"fmt"
	"time"
)

// DefaultPrefix identifies the hiring process in every issued code.
const DefaultPrefix = "ILH-Saude"

const timestampLayout = "20060102150405"

// Generate builds a protocol code of the form
// <prefix>-<cpf>-<yyyymmddhhmmss>. The CPF must already be in its
// digit-only canonical form; the timestamp is rendered in UTC.
func Generate(prefix, cpf string, at time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%s-%s", prefix, cpf, at.UTC().Format(timestampLayout))
}
