// fingerprint.go generates stable hashes for grouping similar exceptions.

package report

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// fingerprintFrameCount is how many leading frames contribute to the hash.
const fingerprintFrameCount = 3

// closureSuffixPattern matches compiler-generated closure qualifiers
// like ".func1" or ".func2.1" so anonymous functions group together.
var closureSuffixPattern = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// Fingerprint generates a hash for grouping similar exceptions.
// The fingerprint is based on:
//   - exception name and code
//   - the first 3 frame identities (class and function, normalized)
//
// It ignores variable data like timestamps, event IDs, messages, and
// line numbers, so the same failure reported from different inputs
// groups under one fingerprint.
func Fingerprint(rep Report) string {
	// Build the fingerprint input from stable fields
	parts := []string{
		rep.ExceptionName,
		codeClass(rep.Code),
	}
	parts = append(parts, normalizeFrames(rep.Frames)...)

	// Join and hash
	input := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(input))

	// Return hex-encoded first 16 bytes (32 hex chars)
	return hex.EncodeToString(hash[:16])
}

// codeClass renders the code for hashing; zero means "uncoded" and
// hashes as the empty string so uncoded exceptions group by name alone.
func codeClass(code int) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code)
}

// normalizeFrames extracts up to fingerprintFrameCount frame identities,
// stripping closure suffixes so generated wrapper names stay stable.
func normalizeFrames(frames []FrameRecord) []string {
	var out []string
	for _, f := range frames {
		name := f.Function
		if f.Class != "" {
			name = f.Class + "." + name
		}
		name = closureSuffixPattern.ReplaceAllString(name, "")
		if name == "" {
			continue
		}
		out = append(out, name)
		if len(out) >= fingerprintFrameCount {
			break
		}
	}
	return out
}
