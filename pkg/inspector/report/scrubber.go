// scrubber.go implements fail-closed sensitive data redaction for reports.

package report

import (
	"regexp"
)

// ScrubberConfig controls scrubbing behavior.
type ScrubberConfig struct {
	// MaxMessageSize is the maximum length for exception messages (default: 4096).
	MaxMessageSize int

	// MaxSnippetLines is the maximum number of source lines kept per frame (default: 16).
	MaxSnippetLines int

	// ScrubMessages enables scrubbing of messages for secrets/PII (default: true).
	ScrubMessages bool

	// NormalizePaths enables user-directory normalization in frame paths (default: true).
	NormalizePaths bool
}

// DefaultScrubberConfig returns production-safe defaults.
func DefaultScrubberConfig() ScrubberConfig {
	return ScrubberConfig{
		MaxMessageSize:  4096,
		MaxSnippetLines: 16,
		ScrubMessages:   true,
		NormalizePaths:  true,
	}
}

// Compiled regex patterns for message scrubbing (compiled once at package init)
var messageScrubPatterns = []*regexp.Regexp{
	// API keys and tokens
	regexp.MustCompile(`(?i)(api[_-]?key|token)[=:\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)(authorization|bearer)[=:\s]+['"]?[\w\-\.]+['"]?`),
	regexp.MustCompile(`(?i)sk-[a-zA-Z0-9_-]{20,}`), // OpenAI-style keys

	// Credentials
	regexp.MustCompile(`(?i)password[=:\s]+['"]?[^\s'"",]+['"]?`),
	regexp.MustCompile(`(?i)secret[=:\s]+['"]?[^\s'"",]+['"]?`),

	// PII
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`), // Email
}

// Path patterns to normalize in frame files
var pathNormalizationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/home/[^/]+/`),
	regexp.MustCompile(`^/Users/[^/]+/`),
	regexp.MustCompile(`^C:\\Users\\[^\\]+\\`),
	regexp.MustCompile(`^/tmp/[^/]+/`),
}

// Scrubber redacts sensitive data from reports.
type Scrubber struct {
	cfg ScrubberConfig
}

// NewScrubber creates a new scrubber with the given configuration.
func NewScrubber(cfg ScrubberConfig) *Scrubber {
	return &Scrubber{cfg: cfg}
}

// ScrubReport returns the report with its messages scrubbed and its
// frame paths normalized.
func (s *Scrubber) ScrubReport(rep Report) Report {
	rep.Message = s.ScrubMessage(rep.Message)
	for i, msg := range rep.CauseMessages {
		rep.CauseMessages[i] = s.ScrubMessage(msg)
	}

	for i := range rep.Frames {
		frame := &rep.Frames[i]
		frame.File = s.normalizePath(frame.File)
		for j, c := range frame.Comments {
			frame.Comments[j].Comment = s.ScrubMessage(c.Comment)
		}
		if s.cfg.MaxSnippetLines > 0 && len(frame.Snippet) > s.cfg.MaxSnippetLines {
			frame.Snippet = frame.Snippet[:s.cfg.MaxSnippetLines]
		}
	}
	return rep
}

// ScrubMessage scrubs sensitive patterns from a message.
func (s *Scrubber) ScrubMessage(msg string) string {
	if !s.cfg.ScrubMessages {
		return msg
	}

	// Truncate if too large first
	if s.cfg.MaxMessageSize > 0 && len(msg) > s.cfg.MaxMessageSize {
		msg = truncateWithMarker(msg, s.cfg.MaxMessageSize)
	}

	// Apply all scrubbing patterns
	result := msg
	for _, pattern := range messageScrubPatterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}

	return result
}

// normalizePath removes user-specific directory prefixes from a frame path.
func (s *Scrubber) normalizePath(path string) string {
	if !s.cfg.NormalizePaths || path == "" {
		return path
	}
	for _, pattern := range pathNormalizationPatterns {
		path = pattern.ReplaceAllString(path, "/[PATH]/")
	}
	return path
}

// truncateWithMarker truncates a string and adds a truncation marker.
func truncateWithMarker(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	marker := "...[TRUNCATED]"
	if maxLen <= len(marker) {
		return marker[:maxLen]
	}
	return s[:maxLen-len(marker)] + marker
}
