// Package match evaluates a single include/exclude pattern against a string.
//
// A pattern is either plain text, matched as a substring, or a delimited
// regular expression such as "/^daily-\d+/i". A pattern that looks like a
// regular expression but does not compile is matched as plain text.
package match

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// DefaultDelimiters are the characters that may open and close a regular expression pattern.
const DefaultDelimiters = "/#~@%!"

// regexFlags lists the flag letters accepted after the closing delimiter.
// Only i, m and s change matching; g, u and y are accepted and ignored.
const regexFlags = "gimsuy"

var (
	mu         sync.RWMutex
	delimiters = DefaultDelimiters
)

// SetDelimiters replaces the set of regular expression delimiters.
// An empty set disables regular expression detection entirely.
func SetDelimiters(set string) {
	mu.Lock()
	defer mu.Unlock()
	delimiters = set
}

// Delimiters returns the active delimiter set.
func Delimiters() string {
	mu.RLock()
	defer mu.RUnlock()
	return delimiters
}

// Pattern is a compiled include/exclude pattern.
type Pattern struct {
	Text     string         // the pattern as written
	Compiled *regexp.Regexp // nil for literal patterns
	literal  string
}

// Compile parses a pattern. It never fails: anything that is not a valid
// delimited regular expression becomes a literal substring pattern.
func Compile(pattern string) *Pattern {
	p := &Pattern{Text: pattern, literal: norm.NFC.String(pattern)}
	if expr, ok := parseDelimited(p.literal, Delimiters()); ok {
		if re, err := regexp.Compile(expr); err == nil {
			p.Compiled = re
		}
	}
	return p
}

// IsRegexp reports whether the pattern is matched as a regular expression.
func (p *Pattern) IsRegexp() bool {
	return p.Compiled != nil
}

// Match reports whether subject satisfies the pattern. An empty literal
// pattern matches everything.
func (p *Pattern) Match(subject string) bool {
	subject = norm.NFC.String(subject)
	if p.Compiled != nil {
		return p.Compiled.MatchString(subject)
	}
	return strings.Contains(subject, p.literal)
}

func (p *Pattern) String() string {
	return p.Text
}

// Matches compiles pattern and tests subject against it.
func Matches(pattern, subject string) bool {
	return Compile(pattern).Match(subject)
}

// parseDelimited turns "/body/flags" into a Go regular expression.
func parseDelimited(pattern, delims string) (string, bool) {
	if len(pattern) < 3 || delims == "" {
		return "", false
	}
	open := pattern[0]
	if strings.IndexByte(delims, open) < 0 {
		return "", false
	}
	closing := strings.LastIndexByte(pattern, open)
	if closing <= 1 {
		return "", false
	}

	body := pattern[1:closing]
	flags := pattern[closing+1:]

	var inline strings.Builder
	for _, f := range flags {
		if !strings.ContainsRune(regexFlags, f) {
			return "", false
		}
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		}
	}

	if inline.Len() > 0 {
		return "(?" + inline.String() + ")" + body, true
	}
	return body, true
}
