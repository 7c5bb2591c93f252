// Package validate is the single source of truth for request validation on
// both transports. Each operation has one validator; the Style picks the
// field spelling used in violation messages (camelCase for REST JSON,
// snake_case for gRPC messages). All violations are collected, not just the
// first one.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Style int

const (
	// JSONNames renders camelCase field names (REST transport).
	JSONNames Style = iota
	// ProtoNames renders snake_case field names (gRPC transport).
	ProtoNames
)

// Violation is one broken constraint. Path is the wire-level field path
// ("page_size", "data.username"); Message is the full human-readable phrase.
type Violation struct {
	Path    string
	Message string
}

type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "invalid request"
	}
	return v[0].Message
}

// Messages returns every violation phrase, in declaration order.
func (v Violations) Messages() []string {
	out := make([]string, len(v))
	for i, violation := range v {
		out[i] = violation.Message
	}
	return out
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type field struct {
	json  string
	proto string
}

func (f field) in(st Style) string {
	if st == ProtoNames {
		return f.proto
	}
	return f.json
}

// collector accumulates violations for one request. prefix is prepended to
// paths when validating a nested message ("data.").
type collector struct {
	st     Style
	prefix string
	out    Violations
}

func (c *collector) add(f field, suffix string) {
	name := f.in(c.st)
	c.out = append(c.out, Violation{
		Path:    c.prefix + name,
		Message: name + " " + suffix,
	})
}

// requireString enforces presence. Absent and empty are equivalent, matching
// the original services' treatment of empty wire strings.
func (c *collector) requireString(f field, v *string) (string, bool) {
	if v == nil || *v == "" {
		c.add(f, "is required")
		return "", false
	}
	return *v, true
}

func (c *collector) strLen(f field, v string, min, max int) {
	n := utf8.RuneCountInString(v)
	if min > 0 && n < min {
		c.add(f, fmt.Sprintf("must be at least %d characters", min))
	}
	if max > 0 && n > max {
		c.add(f, fmt.Sprintf("must be at most %d characters", max))
	}
}

func (c *collector) email(f field, v string) {
	if !emailPattern.MatchString(v) {
		c.add(f, "must be a valid email address")
	}
}

func (c *collector) uuidV4(f field, v string) (uuid.UUID, bool) {
	id, err := uuid.Parse(v)
	if err != nil || id.Version() != 4 {
		c.add(f, "must be a valid UUID v4")
		return uuid.Nil, false
	}
	return id, true
}

func (c *collector) intRange(f field, v int64, min, max int64, minMsg, maxMsg string) {
	if v < min {
		c.add(f, minMsg)
	}
	if v > max {
		c.add(f, maxMsg)
	}
}

// NotAnInteger is used by the REST adapter when a numeric query or body
// field does not parse at all.
func NotAnInteger(name string) Violation {
	return Violation{Path: name, Message: name + " must be an integer"}
}
