// Package id issues and checks the 32-char public ids carried by every entity.
package id

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var rePublic = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewID32 returns a random (v4) UUID as 32 lowercase hex characters.
func NewID32() string {
	u := uuid.New()
	return strings.ReplaceAll(u.String(), "-", "")
}

// Valid reports whether s has the public id shape.
func Valid(s string) bool { return rePublic.MatchString(s) }

