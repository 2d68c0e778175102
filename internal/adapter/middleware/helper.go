package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"motofinance-backend/pkg/id"

	"github.com/google/uuid"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// buildKey scopes a request id to the route and the acting staff member.
func buildKey(method, path, staffID, requestID string) string {
	return "idemp:ax:" + strings.ToLower(method) + ":" + path + ":" + staffID + ":" + requestID
}

// canonicalReqID accepts a public id or a lowercase hyphenated RFC 4122 UUID (v1-v5)
// and returns the 32-hex form, so both spellings of one UUID share a key.
func canonicalReqID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if id.Valid(raw) {
		return raw, true
	}
	if len(raw) != 36 || raw != strings.ToLower(raw) {
		return "", false
	}
	u, err := uuid.Parse(raw)
	if err != nil || u.Variant() != uuid.RFC4122 || u.Version() < 1 || u.Version() > 5 {
		return "", false
	}
	return strings.ReplaceAll(raw, "-", ""), true
}

// parseAxRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339(Nano) with an
// explicit zone. Naive local timestamps are rejected.
func parseAxRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}
