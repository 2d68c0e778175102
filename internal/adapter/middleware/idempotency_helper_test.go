package middleware

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestBuildKey(t *testing.T) {
	k := buildKey("POST", "/loans/:loan_id/approve", strings.Repeat("b", 32), strings.Repeat("a", 32))
	want := "idemp:ax:post:/loans/:loan_id/approve:" + strings.Repeat("b", 32) + ":" + strings.Repeat("a", 32)
	if k != want {
		t.Fatalf("got %q want %q", k, want)
	}
}

func TestCanonicalReqID(t *testing.T) {
	for _, s := range []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
		" 3f9a6a1b3d544fbe8b3a6b3e8d6b2c88 ",
	} {
		got, ok := canonicalReqID(s)
		if !ok || got != "3f9a6a1b3d544fbe8b3a6b3e8d6b2c88" {
			t.Errorf("%q: got %q ok=%v", s, got, ok)
		}
	}
	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c880",
		"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88",
		"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88",
	} {
		if _, ok := canonicalReqID(s); ok {
			t.Errorf("should reject %q", s)
		}
	}
}

func TestParseAxRequestAt(t *testing.T) {
	sec := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		raw  string
		want time.Time
	}{
		{strconv.FormatInt(sec.Unix(), 10), sec},
		{strconv.FormatInt(sec.UnixMilli()+250, 10), sec.Add(250 * time.Millisecond)},
		{"2026-10-16T11:00:00+03:00", sec},
		{"2026-10-16T08:00:00Z", sec},
		{"2026-10-16T08:00:00.5Z", sec.Add(500 * time.Millisecond)},
	}
	for _, tc := range tests {
		got, err := parseAxRequestAt(tc.raw)
		if err != nil {
			t.Fatalf("%q: %v", tc.raw, err)
		}
		if !got.Equal(tc.want) || got.Location() != time.UTC {
			t.Fatalf("%q: got %v want %v", tc.raw, got, tc.want)
		}
	}

	for _, raw := range []string{"", "not-a-time", "2026-10-16T08:00:00", "1736123456abc"} {
		if _, err := parseAxRequestAt(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestReplayStore(t *testing.T) {
	_, rdb := newMiniredisClient(t)
	ctx := context.Background()
	store := replayStore{rdb: rdb, ttl: 5 * time.Second}
	key := buildKey("POST", "/payments/:payment_id/confirm", testStaff, testReqID)

	entry := idempEntry{InProgress: true, BodySHA256: bodyHash([]byte(`{}`)), RequestID: testReqID, CreatedAt: nowUTC()}
	if entry.finished() {
		t.Fatal("in-progress entry reported finished")
	}
	if ok, err := store.reserve(ctx, key, entry); err != nil || !ok {
		t.Fatalf("first set: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional ttl: %v", ttl)
	}
	if ok, _ := store.reserve(ctx, key, entry); ok {
		t.Fatal("second set must not overwrite")
	}

	final := idempEntry{Code: 201, Body: []byte(`{"ok":true}`), BodySHA256: entry.BodySHA256, RequestID: testReqID}
	if err := store.commit(ctx, key, final); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 || ttl > 5*time.Second {
		t.Fatalf("final ttl: %v", ttl)
	}
	got, err := store.load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.finished() || got.Code != 201 || string(got.Body) != `{"ok":true}` {
		t.Fatalf("entry: %+v", got)
	}

	if err := store.release(ctx, key); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := store.load(ctx, key); err == nil {
		t.Fatal("entry still present")
	}
}
