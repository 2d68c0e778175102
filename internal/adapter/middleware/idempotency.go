package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"motofinance-backend/internal/infrastructure/logger"
	"motofinance-backend/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderReplay    = "Ax-Idempotent-Replay"

	// lifetime of the in-progress marker if the handler never finishes
	provisionalLockTTL = 60 * time.Second
	maxClockSkew       = 10 * time.Minute
	storeTimeout       = 2 * time.Second
)

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

// staffOf prefers the actor resolved by RequireCapability and falls back to the header.
func staffOf(c echo.Context) (string, bool) {
	if a := Actor(c); a.StaffID != "" {
		return a.StaffID, true
	}
	s := strings.TrimSpace(c.Request().Header.Get(HeaderStaffID))
	return s, id.Valid(s)
}

// IdempotencyMiddleware deduplicates mutating staff requests. The key is method + route +
// staff id + Ax-Request-Id; a repeat with the same body replays the stored response,
// a repeat with a different body is a conflict. Server errors are not stored, so the
// caller may retry them with the same request id.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, base *zap.Logger) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb, ttl: ttl}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			rawID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if rawID == "" {
				return badRequest(c, "missing "+HeaderRequestID)
			}
			reqID, ok := canonicalReqID(rawID)
			if !ok {
				return badRequest(c, "invalid "+HeaderRequestID+" format")
			}
			reqAt, err := parseAxRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return badRequest(c, err.Error())
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return badRequest(c, HeaderRequestAt+" too skewed")
			}
			staffID, ok := staffOf(c)
			if !ok {
				return badRequest(c, "missing or invalid "+HeaderStaffID)
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			bhash := bodyHash(body)

			log := base.With(zap.String("idempotency_key_id", reqID), zap.String("staff_id", staffID))
			if rid := logger.RequestID(req.Context()); rid != "" {
				log = log.With(zap.String("request_id", rid))
			}

			key := buildKey(req.Method, c.Path(), staffID, reqID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			reserved, err := store.reserve(ctx, key, idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				StaffID:     staffID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   now,
			})
			if err != nil {
				log.Error("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !reserved {
				cur, err := store.load(ctx, key)
				if err != nil && !errors.Is(err, redis.Nil) {
					log.Warn("load idempotency entry", zap.String("key", key), zap.Error(err))
				}
				switch {
				case cur.BodySHA256 != "" && cur.BodySHA256 != bhash:
					return c.JSON(http.StatusConflict, map[string]string{"error": HeaderRequestID + " reused with different body"})
				case cur.finished():
					log.Debug("replaying stored response", zap.Int("status", cur.Code))
					c.Response().Header().Set(HeaderReplay, "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				default:
					return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
				}
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			storeCtx, storeCancel := context.WithTimeout(context.WithoutCancel(req.Context()), storeTimeout)
			defer storeCancel()
			if rec.code >= http.StatusInternalServerError {
				if err := store.release(storeCtx, key); err != nil {
					log.Warn("release idempotency entry", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			err = store.commit(storeCtx, key, idempEntry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				StaffID:     staffID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				log.Warn("save idempotency entry", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
