// Package session replaces the browser-local token/profile/auth triple with a
// server-side session: one sqlite row per login, addressed by a random cookie
// id, torn down by a single Destroy on logout.
package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fundboard/internal/cache"
	"fundboard/internal/core"
	"fundboard/internal/log"

	_ "modernc.org/sqlite"
)

// Session is the resolved state behind a cookie: the API bearer token and the
// cached login profile.
type Session struct {
	ID        string
	Token     string
	User      core.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

type Store struct {
	db     *sql.DB
	ttl    time.Duration
	cache  *cache.LRUCache[Session]
	logger *log.Logger
}

// NewStore opens (and migrates) the session database.
func NewStore(dbPath string, ttl time.Duration, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentSession)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create session db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run session migrations: %w", err)
	}

	return &Store{
		db:     db,
		ttl:    ttl,
		cache:  cache.NewLRUCache[Session](1024, 5*time.Minute),
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Create persists a new session for a freshly issued token and returns it.
func (s *Store) Create(ctx context.Context, token string, user core.User) (Session, error) {
	id, err := newSessionID()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	profile, err := json.Marshal(user)
	if err != nil {
		return Session{}, fmt.Errorf("encode session profile: %w", err)
	}

	now := time.Now().UTC()
	sess := Session{
		ID:        id,
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token, user_json, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Token, string(profile), sess.CreatedAt.Format(time.RFC3339Nano), sess.ExpiresAt.Format(time.RFC3339Nano))
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	s.cache.Set(sess.ID, sess)
	s.logger.InfoContext(ctx, "Session created",
		log.FieldSessionID, sess.ID, log.FieldUserRole, string(user.Role))
	return sess, nil
}

// Get resolves a session id. Expired sessions are rejected and removed.
func (s *Store) Get(ctx context.Context, id string) (Session, bool, error) {
	if sess, ok := s.cache.Get(id); ok {
		if sess.Expired() {
			_ = s.Destroy(ctx, id)
			return Session{}, false, nil
		}
		return sess, true, nil
	}

	var (
		sess                 Session
		profile              string
		createdAt, expiresAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, token, user_json, created_at, expires_at FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.Token, &profile, &createdAt, &expiresAt)
	if err == sql.ErrNoRows {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("select session: %w", err)
	}

	if err := json.Unmarshal([]byte(profile), &sess.User); err != nil {
		return Session{}, false, fmt.Errorf("decode session profile: %w", err)
	}
	if sess.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Session{}, false, fmt.Errorf("parse session created_at: %w", err)
	}
	if sess.ExpiresAt, err = time.Parse(time.RFC3339Nano, expiresAt); err != nil {
		return Session{}, false, fmt.Errorf("parse session expires_at: %w", err)
	}

	if sess.Expired() {
		_ = s.Destroy(ctx, id)
		return Session{}, false, nil
	}

	s.cache.Set(id, sess)
	return sess, true, nil
}

// Destroy is the single logout teardown: row and cache entry go together.
func (s *Store) Destroy(ctx context.Context, id string) error {
	s.cache.Delete(id)
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry and reports how many.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions rows affected: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "Expired sessions purged", "count", n)
	}
	return n, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
