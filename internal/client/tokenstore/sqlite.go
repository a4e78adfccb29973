package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rentafleet/fleetapi-go/internal/client/models"
	"github.com/rentafleet/fleetapi-go/internal/dbx"
)

// Durable keys. The access token, refresh token and user profile are
// written together in one transaction on login/refresh and cleared
// together on logout.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
	keyObtainedAt   = "obtained_at"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (*models.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	token, ok := values[keyAccessToken]
	if !ok || token == "" {
		return nil, nil
	}

	sess := &models.Session{
		AccessToken:  token,
		RefreshToken: values[keyRefreshToken],
	}
	if raw, ok := values[keyUser]; ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			return nil, fmt.Errorf("failed to decode stored user profile: %w", err)
		}
	}
	if raw, ok := values[keyObtainedAt]; ok && raw != "" {
		obtained, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse session timestamp: %w", err)
		}
		sess.ObtainedAt = obtained
	}
	return sess, nil
}

func (s *SQLiteStore) Set(ctx context.Context, sess *models.Session) error {
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string]string{
			keyAccessToken:  sess.AccessToken,
			keyRefreshToken: sess.RefreshToken,
			keyUser:         string(user),
			keyObtainedAt:   sess.ObtainedAt.UTC().Format(time.RFC3339Nano),
		} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
