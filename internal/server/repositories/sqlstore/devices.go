package sqlstore

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/dbx"
	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
)

type deviceRepo struct {
	db dbx.Ext
}

// Register upserts with ON CONFLICT, which PostgreSQL and SQLite spell alike.
func (r *deviceRepo) Register(ctx context.Context, d *sm.DeviceToken) error {
	d.UpdatedAt = time.Now().UTC()
	_, err := exec(ctx, r.db,
		`INSERT INTO device_tokens (token, user_id, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (token) DO UPDATE SET user_id = excluded.user_id, updated_at = excluded.updated_at`,
		d.Token, d.UserID, d.UpdatedAt)
	return err
}
