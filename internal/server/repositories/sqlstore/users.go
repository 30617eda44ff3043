package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/dbx"
	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
	"github.com/google/uuid"
)

type userRepo struct {
	db dbx.Ext
}

func (r *userRepo) Create(ctx context.Context, u *sm.User) error {
	var taken int
	err := r.db.GetContext(ctx, &taken, r.db.Rebind(
		`SELECT COUNT(*) FROM users WHERE LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?)`),
		u.Username, u.Email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if taken > 0 {
		return common.ErrorAlreadyExists
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()

	_, err = exec(ctx, r.db,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	return err
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*sm.User, error) {
	u := &sm.User{}
	err := getOne(ctx, r.db, u,
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE LOWER(username) = LOWER(?)`, username)
	if err != nil {
		return nil, err
	}
	return u, nil
}
