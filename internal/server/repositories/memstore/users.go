package memstore

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/common"
	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
	"github.com/google/uuid"
)

// userDoc is the stored form of sm.User, which carries no JSON tags.
type userDoc struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type userRepo struct {
	users collection[userDoc]
}

func (r *userRepo) Create(_ context.Context, u *sm.User) error {
	r.users.s.signupMu.Lock()
	defer r.users.s.signupMu.Unlock()

	taken, err := r.users.find(func(d userDoc) bool {
		return strings.EqualFold(d.Username, u.Username) || strings.EqualFold(d.Email, u.Email)
	})
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return common.ErrorAlreadyExists
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()

	return r.users.put(u.ID, userDoc{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*sm.User, error) {
	found, err := r.users.find(func(d userDoc) bool { return strings.EqualFold(d.Username, username) })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	d := found[0]
	return &sm.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}
