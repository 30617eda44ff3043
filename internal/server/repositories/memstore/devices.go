package memstore

import (
	"context"
	"time"

	sm "github.com/dmitrijs2005/gophgarage/internal/server/models"
)

type deviceDoc struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type deviceRepo struct {
	devices collection[deviceDoc]
}

func (r *deviceRepo) Register(_ context.Context, d *sm.DeviceToken) error {
	d.UpdatedAt = time.Now().UTC()
	return r.devices.put(d.Token, deviceDoc{Token: d.Token, UserID: d.UserID, UpdatedAt: d.UpdatedAt})
}
