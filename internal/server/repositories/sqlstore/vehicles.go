package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophgarage/internal/dbx"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/google/uuid"
)

const vehicleColumns = `id, user_id, brand, model, year, plate, image`

type vehicleRepo struct {
	db dbx.Ext
}

func (r *vehicleRepo) Create(ctx context.Context, v *models.Vehicle) error {
	if v.ID == "" {
		v.ID = models.ID(uuid.NewString())
	}
	_, err := exec(ctx, r.db,
		`INSERT INTO vehicles (`+vehicleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(v.ID), string(v.UserID), v.Brand, v.Model, v.Year, v.Plate, v.Image)
	return err
}

func (r *vehicleRepo) Get(ctx context.Context, userID, id models.ID) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	err := getOne(ctx, r.db, v,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ? AND user_id = ?`,
		string(id), string(userID))
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepo) List(ctx context.Context, userID models.ID, query string) ([]models.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE user_id = ?`
	args := []any{string(userID)}

	if query = strings.TrimSpace(query); query != "" {
		q += ` AND (LOWER(brand) LIKE ? OR LOWER(model) LIKE ? OR LOWER(plate) LIKE ?)`
		pattern := "%" + strings.ToLower(query) + "%"
		args = append(args, pattern, pattern, pattern)
	}
	q += ` ORDER BY brand, model, id`

	items := []models.Vehicle{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *vehicleRepo) Update(ctx context.Context, v *models.Vehicle) error {
	return execOne(ctx, r.db,
		`UPDATE vehicles SET brand = ?, model = ?, year = ?, plate = ?, image = ?
		 WHERE id = ? AND user_id = ?`,
		v.Brand, v.Model, v.Year, v.Plate, v.Image, string(v.ID), string(v.UserID))
}

func (r *vehicleRepo) Delete(ctx context.Context, userID, id models.ID) error {
	return execOne(ctx, r.db, `DELETE FROM vehicles WHERE id = ? AND user_id = ?`, string(id), string(userID))
}
