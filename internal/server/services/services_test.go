package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/dmitrijs2005/gophgarage/internal/server/config"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories/memstore"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		S3Region:              "us-east-1",
		S3RootUser:            "minioadmin",
		S3RootPassword:        "minioadmin",
		S3BaseEndpoint:        "http://127.0.0.1:9000",
		S3Bucket:              "garage",
	}
}

func newVehicle(t *testing.T, g *GarageService, userID models.ID) *models.Vehicle {
	t.Helper()
	v, err := g.CreateVehicle(context.Background(), userID, models.Vehicle{
		Brand: "Toyota", Model: "Corolla", Year: 2015, Plate: "ABC123",
	})
	require.NoError(t, err)
	return v
}

func newGarage() (*GarageService, *memstore.Store) {
	store := memstore.New()
	return NewGarageService(store), store
}
