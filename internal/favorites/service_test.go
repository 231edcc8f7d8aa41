package favorites

import (
	"context"
	"fmt"
	"testing"

	"github.com/classmart/classmart-backend/internal/products"
	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var favoritesSchema = []string{
	`CREATE TABLE productos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		descripcion TEXT,
		precio NUMERIC NOT NULL DEFAULT 0,
		cantidad_producto INTEGER NOT NULL DEFAULT 0,
		foto_producto TEXT,
		categoria_id INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE favoritos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL,
		producto_id INTEGER NOT NULL,
		created_at DATETIME,
		UNIQUE (usuario_id, producto_id)
	)`,
}

func newFavoritesService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, stmt := range favoritesSchema {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}

	svc, err := NewService(ServiceParams{
		Repo:        NewRepository(client.DB()),
		ProductRepo: products.NewRepository(client.DB()),
	})
	require.NoError(t, err)
	return svc, client
}

func seedProduct(t *testing.T, client *db.Client, nombre string) models.Product {
	t.Helper()
	product := models.Product{Nombre: nombre, Precio: decimal.RequireFromString("10.00"), CantidadProducto: 1}
	require.NoError(t, client.DB().Create(&product).Error)
	return product
}

func TestFavoriteCreateAndDelete(t *testing.T) {
	svc, client := newFavoritesService(t)
	ctx := context.Background()

	laptop := seedProduct(t, client, "Laptop")

	created, err := svc.Create(ctx, CreateFavoriteInput{UsuarioID: 7, ProductoID: laptop.ID})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, laptop.ID, created.ProductoID)

	records, err := svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))

	records, err = svc.List(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFavoriteCreateUnknownProduct(t *testing.T) {
	svc, _ := newFavoritesService(t)

	_, err := svc.Create(context.Background(), CreateFavoriteInput{UsuarioID: 7, ProductoID: 999})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestFavoriteListFiltersByUser(t *testing.T) {
	svc, client := newFavoritesService(t)
	ctx := context.Background()

	laptop := seedProduct(t, client, "Laptop")
	mouse := seedProduct(t, client, "Mouse")

	_, err := svc.Create(ctx, CreateFavoriteInput{UsuarioID: 7, ProductoID: laptop.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateFavoriteInput{UsuarioID: 7, ProductoID: mouse.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateFavoriteInput{UsuarioID: 9, ProductoID: mouse.ID})
	require.NoError(t, err)

	mine, err := svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestFavoriteDeleteMissing(t *testing.T) {
	svc, _ := newFavoritesService(t)

	err := svc.Delete(context.Background(), 404)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)

	_, err = NewService(ServiceParams{Repo: &Repository{}})
	require.Error(t, err)
}
