package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

const categoriesSchema = `CREATE TABLE categorias (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL UNIQUE,
	descripcion TEXT,
	created_at DATETIME,
	updated_at DATETIME
)`

func newCategoryService(t *testing.T) Service {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().Exec(categoriesSchema).Error)

	svc, err := NewService(ServiceParams{Repo: NewRepository(client.DB())})
	require.NoError(t, err)
	return svc
}

func stringPtr(s string) *string { return &s }

func TestCategoryLifecycle(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCategoryInput{
		Nombre:      "Electronica",
		Descripcion: stringPtr("Computadores y accesorios"),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Electronica", created.Nombre)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.Descripcion)
	require.Equal(t, "Computadores y accesorios", *got.Descripcion)

	updated, err := svc.Update(ctx, created.ID, UpdateCategoryInput{Nombre: "Tecnologia"})
	require.NoError(t, err)
	require.Equal(t, "Tecnologia", updated.Nombre)
	require.Nil(t, updated.Descripcion)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCategoryListOrderedAndEmpty(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	records, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)

	for _, nombre := range []string{"Hogar", "Deportes", "Libros"} {
		_, err := svc.Create(ctx, CreateCategoryInput{Nombre: nombre})
		require.NoError(t, err)
	}

	records, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Hogar", records[0].Nombre)
	require.Equal(t, "Libros", records[2].Nombre)
}

func TestCategoryNotFoundCodes(t *testing.T) {
	svc := newCategoryService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, 404, UpdateCategoryInput{Nombre: "Nada"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.Delete(ctx, 404)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}
