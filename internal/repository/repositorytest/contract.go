// Package repositorytest holds the behavior every repository backend must share.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"catalog-api/internal/domain"
	"catalog-api/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ProductRepository runs the product contract against a fresh repository from newRepo
func ProductRepository(t *testing.T, newRepo func(t *testing.T) repository.ProductRepository) {
	t.Run("save assigns id and keeps fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		createdAt := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
		p := domain.NewProduct("Apple Ipod", 46.89, &domain.Category{ID: "c1", Name: "Electrónica"})
		p.CreatedAt = createdAt
		require.NoError(t, repo.Save(ctx, p))
		require.NotEmpty(t, p.ID)

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "Apple Ipod", got.Name)
		assert.InDelta(t, 46.89, got.PriceValue(), 0.0001)
		assert.True(t, createdAt.Equal(got.CreatedAt))
		require.NotNil(t, got.Category)
		assert.Equal(t, domain.Category{ID: "c1", Name: "Electrónica"}, *got.Category)
	})

	t.Run("save with id replaces", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := domain.NewProduct("Sony Notebook", 846.89, &domain.Category{Name: "Informática"})
		p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		require.NoError(t, repo.Save(ctx, p))
		id := p.ID

		p.Name = "Asus Notebook"
		price := 589.09
		p.Price = &price
		p.Photo = "x-photo.png"
		require.NoError(t, repo.Save(ctx, p))
		assert.Equal(t, id, p.ID)

		got, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Asus Notebook", got.Name)
		assert.InDelta(t, 589.09, got.PriceValue(), 0.0001)
		assert.Equal(t, "x-photo.png", got.Photo)

		all, err := repository.Collect(repo.FindAll(ctx))
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("find all keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		names := []string{"TV Panasonic Pantalla LCD", "Sony Camara HD Digital", "Apple Ipod"}
		for _, name := range names {
			p := domain.NewProduct(name, 1, &domain.Category{Name: "Electrónica"})
			p.CreatedAt = time.Now().UTC()
			require.NoError(t, repo.Save(ctx, p))
		}

		all, err := repository.Collect(repo.FindAll(ctx))
		require.NoError(t, err)
		require.Len(t, all, len(names))
		for i, p := range all {
			assert.Equal(t, names[i], p.Name)
		}
	})

	t.Run("find by name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := domain.NewProduct("Bianchi Bicicleta", 70.89, &domain.Category{Name: "Deporte"})
		p.CreatedAt = time.Now().UTC()
		require.NoError(t, repo.Save(ctx, p))

		got, err := repo.FindByName(ctx, "Bianchi Bicicleta")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)

		_, err = repo.FindByName(ctx, "Nope")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(context.Background(), "000000000000000000000000")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)

		_, err = repo.FindByID(context.Background(), "not-an-id")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("delete and drop", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var ids []string
		for _, name := range []string{"Mesa", "Silla"} {
			p := domain.NewProduct(name, 10, &domain.Category{Name: "Muebles"})
			p.CreatedAt = time.Now().UTC()
			require.NoError(t, repo.Save(ctx, p))
			ids = append(ids, p.ID)
		}

		require.NoError(t, repo.Delete(ctx, ids[0]))
		_, err := repo.FindByID(ctx, ids[0])
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		assert.NoError(t, repo.Delete(ctx, ids[0]))

		require.NoError(t, repo.Drop(ctx))
		all, err := repository.Collect(repo.FindAll(ctx))
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("property: saved products read back", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		parameters := gopter.DefaultTestParameters()
		parameters.MinSuccessfulTests = 20
		properties := gopter.NewProperties(parameters)

		properties.Property("name, price and category survive a round trip", prop.ForAll(
			func(name string, price float64, category string) bool {
				p := domain.NewProduct(name, price, &domain.Category{Name: category})
				p.CreatedAt = time.Now().UTC()
				if err := repo.Save(ctx, p); err != nil || p.ID == "" {
					return false
				}

				got, err := repo.FindByID(ctx, p.ID)
				if err != nil {
					return false
				}
				return got.Name == name &&
					got.PriceValue() == price &&
					got.Category != nil && got.Category.Name == category
			},
			gen.AlphaString(),
			gen.Float64Range(0, 100000),
			gen.AlphaString(),
		))

		properties.TestingRun(t, gopter.ConsoleReporter(false))
	})
}

// CategoryRepository runs the category contract against a fresh repository from newRepo
func CategoryRepository(t *testing.T, newRepo func(t *testing.T) repository.CategoryRepository) {
	t.Run("save, find and drop", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		names := []string{"Electrónica", "Deporte", "Informática", "Muebles"}
		for _, name := range names {
			c := &domain.Category{Name: name}
			require.NoError(t, repo.Save(ctx, c))
			require.NotEmpty(t, c.ID)

			got, err := repo.FindByID(ctx, c.ID)
			require.NoError(t, err)
			assert.Equal(t, *c, *got)
		}

		all, err := repository.Collect(repo.FindAll(ctx))
		require.NoError(t, err)
		require.Len(t, all, len(names))
		for i, c := range all {
			assert.Equal(t, names[i], c.Name)
		}

		byName, err := repo.FindByName(ctx, "Muebles")
		require.NoError(t, err)
		assert.Equal(t, all[3].ID, byName.ID)

		_, err = repo.FindByName(ctx, "Jardín")
		assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
		_, err = repo.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, repository.ErrCategoryNotFound)

		require.NoError(t, repo.Drop(ctx))
		all, err = repository.Collect(repo.FindAll(ctx))
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
