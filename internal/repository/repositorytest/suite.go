// Package repositorytest holds behavioural tests shared by every
// repository implementation.
package repositorytest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns repositories backed by an empty store.
type Factory func(t *testing.T) (repository.ProductRepository, repository.ReviewRepository)

// Run exercises the repository contract. missingID must be a well-formed
// ID for the store that no record uses.
func Run(t *testing.T, missingID string, newRepos Factory) {
	t.Run("ProductCreateAndGet", func(t *testing.T) {
		products, _ := newRepos(t)
		testProductCreateAndGet(t, products, missingID)
	})
	t.Run("ProductListAndCount", func(t *testing.T) {
		products, _ := newRepos(t)
		testProductListAndCount(t, products)
	})
	t.Run("ProductSearch", func(t *testing.T) {
		products, _ := newRepos(t)
		testProductSearch(t, products)
	})
	t.Run("ProductUpdateAverageRating", func(t *testing.T) {
		products, _ := newRepos(t)
		testUpdateAverageRating(t, products, missingID)
	})
	t.Run("ReviewLifecycle", func(t *testing.T) {
		products, reviews := newRepos(t)
		testReviewLifecycle(t, products, reviews, missingID)
	})
	t.Run("ReviewOwnership", func(t *testing.T) {
		products, reviews := newRepos(t)
		testReviewOwnership(t, products, reviews)
	})
}

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// NewProduct returns a valid product added at base plus offset.
func NewProduct(name, category string, offset time.Duration) *model.Product {
	added := base.Add(offset)
	return &model.Product{
		Name:        name,
		Description: name + " description",
		Category:    category,
		Price:       19.99,
		Image:       "/images/" + name + ".png",
		DateAdded:   added,
		CreatedAt:   added,
		UpdatedAt:   added,
	}
}

// NewReview returns a valid review dated base plus offset.
func NewReview(productID string, rating float64, offset time.Duration) *model.Review {
	date := base.Add(offset)
	return &model.Review{
		ProductID: productID,
		Author:    "Reviewer",
		Rating:    rating,
		Comment:   "Solid purchase overall",
		Date:      date,
		CreatedAt: date,
		UpdatedAt: date,
	}
}

func mustCreateProduct(t *testing.T, repo repository.ProductRepository, p *model.Product) *model.Product {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), p))
	require.NotEmpty(t, p.ID)
	return p
}

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func testProductCreateAndGet(t *testing.T, repo repository.ProductRepository, missingID string) {
	ctx := context.Background()
	created := mustCreateProduct(t, repo, NewProduct("Lamp", "Home", 0))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, "Lamp description", got.Description)
	assert.Equal(t, "Home", got.Category)
	assert.Equal(t, 19.99, got.Price)
	assert.Equal(t, "/images/Lamp.png", got.Image)
	assert.Equal(t, 0.0, got.AverageRating)
	assert.WithinDuration(t, created.DateAdded, got.DateAdded, time.Millisecond)

	missing, err := repo.GetByID(ctx, missingID)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	malformed, err := repo.GetByID(ctx, "not-an-id")
	assert.NoError(t, err)
	assert.Nil(t, malformed)
}

func testProductListAndCount(t *testing.T, repo repository.ProductRepository) {
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		category := "Books"
		if i%3 == 0 {
			category = "Toys"
		}
		mustCreateProduct(t, repo, NewProduct(fmt.Sprintf("item-%02d", i), category, time.Duration(i)*time.Hour))
	}

	total, err := repo.Count(ctx, model.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 12, total)

	toys, err := repo.Count(ctx, model.ProductFilter{Category: "Toys"})
	require.NoError(t, err)
	assert.Equal(t, 4, toys)

	none, err := repo.Count(ctx, model.ProductFilter{Category: "toys"})
	require.NoError(t, err)
	assert.Equal(t, 0, none)

	first, err := repo.List(ctx, model.ProductFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "item-11", first[0].Name)
	assert.Equal(t, "item-02", first[9].Name)

	second, err := repo.List(ctx, model.ProductFilter{}, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"item-01", "item-00"}, names(second))

	past, err := repo.List(ctx, model.ProductFilter{}, 10, 20)
	require.NoError(t, err)
	assert.NotNil(t, past)
	assert.Empty(t, past)

	filtered, err := repo.List(ctx, model.ProductFilter{Category: "Toys"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"item-09", "item-06", "item-03", "item-00"}, names(filtered))
}

func testProductSearch(t *testing.T, repo repository.ProductRepository) {
	ctx := context.Background()
	mustCreateProduct(t, repo, NewProduct("Wireless Mouse", "Electronics", 0))
	mustCreateProduct(t, repo, NewProduct("Mouse Pad", "Electronics", time.Hour))
	mustCreateProduct(t, repo, NewProduct("Keyboard", "Electronics", 2*time.Hour))
	mustCreateProduct(t, repo, NewProduct("100% Cotton Shirt", "Apparel", 3*time.Hour))

	found, err := repo.Search(ctx, "mOuSe")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mouse Pad", "Wireless Mouse"}, names(found))

	literal, err := repo.Search(ctx, "0%")
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Cotton Shirt"}, names(literal))

	pattern, err := repo.Search(ctx, "M.use")
	require.NoError(t, err)
	assert.NotNil(t, pattern)
	assert.Empty(t, pattern)

	nothing, err := repo.Search(ctx, "laptop")
	require.NoError(t, err)
	assert.NotNil(t, nothing)
	assert.Empty(t, nothing)
}

func testUpdateAverageRating(t *testing.T, repo repository.ProductRepository, missingID string) {
	ctx := context.Background()
	p := mustCreateProduct(t, repo, NewProduct("Kettle", "Kitchen", 0))

	require.NoError(t, repo.UpdateAverageRating(ctx, p.ID, 4.3))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, got.AverageRating)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	err = repo.UpdateAverageRating(ctx, missingID, 3)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func testReviewLifecycle(t *testing.T, products repository.ProductRepository, reviews repository.ReviewRepository, missingID string) {
	ctx := context.Background()
	p := mustCreateProduct(t, products, NewProduct("Blender", "Kitchen", 0))

	empty, err := reviews.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	ratings, err := reviews.RatingsByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, ratings)

	older := NewReview(p.ID, 4, 0)
	newer := NewReview(p.ID, 5, time.Hour)
	require.NoError(t, reviews.Create(ctx, older))
	require.NoError(t, reviews.Create(ctx, newer))
	require.NotEmpty(t, older.ID)
	require.NotEqual(t, older.ID, newer.ID)

	listed, err := reviews.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)
	assert.Equal(t, older.ID, listed[1].ID)
	assert.Equal(t, p.ID, listed[0].ProductID)

	ratings, err = reviews.RatingsByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []float64{4, 5}, ratings)

	older.Rating = 2.5
	older.Comment = "Started leaking after a week"
	older.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, reviews.Update(ctx, older))

	got, err := reviews.GetForProduct(ctx, p.ID, older.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2.5, got.Rating)
	assert.Equal(t, "Started leaking after a week", got.Comment)
	assert.Equal(t, "Reviewer", got.Author)

	require.NoError(t, reviews.Delete(ctx, p.ID, older.ID))

	gone, err := reviews.GetForProduct(ctx, p.ID, older.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, reviews.Delete(ctx, p.ID, older.ID), model.ErrReviewNotFound)
	assert.ErrorIs(t, reviews.Delete(ctx, p.ID, missingID), model.ErrReviewNotFound)

	ratings, err = reviews.RatingsByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, ratings)
}

func testReviewOwnership(t *testing.T, products repository.ProductRepository, reviews repository.ReviewRepository) {
	ctx := context.Background()
	a := mustCreateProduct(t, products, NewProduct("Chair", "Furniture", 0))
	b := mustCreateProduct(t, products, NewProduct("Desk", "Furniture", time.Hour))

	rv := NewReview(a.ID, 3, 0)
	require.NoError(t, reviews.Create(ctx, rv))

	got, err := reviews.GetForProduct(ctx, b.ID, rv.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	malformed, err := reviews.GetForProduct(ctx, a.ID, "not-an-id")
	require.NoError(t, err)
	assert.Nil(t, malformed)

	moved := *rv
	moved.ProductID = b.ID
	moved.Rating = 1
	assert.ErrorIs(t, reviews.Update(ctx, &moved), model.ErrReviewNotFound)
	assert.ErrorIs(t, reviews.Delete(ctx, b.ID, rv.ID), model.ErrReviewNotFound)

	still, err := reviews.GetForProduct(ctx, a.ID, rv.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, 3.0, still.Rating)

	bRatings, err := reviews.RatingsByProduct(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, bRatings)
}
