package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-api/internal/model"
	"catalog-api/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewServiceMocks struct {
	products   *MockProductRepository
	reviews    *MockReviewRepository
	aggregator *MockRatingAggregator
}

func newReviewService() (ReviewService, reviewServiceMocks) {
	m := reviewServiceMocks{
		products:   new(MockProductRepository),
		reviews:    new(MockReviewRepository),
		aggregator: new(MockRatingAggregator),
	}
	return NewReviewService(m.products, m.reviews, m.aggregator, zerolog.Nop()), m
}

func (m reviewServiceMocks) assert(t *testing.T) {
	m.products.AssertExpectations(t)
	m.reviews.AssertExpectations(t)
	m.aggregator.AssertExpectations(t)
}

var testProduct = &model.Product{ID: "P001", Name: "Lamp"}

func TestReviewService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Product not found", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P999").Return(nil, nil)

		reviews, err := svc.List(ctx, "P999")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, reviews)
		m.assert(t)
	})

	t.Run("Reviews newest first", func(t *testing.T) {
		svc, m := newReviewService()
		stored := []model.Review{{ID: "R2"}, {ID: "R1"}}
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("ListByProduct", ctx, "P001").Return(stored, nil)

		reviews, err := svc.List(ctx, "P001")
		require.NoError(t, err)
		assert.Equal(t, stored, reviews)
		m.assert(t)
	})
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success recomputes rating", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("Create", ctx, mock.MatchedBy(func(r *model.Review) bool {
			return r.ProductID == "P001" && r.Author == "Jane" && r.Rating == 4.5 && r.Comment == "Works great"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Review).ID = "R1"
		}).Return(nil)
		m.aggregator.On("Recompute", ctx, "P001").Return(4.5, nil).Once()

		review, err := svc.Create(ctx, "P001", &model.CreateReviewRequest{
			Author:  " Jane ",
			Rating:  ptr(model.RatingInput(4.5)),
			Comment: "Works great",
		})

		require.NoError(t, err)
		assert.Equal(t, "R1", review.ID)
		assert.Equal(t, "Jane", review.Author)
		assert.WithinDuration(t, time.Now(), review.Date, time.Minute)
		m.assert(t)
	})

	t.Run("Validation runs before product lookup", func(t *testing.T) {
		svc, m := newReviewService()

		review, err := svc.Create(ctx, "P999", &model.CreateReviewRequest{Author: "J", Rating: ptr(model.RatingInput(7.0)), Comment: "ok"})
		assert.Nil(t, review)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Errors, 3)
		m.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Product not found", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P999").Return(nil, nil)

		review, err := svc.Create(ctx, "P999", &model.CreateReviewRequest{Author: "Jane", Rating: ptr(model.RatingInput(3.0)), Comment: "Works great"})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, review)
		m.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("Aggregator failure is returned", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("Create", ctx, mock.AnythingOfType("*model.Review")).Return(nil)
		m.aggregator.On("Recompute", ctx, "P001").Return(0.0, model.ErrProductNotFound)

		review, err := svc.Create(ctx, "P001", &model.CreateReviewRequest{Author: "Jane", Rating: ptr(model.RatingInput(3.0)), Comment: "Works great"})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, review)
		m.assert(t)
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *model.Review {
		return &model.Review{ID: "R1", ProductID: "P001", Author: "Jane", Rating: 4, Comment: "Works great"}
	}

	t.Run("Only supplied fields change", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("GetForProduct", ctx, "P001", "R1").Return(existing(), nil)
		m.reviews.On("Update", ctx, mock.MatchedBy(func(r *model.Review) bool {
			return r.Author == "Jane" && r.Rating == 2 && r.Comment == "Works great"
		})).Return(nil)
		m.aggregator.On("Recompute", ctx, "P001").Return(2.0, nil).Once()

		review, err := svc.Update(ctx, "P001", "R1", &model.UpdateReviewRequest{Rating: ptr(model.RatingInput(2.0))})
		require.NoError(t, err)
		assert.Equal(t, 2.0, review.Rating)
		assert.Equal(t, "Works great", review.Comment)
		m.assert(t)
	})

	t.Run("Review of another product", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("GetForProduct", ctx, "P001", "R9").Return(nil, nil)

		review, err := svc.Update(ctx, "P001", "R9", &model.UpdateReviewRequest{Comment: ptr("Changed my mind")})
		assert.ErrorIs(t, err, model.ErrReviewNotFound)
		assert.Nil(t, review)
		m.aggregator.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("Product not found", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P999").Return(nil, nil)

		review, err := svc.Update(ctx, "P999", "R1", &model.UpdateReviewRequest{})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, review)
		m.assert(t)
	})

	t.Run("Supplied empty author is invalid", func(t *testing.T) {
		svc, m := newReviewService()

		review, err := svc.Update(ctx, "P001", "R1", &model.UpdateReviewRequest{Author: ptr("   ")})
		assert.Nil(t, review)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "author", verr.Errors[0].Field)
		m.assert(t)
	})

	t.Run("Store error is wrapped", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("GetForProduct", ctx, "P001", "R1").Return(existing(), nil)
		m.reviews.On("Update", ctx, mock.AnythingOfType("*model.Review")).Return(errors.New("write conflict"))

		_, err := svc.Update(ctx, "P001", "R1", &model.UpdateReviewRequest{Rating: ptr(model.RatingInput(5.0))})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update review")
		m.assert(t)
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success recomputes rating", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("Delete", ctx, "P001", "R1").Return(nil)
		m.aggregator.On("Recompute", ctx, "P001").Return(0.0, nil).Once()

		require.NoError(t, svc.Delete(ctx, "P001", "R1"))
		m.assert(t)
	})

	t.Run("Review not found", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P001").Return(testProduct, nil)
		m.reviews.On("Delete", ctx, "P001", "R1").Return(model.ErrReviewNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, "P001", "R1"), model.ErrReviewNotFound)
		m.aggregator.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("Product lookup error", func(t *testing.T) {
		svc, m := newReviewService()
		m.products.On("GetByID", ctx, "P999").Return(nil, errors.New("boom"))

		err := svc.Delete(ctx, "P999", "R1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrProductNotFound)
		m.assert(t)
	})
}
