package rating_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRating(t *testing.T) {
	validID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	raterID := kernel.NewUUID()
	ratedID := kernel.NewUUID()
	createdAt := time.Now()

	t.Run("should create valid rating with all valid parameters", func(t *testing.T) {
		comment := "smooth handoff"

		r, err := rating.NewRating(validID, orderID, raterID, ratedID, 4.5, &comment, createdAt)

		require.NoError(t, err)
		assert.NotNil(t, r)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(validID))
		assert.True(t, r.OrderID().IsEqual(orderID))
		assert.True(t, r.RaterID().IsEqual(raterID))
		assert.True(t, r.RatedID().IsEqual(ratedID))
		assert.InDelta(t, 4.5, r.Value(), 0.0001)
		require.NotNil(t, r.Comment())
		assert.Equal(t, comment, *r.Comment())
		assert.Equal(t, createdAt, r.CreatedAt())
	})

	t.Run("should create rating without comment", func(t *testing.T) {
		r, err := rating.NewRating(validID, orderID, raterID, ratedID, 3.0, nil, createdAt)

		require.NoError(t, err)
		assert.Nil(t, r.Comment())
	})

	t.Run("should accept boundary values", func(t *testing.T) {
		low, err := rating.NewRating(validID, orderID, raterID, ratedID, rating.MinValue, nil, createdAt)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, low.Value(), 0.0001)

		high, err := rating.NewRating(validID, orderID, raterID, ratedID, rating.MaxValue, nil, createdAt)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, high.Value(), 0.0001)
	})

	t.Run("should fail with value below minimum", func(t *testing.T) {
		r, err := rating.NewRating(validID, orderID, raterID, ratedID, 0.9, nil, createdAt)

		require.Error(t, err)
		assert.Nil(t, r)
		assert.Contains(t, err.Error(), "min value is 1")
	})

	t.Run("should fail with value above maximum", func(t *testing.T) {
		r, err := rating.NewRating(validID, orderID, raterID, ratedID, 5.1, nil, createdAt)

		require.Error(t, err)
		assert.Nil(t, r)
		assert.Contains(t, err.Error(), "max value is 5")
	})

	t.Run("should fail when rater equals rated", func(t *testing.T) {
		r, err := rating.NewRating(validID, orderID, raterID, raterID, 4.0, nil, createdAt)

		require.Error(t, err)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, rating.ErrRatingSelfNotAllowed)
	})

	t.Run("should fail with invalid order UUID", func(t *testing.T) {
		var invalidOrderID kernel.UUID

		r, err := rating.NewRating(validID, invalidOrderID, raterID, ratedID, 4.0, nil, createdAt)

		require.Error(t, err)
		assert.Nil(t, r)
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestRating_Validate(t *testing.T) {
	t.Run("should fail validation for nil rating", func(t *testing.T) {
		var r *rating.Rating

		err := r.Validate()

		require.Error(t, err)
		assert.Equal(t, rating.ErrRatingIsNotConstructed, err)
	})
}
