package mongodb

import (
	"time"

	"catalog-api/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	ProductsCollection = "products"
	ReviewsCollection  = "reviews"
)

type productDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Category      string             `bson:"category"`
	Price         float64            `bson:"price"`
	Image         string             `bson:"image"`
	DateAdded     time.Time          `bson:"dateAdded"`
	AverageRating float64            `bson:"averageRating"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d productDocument) toModel() model.Product {
	return model.Product{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Category:      d.Category,
		Price:         d.Price,
		Image:         d.Image,
		DateAdded:     d.DateAdded,
		AverageRating: d.AverageRating,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"productId"`
	Author    string             `bson:"author"`
	Rating    float64            `bson:"rating"`
	Comment   string             `bson:"comment"`
	Date      time.Time          `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d reviewDocument) toModel() model.Review {
	return model.Review{
		ID:        d.ID.Hex(),
		ProductID: d.ProductID.Hex(),
		Author:    d.Author,
		Rating:    d.Rating,
		Comment:   d.Comment,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// objectID parses a hex ID. ok is false for strings that cannot be
// ObjectIDs, which callers treat as "no such record".
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
