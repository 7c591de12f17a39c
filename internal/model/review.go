package model

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Review is a customer review attached to exactly one product.
type Review struct {
	ID        string    `json:"id" db:"id"`
	ProductID string    `json:"productId" db:"product_id"`
	Author    string    `json:"author" db:"author"`
	Rating    float64   `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	Date      time.Time `json:"date" db:"date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// RatingInput is a rating as sent by clients: a JSON number or a string
// holding a decimal number, e.g. 4, 4.5 or "4.5".
type RatingInput float64

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// UnmarshalJSON accepts a number or a numeric string. Anything else is a
// *json.UnmarshalTypeError.
func (r *RatingInput) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '"' {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*r = RatingInput(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	typeErr := &json.UnmarshalTypeError{Value: "string", Type: reflect.TypeOf(float64(0))}
	if !decimalPattern.MatchString(s) {
		return typeErr
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return typeErr
	}
	*r = RatingInput(v)
	return nil
}

// CreateReviewRequest is the payload for adding a review. All fields are required.
type CreateReviewRequest struct {
	Author  string       `json:"author" validate:"required,min=2,max=100"`
	Rating  *RatingInput `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string       `json:"comment" validate:"required,min=5,max=1000"`

	// Fields that were sent but held only whitespace. They fail on length,
	// not on presence.
	blankAuthor  bool
	blankComment bool
}

// Normalize trims surrounding whitespace from the text fields.
func (r *CreateReviewRequest) Normalize() {
	r.blankAuthor = r.Author != "" && strings.TrimSpace(r.Author) == ""
	r.blankComment = r.Comment != "" && strings.TrimSpace(r.Comment) == ""
	r.Author = strings.TrimSpace(r.Author)
	r.Comment = strings.TrimSpace(r.Comment)
}

// ValidationMessage returns the client-facing message for a failed rule.
func (r *CreateReviewRequest) ValidationMessage(field, tag string) string {
	if tag == "required" && ((field == "author" && r.blankAuthor) || (field == "comment" && r.blankComment)) {
		tag = "min"
	}
	return reviewMessage(field, tag)
}

// RatingValue returns the submitted rating. It must only be called after
// validation.
func (r *CreateReviewRequest) RatingValue() float64 {
	return float64(*r.Rating)
}

// UpdateReviewRequest is the payload for updating a review. Only supplied
// fields overwrite the stored review, but supplied fields must be valid.
type UpdateReviewRequest struct {
	Author  *string      `json:"author" validate:"omitempty,min=2,max=100"`
	Rating  *RatingInput `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string      `json:"comment" validate:"omitempty,min=5,max=1000"`
}

// Normalize trims surrounding whitespace from the supplied text fields.
func (r *UpdateReviewRequest) Normalize() {
	if r.Author != nil {
		trimmed := strings.TrimSpace(*r.Author)
		r.Author = &trimmed
	}
	if r.Comment != nil {
		trimmed := strings.TrimSpace(*r.Comment)
		r.Comment = &trimmed
	}
}

// ValidationMessage returns the client-facing message for a failed rule.
func (r *UpdateReviewRequest) ValidationMessage(field, tag string) string {
	return reviewMessage(field, tag)
}

// Apply overwrites the review fields that were supplied in the request.
// It reports whether the rating changed.
func (r *UpdateReviewRequest) Apply(review *Review) bool {
	ratingChanged := false
	if r.Author != nil {
		review.Author = *r.Author
	}
	if r.Rating != nil {
		ratingChanged = review.Rating != float64(*r.Rating)
		review.Rating = float64(*r.Rating)
	}
	if r.Comment != nil {
		review.Comment = *r.Comment
	}
	return ratingChanged
}

func reviewMessage(field, tag string) string {
	required := tag == "required"
	switch field {
	case "author":
		if required {
			return "Author name is required"
		}
		return "Author name must be between 2 and 100 characters"
	case "rating":
		if required {
			return "Rating is required"
		}
		return "Rating must be between 1 and 5"
	case "comment":
		if required {
			return "Comment is required"
		}
		return "Comment must be between 5 and 1000 characters"
	}
	return ""
}
