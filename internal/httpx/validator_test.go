package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidISBN(t *testing.T) {
	valid := []string{"9784001141276", "978-4-00-114127-6", "400114127X", "4001141272"}
	for _, isbn := range valid {
		assert.True(t, ValidISBN(isbn), isbn)
	}

	invalid := []string{"", "123", "97840011412761", "400114127Y", "abcdefghij"}
	for _, isbn := range invalid {
		assert.False(t, ValidISBN(isbn), isbn)
	}
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Email string `json:"email" validate:"required,email"`
		ISBN  string `json:"isbn" validate:"required,isbn"`
	}

	assert.Nil(t, ValidateStruct(request{Email: "a@example.com", ISBN: "9784001141276"}))

	details := ValidateStruct(request{Email: "nope", ISBN: "123"})
	assert.Len(t, details, 2)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "isbn", details[1].Field)
}
