package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"+254700123456":         true,
		"0700123456":            true,
		"+254 700 123":          true,
		"1234567":               true,
		"+1234567890123456789":  true,
		"12345678901234567890":  false,
		"+12345678901234567890": false,
		"123456":                false,
		"+25470a123456":         false,
		"":                      false,
		"++254700123":           false,
	}
	for phone, want := range cases {
		assert.Equal(t, want, ValidPhone(phone), phone)
	}
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type payload struct {
		Phone string `json:"phone" validate:"required,phone"`
		Time  string `json:"time" validate:"required,hhmm"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	errs := ValidateStruct(payload{Phone: "12", Time: "9am", Email: "nope"})
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "time")
	assert.Contains(t, errs, "email")

	assert.Nil(t, ValidateStruct(payload{Phone: "+254700123456", Time: "10:00"}))
}

func TestValidateStruct_LengthLimits(t *testing.T) {
	type payload struct {
		Phone string `json:"phone" validate:"required,phone"`
		Email string `json:"email" validate:"omitempty,email,max=255"`
		Name  string `json:"name" validate:"max=5"`
	}

	errs := ValidateStruct(payload{
		Phone: strings.Repeat("7", 30),
		Email: strings.Repeat("a", 300) + "@x.io",
		Name:  "Josephine",
	})
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "email")
	assert.Equal(t, "Must be at most 5 characters", errs["name"])
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("-2", 1))
}
