package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestSenderProfileValidation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(SenderProfile{
		FullName:    "Saloni Ranka",
		PhoneNumber: "555-0100",
		LinkedInURL: "https://linkedin.com/in/saloni",
	}))

	// LinkedIn is optional, the rest is not.
	assert.NoError(t, validate.Struct(SenderProfile{FullName: "Saloni Ranka", PhoneNumber: "555-0100"}))
	assert.Error(t, validate.Struct(SenderProfile{PhoneNumber: "555-0100"}))
	assert.Error(t, validate.Struct(SenderProfile{FullName: "Saloni Ranka"}))
	assert.Error(t, validate.Struct(SenderProfile{
		FullName:    "Saloni Ranka",
		PhoneNumber: "555-0100",
		LinkedInURL: "not a url",
	}))
}

func TestHasLinkedIn(t *testing.T) {
	assert.False(t, SenderProfile{}.HasLinkedIn())
	assert.False(t, SenderProfile{LinkedInURL: "   "}.HasLinkedIn())
	assert.True(t, SenderProfile{LinkedInURL: "https://linkedin.com/in/x"}.HasLinkedIn())
}
