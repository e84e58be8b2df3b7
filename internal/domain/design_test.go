package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "quota exceeded", FailureMessage(errors.New("quota exceeded")))
	assert.Equal(t, DefaultFailureMessage, FailureMessage(errors.New("")))
	assert.Equal(t, DefaultFailureMessage, FailureMessage(nil))
}

func TestGeneratedDesignFailed(t *testing.T) {
	assert.False(t, GeneratedDesign{URL: "https://img.example/1.png"}.Failed())
	assert.True(t, GeneratedDesign{URL: PlaceholderImageURL, Error: FailureMessage(errors.New(""))}.Failed())
}
