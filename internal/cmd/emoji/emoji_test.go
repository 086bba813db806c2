package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, Success, Status(true))
	assert.Equal(t, Error, Status(false))
}
