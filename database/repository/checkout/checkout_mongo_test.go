package checkoutRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, int64(50), ClampLimit(0))
	assert.Equal(t, int64(50), ClampLimit(-3))
	assert.Equal(t, int64(10), ClampLimit(10))
	assert.Equal(t, int64(500), ClampLimit(5000))
}
