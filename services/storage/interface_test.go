package storage

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDataURL(t *testing.T) {
	png := base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))

	assert.NoError(t, ValidateDataURL("data:image/png;base64,"+png))
	assert.NoError(t, ValidateDataURL("data:image/jpeg;base64,"+png))

	for name, in := range map[string]string{
		"no comma":      "data:image/png;base64",
		"svg":           "data:image/svg+xml;base64," + png,
		"not base64":    "data:image/png;base64,%%%",
		"empty payload": "data:image/png;base64,",
		"too large":     "data:image/png;base64," + strings.Repeat("A", 3<<20),
	} {
		assert.ErrorIs(t, ValidateDataURL(in), ErrInvalidImage, name)
	}
}
