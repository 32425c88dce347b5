package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	r := Success(map[string]interface{}{"rows": 3})
	assert.Equal(t, true, r["success"])
	assert.Equal(t, 3, r["rows"])
	assert.False(t, r.IsError())
	assert.Empty(t, r.ErrorMessage())
}

func TestErrorf(t *testing.T) {
	r := Errorf("bad value: %d", 7)
	assert.True(t, r.IsError())
	assert.Equal(t, "bad value: 7", r.ErrorMessage())
	_, hasSuccess := r["success"]
	assert.False(t, hasSuccess)
}

func TestErrorWithHelp(t *testing.T) {
	r := ErrorWithHelp("no API key", "set RESEND_API_KEY")
	assert.True(t, r.IsError())
	assert.Equal(t, "no API key", r.ErrorMessage())
	assert.Equal(t, "set RESEND_API_KEY", r["help"])
}
