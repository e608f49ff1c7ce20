package services

import (
	"testing"

	"github.com/ArtemKriachko/voidlink/internal/errs"

	"github.com/stretchr/testify/assert"
)

func TestValidateTargetURL(t *testing.T) {
	t.Run("Bare domain upgraded to https", func(t *testing.T) {
		got, err := ValidateTargetURL("example.com")
		assert.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("Valid http passes through", func(t *testing.T) {
		got, err := ValidateTargetURL("http://example.com/path?q=1")
		assert.NoError(t, err)
		assert.Equal(t, "http://example.com/path?q=1", got)
	})

	t.Run("Rejects ftp scheme", func(t *testing.T) {
		_, err := ValidateTargetURL("ftp://x")
		assert.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("Rejects loopback hosts", func(t *testing.T) {
		for _, raw := range []string{"http://127.0.0.1", "http://localhost:8080/x", "https://0.0.0.0", "LOCALHOST/admin"} {
			_, err := ValidateTargetURL(raw)
			assert.Error(t, err, raw)
			assert.True(t, errs.IsValidation(err), raw)
		}
	})

	t.Run("Rejects empty input", func(t *testing.T) {
		_, err := ValidateTargetURL("   ")
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("Rejects missing host", func(t *testing.T) {
		_, err := ValidateTargetURL("https://")
		assert.True(t, errs.IsValidation(err))
	})
}
