package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDContext(t *testing.T) {
	t.Run("round trips", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc")
		assert.Equal(t, "req-abc", RequestIDFromContext(ctx))
	})

	t.Run("missing value yields empty string", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFromContext(context.Background()))
	})
}
