package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	svc := newTestService(t)
	health := NewHealthService("1.2.3", "2026-08-30", nil, svc, nil)

	t.Run("reports healthy with no datasets", func(t *testing.T) {
		status := health.Health(context.Background())
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "1.2.3", status.Version)
		assert.Empty(t, status.Datasets)
	})

	t.Run("reports loaded dataset sizes", func(t *testing.T) {
		importSpirits(t, svc)
		status := health.Health(context.Background())
		require.Contains(t, status.Datasets, "spirits")
		assert.Equal(t, 2, status.Datasets["spirits"])
	})
}
