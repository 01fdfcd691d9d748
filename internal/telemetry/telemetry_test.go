package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewNilRegistererIsNoOp(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)
	require.Nil(t, m)

	// Must not panic on a nil receiver.
	m.ObserveGeneration(3, 1, 2, 12.5)
}

func TestObserveGeneration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	m.ObserveGeneration(4, 1, 2, 7.0)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	require.Error(t, err)
}
