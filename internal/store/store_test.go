package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
)

func staticBuilder() Builder {
	return func() (*logconf.Config, error) {
		return logconf.Build(logconf.Settings{BaseLogFolder: "/usr/local/airflow/logs"})
	}
}

func TestNewBuildsInitialSnapshot(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	s, err := New(staticBuilder(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	snap := s.Get()
	require.NotNil(t, snap.Config)
	assert.Equal(t, now, snap.BuiltAt)
	assert.Equal(t, 1, snap.Config.Version)
}

func TestNewRequiresBuilder(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilBuilder)
}

func TestNewPropagatesBuildFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(func() (*logconf.Config, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestGetReturnsDefensiveCopy(t *testing.T) {
	s, err := New(staticBuilder())
	require.NoError(t, err)

	first := s.Get()
	first.Config.Handlers["console"].Formatter = "mutated"
	first.Config.Root.Handlers[0] = "mutated"

	second := s.Get()
	assert.Equal(t, "airflow_coloured", second.Config.Handlers["console"].Formatter)
	assert.Equal(t, "console", second.Config.Root.Handlers[0])
}

func TestRefreshAdvancesSnapshot(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	s, err := New(staticBuilder(), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	now = now.Add(time.Hour)
	snap, err := s.Refresh()
	require.NoError(t, err)
	assert.Equal(t, now, snap.BuiltAt)
	assert.Equal(t, now, s.Get().BuiltAt)
}

func TestRefreshKeepsOldSnapshotOnFailure(t *testing.T) {
	fail := false
	builder := func() (*logconf.Config, error) {
		if fail {
			return nil, errors.New("broken environment")
		}
		return logconf.Build(logconf.Settings{BaseLogFolder: "/usr/local/airflow/logs"})
	}

	s, err := New(builder)
	require.NoError(t, err)
	before := s.Get()

	fail = true
	_, err = s.Refresh()
	require.Error(t, err)

	after := s.Get()
	assert.Equal(t, before.BuiltAt, after.BuiltAt)
	require.NotNil(t, after.Config)
}
