package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errBadLevel = errors.New("bad level")

type buildConfig struct {
	level   int
	name    string
	verify  bool
	applied []string
}

type buildOption = Option[*buildConfig]

func withLevel(level int) buildOption {
	return New(func(c *buildConfig) error {
		if level < -2 || level > 9 {
			return errBadLevel
		}
		c.level = level
		c.applied = append(c.applied, "level")

		return nil
	})
}

func withName(name string) buildOption {
	return NoError(func(c *buildConfig) {
		c.name = name
		c.applied = append(c.applied, "name")
	})
}

func withVerify() buildOption {
	return NoError(func(c *buildConfig) {
		c.verify = true
		c.applied = append(c.applied, "verify")
	})
}

func TestApply_InOrder(t *testing.T) {
	cfg := &buildConfig{}

	err := Apply(cfg, withName("a.cab"), withLevel(9), withVerify())
	require.NoError(t, err)
	require.Equal(t, 9, cfg.level)
	require.Equal(t, "a.cab", cfg.name)
	require.True(t, cfg.verify)
	require.Equal(t, []string{"name", "level", "verify"}, cfg.applied)
}

func TestApply_LastWins(t *testing.T) {
	cfg := &buildConfig{}

	require.NoError(t, Apply(cfg, withLevel(1), withLevel(6)))
	require.Equal(t, 6, cfg.level)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &buildConfig{}

	err := Apply(cfg, withName("x"), withLevel(42), withVerify())
	require.ErrorIs(t, err, errBadLevel)
	require.Equal(t, []string{"name"}, cfg.applied)
	require.False(t, cfg.verify)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &buildConfig{level: -1}

	require.NoError(t, Apply(cfg))
	require.Equal(t, -1, cfg.level)
	require.Empty(t, cfg.applied)
}

func TestApply_SliceOfOptions(t *testing.T) {
	defaults := []buildOption{withLevel(-1), withName("default.cab")}
	cfg := &buildConfig{}

	require.NoError(t, Apply(cfg, append(defaults, withName("override.cab"))...))
	require.Equal(t, "override.cab", cfg.name)
	require.Equal(t, -1, cfg.level)
}
