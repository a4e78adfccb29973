package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-a", "http://localhost:3000", "-x", "ignored", "-t", "5"}
	got := FilterArgs(args, []string{"-a", "-t"})
	require.Equal(t, []string{"-a", "http://localhost:3000", "-t", "5"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "-a=http://x", "--other=1"}
	got := FilterArgs(args, []string{"--config", "-a"})
	require.Equal(t, []string{"--config=conf.json", "-a=http://x"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	// next arg looks like another flag, so it is not consumed as a value
	args := []string{"-a", "-t", "5"}
	got := FilterArgs(args, []string{"-a"})
	require.Equal(t, []string{"-a"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"cmd", "-c", "conf.json", "-a", "http://x"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-a", "http://x"}
	require.Equal(t, "", JsonConfigFlags())
}
