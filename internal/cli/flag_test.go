package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStringFlag = StringFlag{Name: "datadir", Shorthand: "d", DefValue: "./db"}
	testBoolFlag   = BoolFlag{Name: "metrics", DefValue: false}
	testIntFlag    = IntFlag{Name: "verbosity", DefValue: 3}
	testEpochFlag  = Uint64Flag{Name: "epoch", DefValue: 0}
	testOldFlag    = IntFlag{Name: "log_level", DefValue: 3, Deprecated: "use --verbosity"}
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	require.NoError(t, RegisterFlags(cmd, []Flag{
		testStringFlag, testBoolFlag, testIntFlag, testEpochFlag, testOldFlag,
	}))
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestFlagValues(t *testing.T) {
	cmd := newTestCommand(t, "-d", "/tmp/x", "--metrics", "--epoch", "18446744073709551615")

	assert.Equal(t, "/tmp/x", GetStringFlagValue(cmd, testStringFlag))
	assert.True(t, GetBoolFlagValue(cmd, testBoolFlag))
	assert.Equal(t, 3, GetIntFlagValue(cmd, testIntFlag))
	assert.Equal(t, uint64(18446744073709551615), GetUint64FlagValue(cmd, testEpochFlag))

	assert.True(t, IsFlagChanged(cmd, testStringFlag))
	assert.False(t, IsFlagChanged(cmd, testIntFlag))
	assert.True(t, HasFlagsChanged(cmd, []Flag{testIntFlag, testEpochFlag}))
	assert.False(t, HasFlagsChanged(cmd, []Flag{testIntFlag, testOldFlag}))
}

func TestDeprecatedFlagIsHidden(t *testing.T) {
	cmd := newTestCommand(t)
	f := cmd.Flags().Lookup(testOldFlag.Name)
	require.NotNil(t, f)
	assert.True(t, f.Hidden)
	assert.Equal(t, "use --verbosity", f.Deprecated)
}

func TestParseErrorHandle(t *testing.T) {
	var got error
	SetParseErrorHandle(func(err error) { got = err })
	defer SetParseErrorHandle(nil)

	cmd := &cobra.Command{Use: "empty"}
	assert.Equal(t, "", GetStringFlagValue(cmd, testStringFlag))
	assert.Error(t, got)
}

func TestPersistentFlags(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	require.NoError(t, RegisterPFlags(root, []Flag{testStringFlag}))
	require.NoError(t, root.PersistentFlags().Parse([]string{"--datadir", "p"}))
	assert.Equal(t, "p", GetStringPersistentFlagValue(root, testStringFlag))
}
