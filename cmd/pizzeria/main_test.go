package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteListPrintsAPI(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route:list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "METHOD")
	assert.Contains(t, text, "/order/finish")
	assert.Contains(t, text, "orders.send")
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "route:list", "migrate", "migrate:rollback", "migrate:status", "seed"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
