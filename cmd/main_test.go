package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := newRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"serve", "migrate", "user"} {
		assert.Contains(t, out, name)
	}
}

func TestUserCreateRequiresFlags(t *testing.T) {
	_, err := execute(t, "user", "create", "--email", "jane@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestUserCreateValidatesBeforeConnecting(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := execute(t, "user", "create", "--email", "not-an-email", "--name", "Jane", "--password", "hunter22")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user")
}
