package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := rootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"info", "mint", "approve", "transfer", "owner-of", "balance-of", "token-uri", "tokens-of", "events"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_ArgsValidatedBeforeConnecting(t *testing.T) {
	tests := [][]string{
		{"mint", "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"},
		{"transfer", "0xa", "0xb"},
		{"owner-of"},
	}

	for _, args := range tests {
		cmd := rootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		err := cmd.Execute()
		require.Error(t, err, "args %v", args)
		assert.Contains(t, err.Error(), "arg(s)")
	}
}

func TestCallerOrAdmin(t *testing.T) {
	a := &app{caller: "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"}
	assert.Equal(t, "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2", a.callerOrAdmin())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]int{"balance": 2}))
	assert.Equal(t, "{\n  \"balance\": 2\n}\n", buf.String())
}
