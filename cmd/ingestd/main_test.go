package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{
		"serve", "echo", "route:list",
		"migrate", "migrate:rollback", "migrate:status", "seed",
		"token", "archive:list",
	})
}

func TestTokenFlags(t *testing.T) {
	f := tokenCmd.Flags()
	for _, name := range []string{"subject", "retailer", "ttl"} {
		assert.NotNil(t, f.Lookup(name), name)
	}
	assert.NotNil(t, archiveListCmd.Flags().Lookup("date"))
}
