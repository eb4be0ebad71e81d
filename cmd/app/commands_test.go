package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range getCommands("test") {
		names = append(names, cmd.Name)
		assert.NotNil(t, cmd.Action, cmd.Name)
	}

	assert.ElementsMatch(t,
		[]string{"server", "migrate", "seed", "create-sku-key", "create-admin-token"},
		names,
	)
}
