package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func newTestCommand() *cli.Command {
	return &cli.Command{
		Name:     "containertoken",
		Commands: getCommands("test"),
	}
}

func TestIssueTokenCommand(t *testing.T) {
	t.Run("Success_IntegerFlagsReachTheUseCase", func(t *testing.T) {
		err := newTestCommand().Run(context.Background(), []string{
			"containertoken", "issue-token",
			"--application-id", uuid.Must(uuid.NewV7()).String(),
			"--node-address", "nm1:1234",
			"--sequence", "7",
			"--memory-mb", "2048",
			"--vcores", "2",
		})

		require.NoError(t, err)
	})

	t.Run("Error_MissingRequiredFlags", func(t *testing.T) {
		err := newTestCommand().Run(context.Background(), []string{
			"containertoken", "issue-token",
		})

		assert.Error(t, err)
	})
}
