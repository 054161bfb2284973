package main

import (
	"context"
	"os"

	"github.com/osse101/FrameCraft_Go/internal/config"
)

type CheckEnvCommand struct{}

func (c *CheckEnvCommand) Name() string {
	return "check-env"
}

func (c *CheckEnvCommand) Description() string {
	return "Compare the environment with what the service needs"
}

func (c *CheckEnvCommand) Run(_ context.Context, _ []string) error {
	PrintHeader("Environment")
	return reportEnv(os.LookupEnv)
}

func reportEnv(lookup func(string) (string, bool)) error {
	report, err := config.CheckEnv(lookup)
	if err != nil {
		return err
	}
	for _, key := range report.Missing {
		PrintError("missing %s", key)
	}
	for _, w := range report.Warnings {
		PrintWarning("%s", w)
	}
	if err := report.Err(); err != nil {
		return err
	}
	PrintSuccess("Environment looks complete")
	return nil
}
