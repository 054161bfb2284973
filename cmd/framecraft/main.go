// Command framecraft prices and inspects frame configurations offline.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/osse101/FrameCraft_Go/internal/handler"
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// Exit codes
const (
	exitUsage = 2
	exitDrift = 3
	exitInput = 4
)

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "framecraft",
		Short:         "Price and inspect custom frame configurations",
		Version:       handler.CurrentVersion().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPriceCommand(),
		newSerializeCommand(),
		newDeserializeCommand(),
		newVerifyCommand(),
		newMatsCommand(),
	)
	return root
}
