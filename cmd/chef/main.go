// Command chef is the terminal front end for the HM Chef recipe catalog.
// It drives the same sync engine the mobile app embeds: anonymous sessions
// keep recipes on this machine, authenticated sessions sync against the
// recipe service.
package main

import (
	"fmt"
	"os"

	"github.com/hmchef/hmchef/pkg/logging"
)

func main() {
	logging.Setup()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
