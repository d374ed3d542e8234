package utils

import (
	"fmt"
	"os"
)

// Die prints the failing step and its cause to stderr and exits.
func Die(context string, err error) {
	fmt.Fprintln(os.Stderr, DecorateText("✘ EMOSET: "+context, ErrorMessage))
	if err != nil {
		fmt.Fprintln(os.Stderr, DecorateText("  Reason: "+err.Error(), DefaultMessage))
	}
	os.Exit(1)
}
