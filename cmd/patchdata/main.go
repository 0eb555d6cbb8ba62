// patchdata builds and queries the icon patch dataset used by the icon browser.
package main

import (
	"fmt"
	"os"

	"github.com/a1hena/IconBrowser/internal/logger"
)

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
