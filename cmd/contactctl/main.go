package main

import (
	"fmt"
	"os"

	"github.com/sngm3741/contact-site/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
