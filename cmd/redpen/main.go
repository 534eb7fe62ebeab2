// Package main provides the RedPen command-line tool.
package main

import (
	"os"

	"github.com/tool-recommender-bot/redpen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
