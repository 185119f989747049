package main

import (
	"os"

	"github.com/yourusername/quiz-channels-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
