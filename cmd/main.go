package main

import (
	"os"

	"github.com/sunnet-n/quiz-game/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
