package main

import (
	"os"

	"github.com/spigell/job-recommender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
