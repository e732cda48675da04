package main

import (
	"fmt"
	"os"

	"github.com/khushal-mali/ai-workout-tracker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
