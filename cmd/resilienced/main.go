package main

import (
	"github.com/payflow/resilience/internal/cli"
)

func main() {
	cli.Execute()
}
