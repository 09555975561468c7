package main

import (
	"context"
	"os"

	"github.com/ariel-frischer/relnotes/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background()))
}
