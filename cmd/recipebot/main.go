// Command recipebot is the recipe voice assistant backend.
package main

import (
	"context"
	"os"

	"github.com/roach88/recipebot/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
