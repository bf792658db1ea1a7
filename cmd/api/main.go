package main

import (
	"os"

	"github.com/cineflow/cineflow/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
