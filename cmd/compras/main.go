package main

import (
	"os"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
