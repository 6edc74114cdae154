package main

import (
	"go.uber.org/fx"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
