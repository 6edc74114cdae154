package requisition

import (
	"go.uber.org/fx"

	repo "github.com/KevynGreenn/Izi-Hotel-Compras/internal/repository/requisition"
)

// Module provides the requisition service to Fx, binding the repository to
// the Store interface so tests can substitute doubles.
var Module = fx.Options(
	fx.Provide(func(r *repo.Repository) Store { return r }),
	fx.Provide(NewService),
)
