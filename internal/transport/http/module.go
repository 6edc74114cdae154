package http

import (
	"go.uber.org/fx"

	requisitiontransport "github.com/KevynGreenn/Izi-Hotel-Compras/internal/transport/http/requisition"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	requisitiontransport.Module,
)
