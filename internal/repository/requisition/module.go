package requisition

import "go.uber.org/fx"

// Module provides the requisition repository to Fx.
var Module = fx.Provide(NewRepository)
