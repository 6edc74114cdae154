package app

import (
	"go.uber.org/fx"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/cache"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/config"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/database"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/logger"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/mailer"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/messaging"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/observability"
	repositoryrequisition "github.com/KevynGreenn/Izi-Hotel-Compras/internal/repository/requisition"
	grpcserver "github.com/KevynGreenn/Izi-Hotel-Compras/internal/server/grpc"
	httpserver "github.com/KevynGreenn/Izi-Hotel-Compras/internal/server/http"
	servicerequisition "github.com/KevynGreenn/Izi-Hotel-Compras/internal/service/requisition"
	transporthttp "github.com/KevynGreenn/Izi-Hotel-Compras/internal/transport/http"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/worker"
	workerrequisition "github.com/KevynGreenn/Izi-Hotel-Compras/internal/worker/requisition"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	mailer.Module,
	messaging.Module,
	observability.Module,
	repositoryrequisition.Module,
	servicerequisition.Module,
)

// HTTP wires the HTTP transport (plus the gRPC health endpoint) on top of
// the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	grpcserver.Module,
	transporthttp.Module,
)

// Worker exposes background requisition event processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerrequisition.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
