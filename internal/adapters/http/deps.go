package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/routemap/internal/adapters/valkey"
	"github.com/samirrijal/routemap/internal/core/domain"
	"github.com/samirrijal/routemap/internal/core/ports"
	"github.com/samirrijal/routemap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Routes      *usecases.RouteService
	MapOptions  domain.MapOptions
	AccessToken string
	Publisher   ports.EventPublisher // optional
	NATS        *nats.Conn           // optional, readiness only
	Cache       *valkey.Cache        // optional
}
