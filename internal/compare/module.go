package compare

import (
	"context"
	"time"

	"github.com/Rehnamol/boqmerge/internal/compare/event"
	"github.com/Rehnamol/boqmerge/internal/compare/inbound"
	"github.com/Rehnamol/boqmerge/internal/compare/store"
	"github.com/Rehnamol/boqmerge/internal/compare/usecase"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgconfig"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgrouter"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkgroutine"
	"github.com/Rehnamol/boqmerge/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	storage := store.NewInMemoryStore()

	bus := event.NewBus(256)
	consumer := event.NewAuditConsumer(bus, event.LogAuditor{}, event.ConsumerConfig{
		Workers:     2,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	eventIDs, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Store:    storage,
		Events:   bus,
		Runner:   dep.Goroutine,
		Clock:    nil,
		ID:       dep.ID,
		EventIDs: eventIDs,
		RootCtx:  dep.Context,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.Limits{
		MaxFiles:      int(dep.Config.GetInt("upload.max_files")),
		MaxTotalBytes: dep.Config.GetInt("upload.max_total_bytes"),
	})

	return consumer.Stop, nil
}
