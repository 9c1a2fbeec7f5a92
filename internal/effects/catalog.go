package effects

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/coursesync/internal/api"
	"github.com/noah-isme/coursesync/internal/state"
	"github.com/noah-isme/coursesync/pkg/apperrors"
)

// CatalogCoordinator loads the public course catalog.
type CatalogCoordinator interface {
	Fetch(ctx context.Context) error
}

type catalogCoordinator struct {
	store  Dispatcher
	client api.Client
	logger zerolog.Logger
}

// NewCatalogCoordinator constructs the catalog coordinator.
func NewCatalogCoordinator(store Dispatcher, client api.Client, logger zerolog.Logger) CatalogCoordinator {
	return &catalogCoordinator{
		store:  store,
		client: client,
		logger: logger.With().Str("component", "catalog_coordinator").Logger(),
	}
}

func (c *catalogCoordinator) Fetch(ctx context.Context) error {
	c.store.Dispatch(state.CatalogFetchStarted{})

	courses, err := c.client.ListCourses(ctx)
	if err != nil {
		appErr := apperrors.FromError(err)
		logFailure(c.logger, "fetch_catalog", err)
		c.store.Dispatch(state.CatalogFetchFailed{Message: appErr.Message})
		return appErr
	}

	c.store.Dispatch(state.CatalogFetchSucceeded{Courses: courses})
	c.logger.Debug().Int("count", len(courses)).Msg("catalog loaded")
	return nil
}
