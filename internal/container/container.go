// Package container wires the table source, catalog and session manager from configuration.
package container

import (
	"context"
	"fmt"

	"strbrowser/adapters/postgres"
	"strbrowser/adapters/tabular"
	"strbrowser/internal"
	"strbrowser/internal/config"
	"strbrowser/internal/dataset"
	"strbrowser/internal/errors"
	"strbrowser/internal/session"
	"strbrowser/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure; DB is nil for file sources
	DB     *sqlx.DB
	Source ports.TableSource

	Catalog  *dataset.Catalog
	Sessions *session.Manager
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// OpenSource builds the configured table source, connecting to the database when needed
func (c *Container) OpenSource() (ports.TableSource, error) {
	if c.Source != nil {
		return c.Source, nil
	}

	switch c.Config.Data.Source {
	case config.SourcePostgres:
		db, err := postgres.Connect(c.Config.Database.URL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to database")
		}
		src, err := postgres.NewTableRepository(db, c.Config.Database.AlleleTable, c.Config.Database.MotifTable)
		if err != nil {
			db.Close()
			return nil, err
		}
		c.DB, c.Source = db, src
	default:
		c.Source = tabular.NewFileSource(c.Config.Data.AlleleTable, c.Config.Data.MotifTable)
	}
	c.Logger.Info("[Container] Using table source %s", c.Source.Describe())
	return c.Source, nil
}

// LoadCatalog opens the source and loads both tables
func (c *Container) LoadCatalog(ctx context.Context) (*dataset.Catalog, error) {
	src, err := c.OpenSource()
	if err != nil {
		return nil, err
	}
	catalog, err := dataset.Load(ctx, src, c.Logger)
	if err != nil {
		return nil, err
	}
	c.Catalog = catalog
	return catalog, nil
}

// InitSessions loads the catalog if needed and starts the session manager
func (c *Container) InitSessions(ctx context.Context) (*session.Manager, error) {
	if c.Catalog == nil {
		if _, err := c.LoadCatalog(ctx); err != nil {
			return nil, err
		}
	}
	c.Sessions = session.NewManager(c.Catalog, c.Config.Session.TTL, c.Logger)
	return c.Sessions, nil
}

// Shutdown stops the session janitor and closes the database connection
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
