package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/movelab/physiorag/internal/config"
	"github.com/movelab/physiorag/internal/logger"
)

const connectTimeout = 10 * time.Second

type Neo4jDriver struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

func NewNeo4jDriver(cfg config.Neo4jConfig, log *logger.Logger) (*Neo4jDriver, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify neo4j connectivity: %w", err)
	}

	log.Info("connected to neo4j", "uri", cfg.URI, "database", cfg.Database)
	return &Neo4jDriver{
		Driver:   driver,
		Database: cfg.Database,
		log:      log.With("component", "neo4j"),
	}, nil
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	var opts []neo4j.ExecuteQueryConfigurationOption
	if d.Database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.Database))
	}

	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, opts...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// VerifyIndexes checks that the configured search indexes exist. Missing
// indexes are logged, not fatal: retrieval against a missing index fails
// per query, and seeding scripts may create indexes after the service is up.
func (d *Neo4jDriver) VerifyIndexes(ctx context.Context, names ...string) error {
	result, err := d.ExecuteQuery(ctx, "SHOW INDEXES YIELD name RETURN name", nil)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	existing := make(map[string]struct{}, len(result.Records))
	for _, rec := range result.Records {
		if name, ok := rec.Get("name"); ok {
			if s, ok := name.(string); ok {
				existing[s] = struct{}{}
			}
		}
	}

	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := existing[name]; !ok {
			d.log.Warn("search index not found in store", "index", name)
		}
	}
	return nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}
