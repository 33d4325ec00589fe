package postgres

import (
	"context"

	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"

	dErrors "carepath/pkg/domain-errors"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the tables and indexes if they do not exist. Idempotent.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "apply schema")
	}
	return nil
}
