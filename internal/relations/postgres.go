package relations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore serves relation queries from a skill_relations table:
//
//	CREATE TABLE skill_relations (
//	    source TEXT NOT NULL,
//	    target TEXT NOT NULL,
//	    kind   TEXT NOT NULL,
//	    weight DOUBLE PRECISION NOT NULL,
//	    PRIMARY KEY (source, target, kind)
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to relations database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping relations database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// RelatedSkills returns skills adjacent to skillID in either direction.
func (p *PostgresStore) RelatedSkills(ctx context.Context, skillID string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT DISTINCT CASE WHEN source = $1 THEN target ELSE source END AS related
		 FROM skill_relations
		 WHERE source = $1 OR target = $1
		 ORDER BY related`,
		skillID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query relations for %s: %w", skillID, err)
	}
	defer rows.Close()

	var related []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan relation row: %w", err)
		}
		related = append(related, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read relation rows: %w", err)
	}

	return related, nil
}

// Close closes the connection pool.
func (p *PostgresStore) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
