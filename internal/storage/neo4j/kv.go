package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/job-browser/internal/storage"
	pkgneo4j "github.com/honeycarbs/job-browser/pkg/neo4j"
)

// Ensure KV implements storage.KV
var _ storage.KV = (*KV)(nil)

// KV stores each entry as a (:Entry {key, value}) node
type KV struct {
	client *pkgneo4j.Client
}

// NewKV creates a KV with a Neo4j client
func NewKV(client *pkgneo4j.Client) *KV {
	return &KV{client: client}
}

// EnsureSchema creates the uniqueness constraint on entry keys
func (r *KV) EnsureSchema(ctx context.Context) error {
	session := r.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `CREATE CONSTRAINT entry_key IF NOT EXISTS FOR (e:Entry) REQUIRE e.key IS UNIQUE`, nil)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: ensure schema: %w", err)
	}
	return nil
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, error) {
	session := r.client.ReadSession(ctx)
	defer session.Close(ctx)

	value, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `MATCH (e:Entry {key: $key}) RETURN e.value AS value`, map[string]any{"key": key})
		if err != nil {
			return nil, err
		}
		if !result.Next(ctx) {
			return nil, result.Err()
		}
		v, _ := result.Record().Get("value")
		return v, nil
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: get %q: %w", key, err)
	}

	switch v := value.(type) {
	case nil:
		return nil, storage.ErrNotFound
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("neo4j: get %q: unexpected value type %T", key, value)
	}
}

func (r *KV) Set(ctx context.Context, key string, value []byte) error {
	session := r.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `
			MERGE (e:Entry {key: $key})
			SET e.value = $value,
			    e.updatedAt = datetime()
		`, map[string]any{"key": key, "value": string(value)})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: set %q: %w", key, err)
	}
	return nil
}

func (r *KV) Delete(ctx context.Context, key string) error {
	session := r.client.WriteSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, `MATCH (e:Entry {key: $key}) DELETE e`, map[string]any{"key": key})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: delete %q: %w", key, err)
	}
	return nil
}
