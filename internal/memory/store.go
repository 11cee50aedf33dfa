package memory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nexcai/nexcai/internal/adapter"
	"github.com/nexcai/nexcai/internal/db"
)

// DefaultDedupThreshold is the similarity ratio above which a candidate
// fact is considered a near-duplicate of its nearest neighbour.
const DefaultDedupThreshold = 0.8

// LongTermStore is the persistent, semantically-searchable store of
// facts worth remembering across sessions. Inserts are gated by an LLM
// relevance judgment and de-duplicated against the nearest existing
// record. Record rows and their embeddings are written in one
// transaction, so the two stay in lockstep even across crashes.
//
// The store is append-only: there is no delete or update path.
type LongTermStore struct {
	db             *db.DB
	gate           *RelevanceGate
	embedder       adapter.Embedder
	dedupThreshold float64
}

// NewLongTermStore creates a store over the given database. A
// dedupThreshold <= 0 selects the default (0.8).
func NewLongTermStore(database *db.DB, llm adapter.Completer, embedder adapter.Embedder, dedupThreshold float64) *LongTermStore {
	if dedupThreshold <= 0 {
		dedupThreshold = DefaultDedupThreshold
	}
	return &LongTermStore{
		db:             database,
		gate:           NewRelevanceGate(llm),
		embedder:       embedder,
		dedupThreshold: dedupThreshold,
	}
}

// Add stores text if the relevance gate accepts it and no near-duplicate
// already exists. A rejected or duplicate fact is a successful no-op; a
// gate, embedding, or storage failure is an error and nothing is stored.
func (s *LongTermStore) Add(ctx context.Context, text string) error {
	ok, err := s.gate.Memorable(ctx, text)
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	if !ok {
		return nil
	}

	// Duplicate suppression: compare against the single nearest record.
	count, err := s.Count()
	if err != nil {
		return fmt.Errorf("memory: count: %w", err)
	}
	if count > 0 {
		nearest, err := s.Search(ctx, text, 1)
		if err != nil {
			return fmt.Errorf("memory: dedup search: %w", err)
		}
		if len(nearest) > 0 {
			ratio := similarityRatio(strings.ToLower(text), strings.ToLower(nearest[0]))
			if ratio > s.dedupThreshold {
				return nil // near-duplicate, skip
			}
		}
	}

	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return fmt.Errorf("memory: embed: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return fmt.Errorf("memory: embed: empty vector for %q", text)
	}

	return s.insert(text, vecs[0])
}

// insert writes the record row and its embedding in a single transaction.
func (s *LongTermStore) insert(text string, embedding []float32) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("memory: begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	if err := tx.QueryRow(
		`INSERT INTO memories (content) VALUES (?) RETURNING id`, text,
	).Scan(&id); err != nil {
		return fmt.Errorf("memory: insert record: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO vec_memories (id, embedding) VALUES (?, ?)`,
		id, float32SliceToBlob(embedding),
	); err != nil {
		return fmt.Errorf("memory: insert embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("memory: commit: %w", err)
	}
	return nil
}

// Search returns up to k stored texts nearest to query, nearest first.
// An empty store short-circuits to an empty result before the index is
// queried. Index hits without a matching record row are skipped.
func (s *LongTermStore) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	count, err := s.Count()
	if err != nil {
		return nil, fmt.Errorf("memory: count: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("memory: embed query: %w", err)
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, fmt.Errorf("memory: embed query: empty vector")
	}

	rows, err := s.db.Conn().Query(
		`SELECT id, distance FROM vec_memories WHERE embedding MATCH ? AND k = ?
		 ORDER BY distance`,
		float32SliceToBlob(vecs[0]), k,
	)
	if err != nil {
		return nil, fmt.Errorf("memory: vector search: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		var distance float64
		if err := rows.Scan(&id, &distance); err != nil {
			return nil, fmt.Errorf("memory: scan match: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("memory: vector search: %w", err)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		var content string
		err := s.db.Conn().QueryRow(
			`SELECT content FROM memories WHERE id = ?`, id,
		).Scan(&content)
		if err == sql.ErrNoRows {
			continue // index hit without a record row
		}
		if err != nil {
			return nil, fmt.Errorf("memory: load record %d: %w", id, err)
		}
		out = append(out, content)
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *LongTermStore) Count() (int, error) {
	var n int
	err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM memories`).Scan(&n)
	return n, err
}

// EmbeddingCount returns the number of stored embeddings. Always equal
// to Count(); exposed so callers (and tests) can check the lockstep
// invariant.
func (s *LongTermStore) EmbeddingCount() (int, error) {
	var n int
	err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM vec_memories`).Scan(&n)
	return n, err
}

// All returns every stored text, oldest first.
func (s *LongTermStore) All() ([]string, error) {
	rows, err := s.db.Conn().Query(`SELECT content FROM memories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("memory: list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		out = append(out, content)
	}
	return out, rows.Err()
}
