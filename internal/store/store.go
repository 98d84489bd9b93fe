package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/loglens/loglens/internal/analysis"
	"github.com/loglens/loglens/internal/db"
)

const createSequence = `CREATE SEQUENCE IF NOT EXISTS analyses_id_seq`

const createTable = `
CREATE TABLE IF NOT EXISTS analyses (
	id BIGINT PRIMARY KEY DEFAULT nextval('analyses_id_seq'),
	created_at TIMESTAMP NOT NULL,
	source VARCHAR NOT NULL,
	summary VARCHAR NOT NULL,
	error_count INTEGER NOT NULL,
	insight_count INTEGER NOT NULL,
	root_cause_count INTEGER NOT NULL,
	recommendation_count INTEGER NOT NULL,
	result_json VARCHAR NOT NULL
);
`

type Store struct {
	db *sql.DB
}

type Record struct {
	ID                  int64
	CreatedAt           time.Time
	Source              string
	Summary             string
	ErrorCount          int
	InsightCount        int
	RootCauseCount      int
	RecommendationCount int
}

func Open(path string) (*Store, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}

	if _, err := database.Exec(createSequence); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create id sequence: %w", err)
	}

	if _, err := database.Exec(createTable); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create analyses table: %w", err)
	}

	return &Store{db: database}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(res *analysis.Result, source string, createdAt time.Time) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO analyses (created_at, source, summary, error_count, insight_count, root_cause_count, recommendation_count, result_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		createdAt, source, res.Summary,
		len(res.Errors), len(res.Insights), len(res.RootCauses), len(res.Recommendations),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, source, summary, error_count, insight_count, root_cause_count, recommendation_count
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Summary, &r.ErrorCount, &r.InsightCount, &r.RootCauseCount, &r.RecommendationCount); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// Load returns the full stored result for one analysis along with its
// record metadata.
func (s *Store) Load(id int64) (*analysis.Result, *Record, error) {
	r := Record{ID: id}
	var payload string
	err := s.db.QueryRow(`SELECT created_at, source, result_json FROM analyses WHERE id = $1`, id).
		Scan(&r.CreatedAt, &r.Source, &payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load analysis %d: %w", id, err)
	}

	var res analysis.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, nil, fmt.Errorf("failed to decode stored result: %w", err)
	}

	return &res, &r, nil
}
