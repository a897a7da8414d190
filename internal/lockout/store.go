package lockout

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, l *Lockout) error {
	if l.EventIDs == nil {
		l.EventIDs = []int64{}
	}
	const q = `
		INSERT INTO lockouts (email, failure_count, event_ids, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	row := s.db.QueryRowContext(ctx, q,
		l.Email,
		l.FailureCount,
		pq.Array(l.EventIDs),
		l.ExpiresAt,
		time.Now().UTC(),
	)
	return row.Scan(&l.ID, &l.CreatedAt)
}

// ActiveFor reports whether a lockout for the email is still live.
func (s *Store) ActiveFor(ctx context.Context, email string, now time.Time) (bool, error) {
	const q = `SELECT 1 FROM lockouts WHERE email = $1 AND expires_at > $2 LIMIT 1`
	row := s.db.QueryRowContext(ctx, q, email, now)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type ListFilter struct {
	Email    string
	ActiveAt time.Time
	Limit    int
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]Lockout, error) {
	clauses := []string{"1=1"}
	args := []interface{}{}
	idx := 1
	if f.Email != "" {
		clauses = append(clauses, "email = $"+itoa(idx))
		args = append(args, f.Email)
		idx++
	}
	if !f.ActiveAt.IsZero() {
		clauses = append(clauses, "expires_at > $"+itoa(idx))
		args = append(args, f.ActiveAt)
		idx++
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := "SELECT id, email, failure_count, event_ids, expires_at, created_at" +
		" FROM lockouts WHERE " + strings.Join(clauses, " AND ") +
		" ORDER BY created_at DESC LIMIT " + itoa(limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Lockout
	for rows.Next() {
		var l Lockout
		var ids pq.Int64Array
		if err := rows.Scan(&l.ID, &l.Email, &l.FailureCount, &ids,
			&l.ExpiresAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.EventIDs = []int64(ids)
		res = append(res, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
