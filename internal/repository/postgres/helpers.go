package postgres

import (
	"errors"
	"fmt"
	"strings"

	"talent-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// mapError turns driver errors the usecases care about into domain errors.
// Everything else is returned as is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

// setClause accumulates "column = $n" pairs for partial updates. Args
// start after any leading placeholders reserved by the caller.
type setClause struct {
	columns []string
	args    []interface{}
}

func newSetClause(reserved ...interface{}) *setClause {
	return &setClause{args: reserved}
}

func (s *setClause) add(column string, value interface{}) {
	s.args = append(s.args, value)
	s.columns = append(s.columns, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// addCast is add with an explicit type cast on the placeholder.
func (s *setClause) addCast(column string, value interface{}, cast string) {
	s.args = append(s.args, value)
	s.columns = append(s.columns, fmt.Sprintf("%s = $%d::%s", column, len(s.args), cast))
}

func (s *setClause) empty() bool {
	return len(s.columns) == 0
}

func (s *setClause) String() string {
	return strings.Join(s.columns, ", ")
}

// whereClause accumulates AND-ed conditions sharing one argument list.
type whereClause struct {
	conditions []string
	args       []interface{}
}

// next appends value and returns its placeholder.
func (w *whereClause) next(value interface{}) string {
	w.args = append(w.args, value)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) add(condition string) {
	w.conditions = append(w.conditions, condition)
}

func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
