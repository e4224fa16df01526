package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ktaka/mediavault/internal/util"
)

// Record is one row with every scalar coerced to its text representation
type Record map[string]string

// GroupCount is one (value, count) pair returned by GroupedCounts
type GroupCount struct {
	Value string
	Count int64
}

// validateWrite checks the column/value shape and types before any
// statement executes. Violations never reach storage.
func validateWrite(cols []string, vals []Value) error {
	if len(cols) == 0 {
		return fmt.Errorf("%w: empty column list", util.ErrValidation)
	}
	if len(cols) != len(vals) {
		return fmt.Errorf("%w: %d columns but %d values", util.ErrValidation, len(cols), len(vals))
	}

	for i, name := range cols {
		typ, ok := columnTypes[name]
		if !ok {
			return fmt.Errorf("%w: unknown column %q", util.ErrValidation, name)
		}
		if managedColumns[name] {
			return fmt.Errorf("%w: column %q is store-managed", util.ErrValidation, name)
		}
		if vals[i].Type() != typ {
			return fmt.Errorf("%w: column %q is %s, value is %s",
				util.ErrTypeMismatch, name, typ, vals[i].Type())
		}
	}

	return nil
}

func writeArgs(vals []Value) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v.arg()
	}
	return args
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Insert writes a new record and returns its assigned id. A duplicate
// non-empty file_hash_data is reported as util.ErrDuplicate.
func (s *Store) Insert(cols []string, vals []Value) (int64, error) {
	if err := validateWrite(cols, vals); err != nil {
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(cols, ", "), placeholders)

	result, err := s.db.Exec(query, writeArgs(vals)...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: file_hash_data", util.ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return id, nil
}

// Update performs a single-row update keyed by id. Updating a
// non-existent id is a silent no-op.
func (s *Store) Update(id int64, cols []string, vals []Value) error {
	if err := validateWrite(cols, vals); err != nil {
		return err
	}

	sets := make([]string, len(cols))
	for i, name := range cols {
		sets[i] = name + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
		tableName, strings.Join(sets, ", "))

	args := append(writeArgs(vals), id)
	if _, err := s.db.Exec(query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: file_hash_data", util.ErrDuplicate)
		}
		return fmt.Errorf("failed to update record %d: %w", id, err)
	}

	return nil
}

// Delete removes a record. Protected rows are left untouched without
// error. When the table empties, the identity sequence is reset so the
// next insert reuses id 1.
func (s *Store) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var protection sql.NullInt64
	err = tx.QueryRow("SELECT protection FROM "+tableName+" WHERE id = ?", id).Scan(&protection)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check protection for record %d: %w", id, err)
	}

	if protection.Valid && protection.Int64 == 1 {
		// Protected rows are immune to deletion
		return nil
	}

	if _, err := tx.Exec("DELETE FROM "+tableName+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	var remaining int64
	if err := tx.QueryRow("SELECT COUNT(*) FROM " + tableName).Scan(&remaining); err != nil {
		return fmt.Errorf("failed to count remaining records: %w", err)
	}
	if remaining == 0 {
		if _, err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", tableName); err != nil {
			return fmt.Errorf("failed to reset id sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

// Get returns all columns of one row, or nil when the id does not exist.
// A missing id is not an error.
func (s *Store) Get(id int64) (Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?",
		strings.Join(columnNames, ", "), tableName)

	row := s.db.QueryRow(query, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}

	return rec, nil
}

// GetAll returns every row ordered by ascending id. Soft-deleted rows are
// included; filtering deletion_mark is the caller's responsibility.
func (s *Store) GetAll() ([]Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC",
		strings.Join(columnNames, ", "), tableName)
	return s.queryRecords(query)
}

// GetAllByColumn returns rows whose column exactly matches the keyword,
// ordered by ascending id.
func (s *Store) GetAllByColumn(column, keyword string) ([]Record, error) {
	if _, ok := columnTypes[column]; !ok {
		return nil, fmt.Errorf("%w: unknown column %q", util.ErrValidation, column)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY id ASC",
		strings.Join(columnNames, ", "), tableName, column)
	return s.queryRecords(query, keyword)
}

// Exists reports whether any row has the given value in the given column.
// Used as the dedup probe before insert.
func (s *Store) Exists(column string, value Value) (bool, error) {
	typ, ok := columnTypes[column]
	if !ok {
		return false, fmt.Errorf("%w: unknown column %q", util.ErrValidation, column)
	}
	if value.Type() != typ {
		return false, fmt.Errorf("%w: column %q is %s, value is %s",
			util.ErrTypeMismatch, column, typ, value.Type())
	}

	var one int
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ? LIMIT 1", tableName, column)
	err := s.db.QueryRow(query, value.arg()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", column, err)
	}

	return true, nil
}

// GroupedCounts groups the active (not soft-deleted), non-empty values of
// a column and returns (value, count) pairs ordered ascending by value,
// with a synthetic (totalLabel, sum) entry prepended at index 0.
func (s *Store) GroupedCounts(totalLabel, column string) ([]GroupCount, error) {
	if _, ok := columnTypes[column]; !ok {
		return nil, fmt.Errorf("%w: unknown column %q", util.ErrValidation, column)
	}

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*) FROM %[2]s
		WHERE COALESCE(deletion_mark, 0) = 0
		  AND %[1]s IS NOT NULL AND %[1]s <> ''
		GROUP BY %[1]s
		ORDER BY %[1]s ASC
	`, column, tableName)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to group by %s: %w", column, err)
	}
	defer rows.Close()

	groups := []GroupCount{{Value: totalLabel}}
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups[0].Count += g.Count
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// MarkDeleted sets the soft-delete flag on a record
func (s *Store) MarkDeleted(id int64) error {
	return s.Update(id, []string{"deletion_mark"}, []Value{Int(1)})
}

// ClearDeleted clears the soft-delete flag on a record
func (s *Store) ClearDeleted(id int64) error {
	return s.Update(id, []string{"deletion_mark"}, []Value{Int(0)})
}

// SetProtection toggles the deletion-immunity flag on a record
func (s *Store) SetProtection(id int64, protected bool) error {
	flag := int64(0)
	if protected {
		flag = 1
	}
	return s.Update(id, []string{"protection"}, []Value{Int(flag)})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	dest := make([]sql.NullString, len(columnNames))
	ptrs := make([]any, len(columnNames))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	if err := row.Scan(ptrs...); err != nil {
		return nil, err
	}

	rec := make(Record, len(columnNames))
	for i, name := range columnNames {
		if dest[i].Valid {
			rec[name] = dest[i].String
		} else {
			rec[name] = ""
		}
	}
	return rec, nil
}

func (s *Store) queryRecords(query string, args ...any) ([]Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
