package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type ToolRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func scanTool(scanner interface {
	Scan(dest ...any) error
}) (*ToolRecord, error) {
	r := &ToolRecord{}
	var category *string
	var params string
	err := scanner.Scan(&r.ID, &r.Name, &r.Description, &category, &params, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if category != nil {
		r.Category = *category
	}
	r.Parameters = json.RawMessage(params)
	return r, nil
}

const toolColumns = `id, name, description, category, parameters, created_at, updated_at`

func (s *Store) CreateTool(r *ToolRecord) (*ToolRecord, error) {
	if r.Parameters == nil {
		r.Parameters = json.RawMessage(`{}`)
	}

	res, err := s.db.Exec(`
		INSERT INTO tools (name, description, category, parameters)
		VALUES (?, ?, ?, ?)`,
		r.Name, r.Description, nullable(r.Category), string(r.Parameters))
	if err != nil {
		return nil, fmt.Errorf("create tool: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create tool id: %w", err)
	}
	return s.GetTool(id)
}

func (s *Store) GetTool(id int64) (*ToolRecord, error) {
	row := s.db.QueryRow(`SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)
	r, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tool: %w", err)
	}
	return r, nil
}

func (s *Store) ListTools(category string) ([]ToolRecord, error) {
	query := `SELECT ` + toolColumns + ` FROM tools`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var records []ToolRecord
	for rows.Next() {
		r, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func (s *Store) UpdateTool(id int64, r *ToolRecord) (*ToolRecord, error) {
	if r.Parameters == nil {
		r.Parameters = json.RawMessage(`{}`)
	}

	res, err := s.db.Exec(`
		UPDATE tools
		SET name = ?, description = ?, category = ?, parameters = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		r.Name, r.Description, nullable(r.Category), string(r.Parameters), id)
	if err != nil {
		return nil, fmt.Errorf("update tool: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetTool(id)
}

func (s *Store) DeleteTool(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM tools WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete tool: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
