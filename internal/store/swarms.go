package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SwarmRecord is the backend's row shape. Config and Agents are stored
// as JSON blobs; the backend never interprets them.
type SwarmRecord struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Config      json.RawMessage `json:"config"`
	Agents      json.RawMessage `json:"agents"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func scanSwarm(scanner interface {
	Scan(dest ...any) error
}) (*SwarmRecord, error) {
	r := &SwarmRecord{}
	var config, agents string
	err := scanner.Scan(&r.ID, &r.Name, &r.Description, &config, &agents, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Config = json.RawMessage(config)
	r.Agents = json.RawMessage(agents)
	return r, nil
}

const swarmColumns = `id, name, description, config, agents, status, created_at, updated_at`

// CreateSwarm inserts a record and returns it with its assigned id and
// timestamps.
func (s *Store) CreateSwarm(r *SwarmRecord) (*SwarmRecord, error) {
	if r.Config == nil {
		r.Config = json.RawMessage(`{}`)
	}
	if r.Agents == nil {
		r.Agents = json.RawMessage(`[]`)
	}
	if r.Status == "" {
		r.Status = "draft"
	}

	res, err := s.db.Exec(`
		INSERT INTO swarms (name, description, config, agents, status)
		VALUES (?, ?, ?, ?, ?)`,
		r.Name, r.Description, string(r.Config), string(r.Agents), r.Status)
	if err != nil {
		return nil, fmt.Errorf("create swarm: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create swarm id: %w", err)
	}
	return s.GetSwarm(id)
}

func (s *Store) GetSwarm(id int64) (*SwarmRecord, error) {
	row := s.db.QueryRow(`SELECT `+swarmColumns+` FROM swarms WHERE id = ?`, id)
	r, err := scanSwarm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get swarm: %w", err)
	}
	return r, nil
}

// ListSwarms returns all records, newest first, optionally filtered by
// status.
func (s *Store) ListSwarms(status string) ([]SwarmRecord, error) {
	query := `SELECT ` + swarmColumns + ` FROM swarms`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list swarms: %w", err)
	}
	defer rows.Close()

	var records []SwarmRecord
	for rows.Next() {
		r, err := scanSwarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan swarm: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// UpdateSwarm replaces the record's mutable fields and bumps updated_at.
func (s *Store) UpdateSwarm(id int64, r *SwarmRecord) (*SwarmRecord, error) {
	if r.Config == nil {
		r.Config = json.RawMessage(`{}`)
	}
	if r.Agents == nil {
		r.Agents = json.RawMessage(`[]`)
	}

	res, err := s.db.Exec(`
		UPDATE swarms
		SET name = ?, description = ?, config = ?, agents = ?, status = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		r.Name, r.Description, string(r.Config), string(r.Agents), r.Status, id)
	if err != nil {
		return nil, fmt.Errorf("update swarm: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetSwarm(id)
}

// UpdateSwarmStatus changes only the status column.
func (s *Store) UpdateSwarmStatus(id int64, status string) (*SwarmRecord, error) {
	res, err := s.db.Exec(`
		UPDATE swarms SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id)
	if err != nil {
		return nil, fmt.Errorf("update swarm status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetSwarm(id)
}

func (s *Store) DeleteSwarm(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM swarms WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete swarm: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
