package store

import (
	"fmt"
)

// SolveLog is one entry of the solve history.
type SolveLog struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	Period       string `json:"period"`
	ResultID     string `json:"resultId,omitempty"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	CreatedAt    string `json:"createdAt"`
	CompletedAt  string `json:"completedAt,omitempty"`
}

// CreateSolveLog records the start of a solve and returns its id.
func (s *Store) CreateSolveLog(filename, period string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO solve_logs (filename, period, status)
		VALUES (?, ?, 'processing')
	`, filename, period)
	if err != nil {
		return 0, fmt.Errorf("failed to create solve log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get solve log id: %w", err)
	}
	return id, nil
}

// CompleteSolveLog finishes a solve log entry. Status is "done" or
// "infeasible"; errorMessage carries the violation text when present.
func (s *Store) CompleteSolveLog(id int64, resultID, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE solve_logs SET
			result_id = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, resultID, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to complete solve log: %w", err)
	}
	return nil
}

// ListSolveLogs returns the most recent solve history entries.
func (s *Store) ListSolveLogs(limit int) ([]SolveLog, error) {
	rows, err := s.db.Query(`
		SELECT id, filename, period,
			COALESCE(result_id, ''), status, COALESCE(error_message, ''),
			COALESCE(created_at, ''), COALESCE(completed_at, '')
		FROM solve_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solve logs: %w", err)
	}
	defer rows.Close()

	var logs []SolveLog
	for rows.Next() {
		var l SolveLog
		if err := rows.Scan(&l.ID, &l.Filename, &l.Period, &l.ResultID,
			&l.Status, &l.ErrorMessage, &l.CreatedAt, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan solve log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
