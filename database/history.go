package database

import (
	"encoding/json"
	"fmt"

	"ecosort-service/models"
)

// SaveUploadHistory persists a classification result with its source image
// for the given user. Predictions are stored as JSON text.
func (d *Database) SaveUploadHistory(userID string, image []byte, predictions []models.PredictionItem) (int64, error) {
	predictionsJSON, err := json.Marshal(predictions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal predictions: %w", err)
	}

	query := `INSERT INTO upload_history (user_id, image, predictions) VALUES (?, ?, ?)`

	result, err := d.db.Exec(query, userID, image, string(predictionsJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to save upload history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get history id: %w", err)
	}
	return id, nil
}

// UploadHistory lists a user's saved classifications, newest first, without
// the image blobs.
func (d *Database) UploadHistory(userID string, limit int) ([]models.UploadHistoryEntry, error) {
	query := `
	SELECT id, user_id, predictions, created_at
	FROM upload_history
	WHERE user_id = ?
	ORDER BY created_at DESC
	LIMIT ?`

	rows, err := d.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upload history: %w", err)
	}
	defer rows.Close()

	var entries []models.UploadHistoryEntry
	for rows.Next() {
		var entry models.UploadHistoryEntry
		var predictionsJSON string
		if err := rows.Scan(&entry.ID, &entry.UserID, &predictionsJSON, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if err := json.Unmarshal([]byte(predictionsJSON), &entry.Predictions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal predictions for entry %d: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

// UploadHistoryImage fetches the stored image for one history entry owned by
// the user.
func (d *Database) UploadHistoryImage(userID string, id int64) ([]byte, error) {
	query := `SELECT image FROM upload_history WHERE id = ? AND user_id = ?`

	var image []byte
	if err := d.db.QueryRow(query, id, userID).Scan(&image); err != nil {
		return nil, fmt.Errorf("failed to fetch history image: %w", err)
	}
	return image, nil
}
