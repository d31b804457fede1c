package database

import (
	"fmt"

	"ecosort-service/models"
)

// RecentCorrections returns the most recent learned corrections, newest first.
// Recency is the only ranking; there is no relevance scoring against the
// current image, so an older but more applicable correction can fall off the
// end once more than limit corrections exist.
func (d *Database) RecentCorrections(limit int) ([]models.LearnedCorrection, error) {
	query := `
	SELECT id, feedback_id, item_name, original_category, corrected_category,
	       corrected_bin_color, correction_details, created_at
	FROM learned_corrections
	ORDER BY created_at DESC
	LIMIT ?`

	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch learned corrections: %w", err)
	}
	defer rows.Close()

	var corrections []models.LearnedCorrection
	for rows.Next() {
		var c models.LearnedCorrection
		if err := rows.Scan(&c.ID, &c.FeedbackID, &c.ItemName, &c.OriginalCategory,
			&c.CorrectedCategory, &c.CorrectedBinColor, &c.CorrectionDetails, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return corrections, nil
}

// ListCorrections returns all learned corrections for the admin screen.
func (d *Database) ListCorrections() ([]models.LearnedCorrection, error) {
	return d.RecentCorrections(500)
}

// InsertCorrection records an admin-approved correction.
func (d *Database) InsertCorrection(c models.LearnedCorrection) (int64, error) {
	query := `
	INSERT INTO learned_corrections
		(feedback_id, item_name, original_category, corrected_category, corrected_bin_color, correction_details)
	VALUES (?, ?, ?, ?, ?, ?)`

	result, err := d.db.Exec(query, c.FeedbackID, c.ItemName, c.OriginalCategory,
		c.CorrectedCategory, c.CorrectedBinColor, c.CorrectionDetails)
	if err != nil {
		return 0, fmt.Errorf("failed to insert correction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get correction id: %w", err)
	}
	return id, nil
}
