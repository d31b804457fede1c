package database

import (
	"database/sql"
	"errors"
	"fmt"

	"ecosort-service/models"
)

// ErrFeedbackNotFound is returned when a feedback id does not exist or was
// already reviewed.
var ErrFeedbackNotFound = errors.New("feedback not found")

// InsertFeedback stores a user's verdict on a single prediction.
func (d *Database) InsertFeedback(f models.FeedbackSubmission) (int64, error) {
	query := `
	INSERT INTO feedback_submissions
		(user_id, upload_history_id, item_name, original_category, original_bin_color,
		 original_confidence, feedback_type, description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := d.db.Exec(query, f.UserID, f.UploadHistoryID, f.ItemName,
		f.OriginalCategory, f.OriginalBinColor, f.OriginalConfidence, f.FeedbackType, f.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get feedback id: %w", err)
	}
	return id, nil
}

// PendingFeedback returns unreviewed negative feedback, newest first. Only
// "no" verdicts need admin review; "yes" and "not_sure" never become
// corrections.
func (d *Database) PendingFeedback() ([]models.FeedbackSubmission, error) {
	query := `
	SELECT id, user_id, upload_history_id, item_name, original_category, original_bin_color,
	       original_confidence, feedback_type, description, status, admin_notes, reviewed_at, created_at
	FROM feedback_submissions
	WHERE feedback_type = 'no' AND status = 'pending'
	ORDER BY created_at DESC`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending feedback: %w", err)
	}
	defer rows.Close()

	var submissions []models.FeedbackSubmission
	for rows.Next() {
		var f models.FeedbackSubmission
		if err := rows.Scan(&f.ID, &f.UserID, &f.UploadHistoryID, &f.ItemName, &f.OriginalCategory,
			&f.OriginalBinColor, &f.OriginalConfidence, &f.FeedbackType, &f.Description,
			&f.Status, &f.AdminNotes, &f.ReviewedAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		submissions = append(submissions, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}

	return submissions, nil
}

// GetFeedback fetches one feedback submission by id.
func (d *Database) GetFeedback(id int64) (*models.FeedbackSubmission, error) {
	query := `
	SELECT id, user_id, upload_history_id, item_name, original_category, original_bin_color,
	       original_confidence, feedback_type, description, status, admin_notes, reviewed_at, created_at
	FROM feedback_submissions
	WHERE id = ?`

	var f models.FeedbackSubmission
	err := d.db.QueryRow(query, id).Scan(&f.ID, &f.UserID, &f.UploadHistoryID, &f.ItemName,
		&f.OriginalCategory, &f.OriginalBinColor, &f.OriginalConfidence, &f.FeedbackType,
		&f.Description, &f.Status, &f.AdminNotes, &f.ReviewedAt, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return &f, nil
}

// ReviewFeedback marks a pending submission approved or denied.
func (d *Database) ReviewFeedback(id int64, status string, adminNotes *string) error {
	query := `
	UPDATE feedback_submissions
	SET status = ?, admin_notes = ?, reviewed_at = NOW()
	WHERE id = ? AND status = 'pending'`

	result, err := d.db.Exec(query, status, adminNotes, id)
	if err != nil {
		return fmt.Errorf("failed to review feedback: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get review status: %w", err)
	}
	if rows == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
