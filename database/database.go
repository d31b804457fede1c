package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"ecosort-service/config"

	_ "github.com/go-sql-driver/mysql"
)

// Database represents the database connection
type Database struct {
	db *sql.DB
}

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection with exponential backoff retry
	var waitInterval time.Duration = 1 * time.Second
	for {
		pingErr := db.Ping()
		if pingErr == nil {
			break // Connection successful
		}
		log.Printf("Database connection failed, retrying in %v: %v", waitInterval, pingErr)
		time.Sleep(waitInterval)
		waitInterval *= 2 // Exponential backoff: 1s, 2s, 4s, 8s, ...
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Database{db: db}, nil
}

// NewWithDB wraps an existing sql.DB, used by tests with sqlmock.
func NewWithDB(db *sql.DB) *Database {
	return &Database{db: db}
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB returns the underlying sql.DB
func (d *Database) GetDB() *sql.DB {
	return d.db
}

// CreateTables creates all service tables if they don't exist
func (d *Database) CreateTables() error {
	if err := d.createRateLimitsTable(); err != nil {
		return err
	}
	if err := d.createFeedbackSubmissionsTable(); err != nil {
		return err
	}
	if err := d.createLearnedCorrectionsTable(); err != nil {
		return err
	}
	if err := d.createUploadHistoryTable(); err != nil {
		return err
	}
	return nil
}

func (d *Database) createRateLimitsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS rate_limits (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		client_address VARCHAR(64) NOT NULL,
		endpoint VARCHAR(64) NOT NULL,
		request_count INT NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_rate_limits_lookup (client_address, endpoint, created_at)
	)`

	_, err := d.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create rate_limits table: %w", err)
	}

	log.Println("rate_limits table created/verified successfully")
	return nil
}

func (d *Database) createFeedbackSubmissionsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS feedback_submissions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(255),
		upload_history_id BIGINT,
		item_name VARCHAR(500) NOT NULL,
		original_category VARCHAR(255) NOT NULL,
		original_bin_color VARCHAR(32) NOT NULL,
		original_confidence FLOAT NOT NULL,
		feedback_type ENUM('yes', 'no', 'not_sure') NOT NULL,
		description TEXT,
		status ENUM('pending', 'approved', 'denied') NOT NULL DEFAULT 'pending',
		admin_notes TEXT,
		reviewed_at TIMESTAMP NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_feedback_status (status),
		INDEX idx_feedback_type (feedback_type),
		INDEX idx_feedback_user (user_id)
	)`

	_, err := d.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create feedback_submissions table: %w", err)
	}

	log.Println("feedback_submissions table created/verified successfully")
	return nil
}

func (d *Database) createLearnedCorrectionsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS learned_corrections (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		feedback_id BIGINT NOT NULL,
		item_name VARCHAR(500) NOT NULL,
		original_category VARCHAR(255) NOT NULL,
		corrected_category VARCHAR(255),
		corrected_bin_color VARCHAR(32),
		correction_details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_corrections_created (created_at),
		INDEX idx_corrections_item (item_name)
	)`

	_, err := d.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create learned_corrections table: %w", err)
	}

	log.Println("learned_corrections table created/verified successfully")
	return nil
}

func (d *Database) createUploadHistoryTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS upload_history (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(255) NOT NULL,
		image LONGBLOB,
		predictions TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_history_user (user_id, created_at)
	)`

	_, err := d.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create upload_history table: %w", err)
	}

	log.Println("upload_history table created/verified successfully")
	return nil
}

// CountRecentRequests sums the request counts recorded for a client address
// and endpoint since windowStart.
func (d *Database) CountRecentRequests(clientAddress, endpoint string, windowStart time.Time) (int, error) {
	query := `
	SELECT COALESCE(SUM(request_count), 0)
	FROM rate_limits
	WHERE client_address = ? AND endpoint = ? AND created_at >= ?`

	var total int
	err := d.db.QueryRow(query, clientAddress, endpoint, windowStart).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent requests: %w", err)
	}
	return total, nil
}

// RecordRequest appends one rate-limit record for the client address.
func (d *Database) RecordRequest(clientAddress, endpoint string) error {
	query := `INSERT INTO rate_limits (client_address, endpoint, request_count) VALUES (?, ?, 1)`

	_, err := d.db.Exec(query, clientAddress, endpoint)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}
