package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"ecosort-service/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
)

var (
	sqlDB *sql.DB
	mock  sqlmock.Sqlmock
	d     *Database
)

func setUp() {
	sqlDB, mock, _ = sqlmock.New()
	d = NewWithDB(sqlDB)
}

func tearDown() {
	sqlDB.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func TestCountRecentRequests(t *testing.T) {
	it(func() {
		windowStart := time.Now().Add(-time.Minute)
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(request_count\\), 0\\)").
			WithArgs("203.0.113.7", "classify-waste", windowStart).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(3))

		total, err := d.CountRecentRequests("203.0.113.7", "classify-waste", windowStart)
		if err != nil {
			t.Fatalf("CountRecentRequests: %v", err)
		}
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestCountRecentRequestsEmptyWindow(t *testing.T) {
	it(func() {
		windowStart := time.Now().Add(-time.Minute)
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(request_count\\), 0\\)").
			WithArgs("203.0.113.7", "classify-waste", windowStart).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))

		total, err := d.CountRecentRequests("203.0.113.7", "classify-waste", windowStart)
		if err != nil {
			t.Fatalf("CountRecentRequests: %v", err)
		}
		if total != 0 {
			t.Errorf("total = %d, want 0", total)
		}
	})
}

func TestCountRecentRequestsQueryError(t *testing.T) {
	it(func() {
		windowStart := time.Now().Add(-time.Minute)
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(request_count\\), 0\\)").
			WillReturnError(errors.New("connection refused"))

		_, err := d.CountRecentRequests("203.0.113.7", "classify-waste", windowStart)
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestRecordRequest(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO rate_limits").
			WithArgs("203.0.113.7", "classify-waste").
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := d.RecordRequest("203.0.113.7", "classify-waste"); err != nil {
			t.Fatalf("RecordRequest: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func correctionColumns() []string {
	return []string{
		"id", "feedback_id", "item_name", "original_category",
		"corrected_category", "corrected_bin_color", "correction_details", "created_at",
	}
}

func TestRecentCorrections(t *testing.T) {
	it(func() {
		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM learned_corrections").
			WithArgs(50).
			WillReturnRows(sqlmock.NewRows(correctionColumns()).
				AddRow(2, 12, "CFL Bulb", "Recyclable", "Hazardous", "Red", "Contains mercury", now).
				AddRow(1, 9, "Thermocol Plate", "Recyclable", "Non-Recyclable", "Black", nil, now.Add(-time.Hour)))

		corrections, err := d.RecentCorrections(50)
		if err != nil {
			t.Fatalf("RecentCorrections: %v", err)
		}
		if len(corrections) != 2 {
			t.Fatalf("len = %d, want 2", len(corrections))
		}

		first := corrections[0]
		if first.ItemName != "CFL Bulb" {
			t.Errorf("first item = %q, want CFL Bulb (newest first)", first.ItemName)
		}
		if first.CorrectedCategory == nil || *first.CorrectedCategory != "Hazardous" {
			t.Errorf("corrected category = %v, want Hazardous", first.CorrectedCategory)
		}
		if first.CorrectionDetails == nil || *first.CorrectionDetails != "Contains mercury" {
			t.Errorf("details = %v, want Contains mercury", first.CorrectionDetails)
		}
		if corrections[1].CorrectionDetails != nil {
			t.Errorf("details = %v, want nil", corrections[1].CorrectionDetails)
		}
	})
}

func TestRecentCorrectionsEmpty(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM learned_corrections").
			WithArgs(50).
			WillReturnRows(sqlmock.NewRows(correctionColumns()))

		corrections, err := d.RecentCorrections(50)
		if err != nil {
			t.Fatalf("RecentCorrections: %v", err)
		}
		if len(corrections) != 0 {
			t.Errorf("len = %d, want 0", len(corrections))
		}
	})
}

func TestInsertCorrection(t *testing.T) {
	it(func() {
		category := "Hazardous"
		binColor := "Red"
		mock.ExpectExec("INSERT INTO learned_corrections").
			WithArgs(int64(12), "CFL Bulb", "Recyclable", category, binColor, nil).
			WillReturnResult(sqlmock.NewResult(4, 1))

		id, err := d.InsertCorrection(models.LearnedCorrection{
			FeedbackID:        12,
			ItemName:          "CFL Bulb",
			OriginalCategory:  "Recyclable",
			CorrectedCategory: &category,
			CorrectedBinColor: &binColor,
		})
		if err != nil {
			t.Fatalf("InsertCorrection: %v", err)
		}
		if id != 4 {
			t.Errorf("id = %d, want 4", id)
		}
	})
}

func TestReviewFeedbackAlreadyReviewed(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE feedback_submissions").
			WithArgs("approved", nil, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := d.ReviewFeedback(3, "approved", nil)
		if !errors.Is(err, ErrFeedbackNotFound) {
			t.Errorf("err = %v, want ErrFeedbackNotFound", err)
		}
	})
}

func TestGetFeedbackNotFound(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM feedback_submissions").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := d.GetFeedback(99)
		if !errors.Is(err, ErrFeedbackNotFound) {
			t.Errorf("err = %v, want ErrFeedbackNotFound", err)
		}
	})
}

func TestSaveUploadHistory(t *testing.T) {
	it(func() {
		image := []byte{0xFF, 0xD8, 0xFF}
		predictions := []models.PredictionItem{
			{Item: "Newspaper", Category: "Recyclable", Disposal: "Bundle it.", BinColor: "Blue", Confidence: 100},
		}
		mock.ExpectExec("INSERT INTO upload_history").
			WithArgs("user-42", image, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(21, 1))

		id, err := d.SaveUploadHistory("user-42", image, predictions)
		if err != nil {
			t.Fatalf("SaveUploadHistory: %v", err)
		}
		if id != 21 {
			t.Errorf("id = %d, want 21", id)
		}
	})
}
