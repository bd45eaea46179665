package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docuverify/ocr-property-verification/dto"
	_ "github.com/lib/pq"
)

// PostgresRepository serves reference records and persists verification
// results. Natural-key lookups are normalized on both sides so that OCR
// whitespace and casing do not cause spurious misses.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Connect opens a postgres pool and verifies it is reachable.
func Connect(dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// FindAadhaarByNumber returns the stored Aadhaar record, or (nil, nil)
// when no reference exists for the number.
func (r *PostgresRepository) FindAadhaarByNumber(ctx context.Context, number string) (*dto.ReferenceAadhaarRecord, error) {
	query := `SELECT name, aadhaar_number, date_of_birth
		FROM reference_aadhaar
		WHERE lower(trim(aadhaar_number)) = lower(trim($1))
		LIMIT 1`

	var rec dto.ReferenceAadhaarRecord
	err := r.db.QueryRowContext(ctx, query, number).Scan(&rec.Name, &rec.AadhaarNumber, &rec.DateOfBirth)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query aadhaar reference: %w", err)
	}
	return &rec, nil
}

// FindPANByNumber returns the stored PAN record, or (nil, nil) when no
// reference exists for the number.
func (r *PostgresRepository) FindPANByNumber(ctx context.Context, number string) (*dto.ReferencePANRecord, error) {
	query := `SELECT name, pan_number, date_of_birth
		FROM reference_pan
		WHERE lower(trim(pan_number)) = lower(trim($1))
		LIMIT 1`

	var rec dto.ReferencePANRecord
	err := r.db.QueryRowContext(ctx, query, number).Scan(&rec.Name, &rec.PANNumber, &rec.DateOfBirth)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pan reference: %w", err)
	}
	return &rec, nil
}

// FindECBySurveyNumber returns the stored property record, or (nil, nil)
// when no reference exists for the survey number.
func (r *PostgresRepository) FindECBySurveyNumber(ctx context.Context, surveyNumber string) (*dto.ReferenceECRecord, error) {
	query := `SELECT survey_number, measuring_area, village, hobli, taluk, district
		FROM reference_property
		WHERE lower(trim(survey_number)) = lower(trim($1))
		LIMIT 1`

	var rec dto.ReferenceECRecord
	err := r.db.QueryRowContext(ctx, query, surveyNumber).
		Scan(&rec.SurveyNumber, &rec.MeasuringArea, &rec.Village, &rec.Hobli, &rec.Taluk, &rec.District)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query property reference: %w", err)
	}
	return &rec, nil
}

// SaveResult inserts one verification result row. The per-field map is
// stored as jsonb.
func (r *PostgresRepository) SaveResult(ctx context.Context, result *dto.VerificationResult) error {
	query := `INSERT INTO verification_results
		(id, per_field_match, matched_count, comparable_count, risk_score, status, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	perField, err := marshalPerField(result.PerFieldMatch)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		result.ID, perField, result.MatchedCount, result.ComparableCount,
		result.RiskScore, result.Status, result.VerifiedAt)
	if err != nil {
		return fmt.Errorf("failed to insert verification result: %w", err)
	}
	return nil
}
