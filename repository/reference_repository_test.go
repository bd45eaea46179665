package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/docuverify/ocr-property-verification/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestFindAadhaarByNumber(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"name", "aadhaar_number", "date_of_birth"}).
		AddRow("Jane Doe", "1234 5678 9012", "02/01/1990")
	mock.ExpectQuery(regexp.QuoteMeta("FROM reference_aadhaar")).
		WithArgs("1234 5678 9012").
		WillReturnRows(rows)

	rec, err := repo.FindAadhaarByNumber(context.Background(), "1234 5678 9012")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Jane Doe", rec.Name)
	assert.Equal(t, "02/01/1990", rec.DateOfBirth)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAadhaarByNumberNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reference_aadhaar")).
		WithArgs("0000 0000 0000").
		WillReturnRows(sqlmock.NewRows([]string{"name", "aadhaar_number", "date_of_birth"}))

	rec, err := repo.FindAadhaarByNumber(context.Background(), "0000 0000 0000")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFindPANByNumber(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"name", "pan_number", "date_of_birth"}).
		AddRow("Jane Doe", "ABCDE1234F", "02/01/1990")
	mock.ExpectQuery(regexp.QuoteMeta("FROM reference_pan")).
		WithArgs("ABCDE1234F").
		WillReturnRows(rows)

	rec, err := repo.FindPANByNumber(context.Background(), "ABCDE1234F")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ABCDE1234F", rec.PANNumber)
}

func TestFindECBySurveyNumber(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"survey_number", "measuring_area", "village", "hobli", "taluk", "district"}).
		AddRow("12/3", "1200 Sqft", "Rampura", "Kasaba", "Anekal", "Bangalore")
	mock.ExpectQuery(regexp.QuoteMeta("FROM reference_property")).
		WithArgs("12/3").
		WillReturnRows(rows)

	rec, err := repo.FindECBySurveyNumber(context.Background(), "12/3")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Rampura", rec.Village)
	assert.Equal(t, "Bangalore", rec.District)
}

func TestFindECBySurveyNumberQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reference_property")).
		WithArgs("12/3").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindECBySurveyNumber(context.Background(), "12/3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property reference")
}

func TestSaveResult(t *testing.T) {
	repo, mock := newMockRepo(t)

	result := &dto.VerificationResult{
		ID: "abc-123",
		PerFieldMatch: map[string]dto.MatchStatus{
			"aadhaar_name": dto.MatchStatusMatch,
		},
		MatchedCount:    15,
		ComparableCount: 15,
		RiskScore:       0,
		Status:          dto.StatusVerified,
		VerifiedAt:      "2026-08-30T10:00:00Z",
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO verification_results")).
		WithArgs(result.ID, sqlmock.AnyArg(), 15, 15, float64(0), string(result.Status), result.VerifiedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveResult(context.Background(), result))
	assert.NoError(t, mock.ExpectationsWereMet())
}
