package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/docuverify/ocr-property-verification/dto"
	"github.com/docuverify/ocr-property-verification/logger"
	"github.com/docuverify/ocr-property-verification/metrics"
	"github.com/docuverify/ocr-property-verification/utils"
	"github.com/google/uuid"
)

// verifiedThreshold is the fixed policy constant: at least 70% of the
// comparable fields must match for a Verified verdict.
const verifiedThreshold = 0.70

// Per-field keys in VerificationResult.PerFieldMatch.
const (
	FieldAadhaarName   = "aadhaar_name"
	FieldAadhaarNumber = "aadhaar_number"
	FieldAadhaarDOB    = "aadhaar_dob"

	FieldPANName   = "pan_name"
	FieldPANNumber = "pan_number"
	FieldPANDOB    = "pan_dob"

	FieldECSurveyNumber  = "ec_survey_number"
	FieldECMeasuringArea = "ec_measuring_area"
	FieldECVillage       = "ec_village"
	FieldECHobli         = "ec_hobli"
	FieldECTaluk         = "ec_taluk"
	FieldECDistrict      = "ec_district"

	FieldECApplicationNumber = "ec_application_number"
	FieldECApplicantName     = "ec_applicant_name"
	FieldECApplicantAddress  = "ec_applicant_address"
)

// ReferenceLookup finds stored ground-truth records by natural key.
// A nil record with a nil error means no reference exists for the key.
type ReferenceLookup interface {
	FindAadhaarByNumber(ctx context.Context, number string) (*dto.ReferenceAadhaarRecord, error)
	FindPANByNumber(ctx context.Context, number string) (*dto.ReferencePANRecord, error)
	FindECBySurveyNumber(ctx context.Context, surveyNumber string) (*dto.ReferenceECRecord, error)
}

// ResultSink persists verification results.
type ResultSink interface {
	SaveResult(ctx context.Context, result *dto.VerificationResult) error
}

// DocumentExtractor is the extraction side of the pipeline, satisfied by
// DocumentService.
type DocumentExtractor interface {
	ExtractEC(ctx context.Context, data []byte, filename string) (dto.ExtractedECFields, error)
	ExtractAadhaar(ctx context.Context, data []byte, filename string) (dto.ExtractedAadhaarFields, error)
	ExtractPAN(ctx context.Context, data []byte, filename string) (dto.ExtractedPANFields, error)
}

// VerificationService compares extracted document fields against the
// reference store and produces a risk-scored verdict. It holds no state
// between runs: re-verifying an applicant yields a brand-new result.
type VerificationService struct {
	extractor DocumentExtractor
	refs      ReferenceLookup
	results   ResultSink
	log       logger.Logger
}

func NewVerificationService(extractor DocumentExtractor, refs ReferenceLookup, results ResultSink, log logger.Logger) *VerificationService {
	return &VerificationService{
		extractor: extractor,
		refs:      refs,
		results:   results,
		log:       log,
	}
}

// VerifyApplicant extracts every uploaded document and verifies the
// combined record. The per-document extractions are independent and run
// concurrently; verification waits for all of them.
func (s *VerificationService) VerifyApplicant(ctx context.Context, uploads []dto.DocumentUpload) (*dto.VerifyResponse, error) {
	started := time.Now()

	var docs dto.ApplicantDocuments
	var mu sync.Mutex
	var wg sync.WaitGroup
	var extractErrs []error

	for _, upload := range uploads {
		if err := upload.Validate(); err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(u dto.DocumentUpload) {
			defer wg.Done()

			var err error
			switch u.Type {
			case dto.DocTypeEC:
				var fields dto.ExtractedECFields
				fields, err = s.extractor.ExtractEC(ctx, u.Data, u.Filename)
				mu.Lock()
				docs.EC = fields
				mu.Unlock()
			case dto.DocTypeAadhaar:
				var fields dto.ExtractedAadhaarFields
				fields, err = s.extractor.ExtractAadhaar(ctx, u.Data, u.Filename)
				mu.Lock()
				docs.Aadhaar = fields
				mu.Unlock()
			case dto.DocTypePAN:
				var fields dto.ExtractedPANFields
				fields, err = s.extractor.ExtractPAN(ctx, u.Data, u.Filename)
				mu.Lock()
				docs.PAN = fields
				mu.Unlock()
			default:
				err = fmt.Errorf("unknown document type: %s", u.Type)
			}

			if err != nil {
				mu.Lock()
				extractErrs = append(extractErrs, fmt.Errorf("failed to process %s: %w", u.Filename, err))
				mu.Unlock()
			}
		}(upload)
	}

	wg.Wait()

	if len(extractErrs) > 0 {
		return nil, extractErrs[0]
	}

	result, err := s.Verify(ctx, docs)
	if err != nil {
		return nil, err
	}

	metrics.VerificationDuration.Observe(time.Since(started).Seconds())

	return &dto.VerifyResponse{
		Documents: docs,
		Result:    result,
	}, nil
}

// Verify looks up the reference records for the extracted natural keys,
// compares field by field and computes the risk score and verdict.
func (s *VerificationService) Verify(ctx context.Context, docs dto.ApplicantDocuments) (*dto.VerificationResult, error) {
	aadhaarRef, err := s.lookupAadhaar(ctx, docs.Aadhaar.AadhaarNumber)
	if err != nil {
		return nil, err
	}
	panRef, err := s.lookupPAN(ctx, docs.PAN.PANNumber)
	if err != nil {
		return nil, err
	}
	ecRef, err := s.lookupEC(ctx, docs.EC.SurveyNumber)
	if err != nil {
		return nil, err
	}

	result := scoreDocuments(docs, aadhaarRef, panRef, ecRef)
	result.ID = uuid.NewString()
	result.VerifiedAt = time.Now().UTC().Format(time.RFC3339)

	metrics.VerificationsTotal.WithLabelValues(string(result.Status)).Inc()
	s.log.Info("verification completed", map[string]interface{}{
		"id":              result.ID,
		"status":          result.Status,
		"riskScore":       result.RiskScore,
		"matchedCount":    result.MatchedCount,
		"comparableCount": result.ComparableCount,
	})

	if s.results != nil {
		if err := s.results.SaveResult(ctx, result); err != nil {
			s.log.Warn("failed to persist verification result", map[string]interface{}{
				"id":    result.ID,
				"error": err.Error(),
			})
		}
	}

	return result, nil
}

func (s *VerificationService) lookupAadhaar(ctx context.Context, number string) (*dto.ReferenceAadhaarRecord, error) {
	if strings.TrimSpace(number) == "" {
		return nil, nil
	}
	ref, err := s.refs.FindAadhaarByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, fmt.Errorf("aadhaar reference lookup: %w", err)
	}
	return ref, nil
}

func (s *VerificationService) lookupPAN(ctx context.Context, number string) (*dto.ReferencePANRecord, error) {
	if strings.TrimSpace(number) == "" {
		return nil, nil
	}
	ref, err := s.refs.FindPANByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, fmt.Errorf("pan reference lookup: %w", err)
	}
	return ref, nil
}

func (s *VerificationService) lookupEC(ctx context.Context, surveyNumber string) (*dto.ReferenceECRecord, error) {
	if strings.TrimSpace(surveyNumber) == "" {
		return nil, nil
	}
	ref, err := s.refs.FindECBySurveyNumber(ctx, strings.TrimSpace(surveyNumber))
	if err != nil {
		return nil, fmt.Errorf("ec reference lookup: %w", err)
	}
	return ref, nil
}

// scoreDocuments is the pure comparison step: extracted fields vs
// reference records, no I/O.
func scoreDocuments(docs dto.ApplicantDocuments, aadhaarRef *dto.ReferenceAadhaarRecord, panRef *dto.ReferencePANRecord, ecRef *dto.ReferenceECRecord) *dto.VerificationResult {
	perField := make(map[string]dto.MatchStatus, 15)

	if aadhaarRef != nil {
		perField[FieldAadhaarName] = matchOf(valuesEqual(docs.Aadhaar.Name, aadhaarRef.Name))
		perField[FieldAadhaarNumber] = matchOf(valuesEqual(docs.Aadhaar.AadhaarNumber, aadhaarRef.AadhaarNumber))
		perField[FieldAadhaarDOB] = matchOf(utils.DatesEqual(docs.Aadhaar.DateOfBirth, aadhaarRef.DateOfBirth))
	} else {
		perField[FieldAadhaarName] = dto.MatchStatusNoReference
		perField[FieldAadhaarNumber] = dto.MatchStatusNoReference
		perField[FieldAadhaarDOB] = dto.MatchStatusNoReference
	}

	if panRef != nil {
		perField[FieldPANName] = matchOf(valuesEqual(docs.PAN.Name, panRef.Name))
		perField[FieldPANNumber] = matchOf(valuesEqual(docs.PAN.PANNumber, panRef.PANNumber))
		perField[FieldPANDOB] = matchOf(utils.DatesEqual(docs.PAN.DateOfBirth, panRef.DateOfBirth))
	} else {
		perField[FieldPANName] = dto.MatchStatusNoReference
		perField[FieldPANNumber] = dto.MatchStatusNoReference
		perField[FieldPANDOB] = dto.MatchStatusNoReference
	}

	if ecRef != nil {
		perField[FieldECSurveyNumber] = matchOf(valuesEqual(docs.EC.SurveyNumber, ecRef.SurveyNumber))
		perField[FieldECMeasuringArea] = matchOf(valuesEqual(docs.EC.MeasuringArea, ecRef.MeasuringArea))
		perField[FieldECVillage] = matchOf(valuesEqual(docs.EC.Village, ecRef.Village))
		perField[FieldECHobli] = matchOf(valuesEqual(docs.EC.Hobli, ecRef.Hobli))
		perField[FieldECTaluk] = matchOf(valuesEqual(docs.EC.Taluk, ecRef.Taluk))
		perField[FieldECDistrict] = matchOf(valuesEqual(docs.EC.District, ecRef.District))
	} else {
		perField[FieldECSurveyNumber] = dto.MatchStatusNoReference
		perField[FieldECMeasuringArea] = dto.MatchStatusNoReference
		perField[FieldECVillage] = dto.MatchStatusNoReference
		perField[FieldECHobli] = dto.MatchStatusNoReference
		perField[FieldECTaluk] = dto.MatchStatusNoReference
		perField[FieldECDistrict] = dto.MatchStatusNoReference
	}

	// These three have no external source of truth; they are scored on
	// extraction success alone and carry a distinct status so consumers
	// can tell them apart from real cross-checks.
	perField[FieldECApplicationNumber] = presenceOf(docs.EC.ApplicationNumber)
	perField[FieldECApplicantName] = presenceOf(docs.EC.ApplicantName)
	perField[FieldECApplicantAddress] = presenceOf(docs.EC.ApplicantAddress)

	matched, comparable := 0, 0
	for _, status := range perField {
		if status == dto.MatchStatusNoReference {
			continue
		}
		comparable++
		if status == dto.MatchStatusMatch || status == dto.MatchStatusPresenceOnly {
			matched++
		}
	}

	riskScore, status := computeScore(matched, comparable)

	return &dto.VerificationResult{
		PerFieldMatch:   perField,
		MatchedCount:    matched,
		ComparableCount: comparable,
		RiskScore:       riskScore,
		Status:          status,
	}
}

// computeScore derives the risk score and verdict from the aggregate
// counts. Zero comparable fields means no reference data was found at
// all; absence of evidence is maximally risky, not a pass.
func computeScore(matched, comparable int) (float64, dto.VerificationStatus) {
	if comparable == 0 {
		return 100, dto.StatusRejected
	}

	ratio := float64(matched) / float64(comparable)
	riskScore := math.Round((100-ratio*100)*100) / 100

	if ratio >= verifiedThreshold {
		return riskScore, dto.StatusVerified
	}
	return riskScore, dto.StatusRejected
}

// valuesEqual is the default field comparator: trimmed, case-insensitive
// exact equality. Empty-vs-empty agrees; empty-vs-nonempty does not.
func valuesEqual(extracted, reference string) bool {
	return strings.EqualFold(strings.TrimSpace(extracted), strings.TrimSpace(reference))
}

func matchOf(equal bool) dto.MatchStatus {
	if equal {
		return dto.MatchStatusMatch
	}
	return dto.MatchStatusMismatch
}

func presenceOf(extracted string) dto.MatchStatus {
	if strings.TrimSpace(extracted) != "" {
		return dto.MatchStatusPresenceOnly
	}
	return dto.MatchStatusMismatch
}
