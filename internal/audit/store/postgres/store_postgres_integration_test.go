//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"docaudit/internal/audit/models"
	"docaudit/internal/audit/store"
	"docaudit/internal/audit/store/postgres"
	"docaudit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	_, err := s.postgres.DB.ExecContext(context.Background(), postgres.Schema)
	s.Require().NoError(err)
	s.store = postgres.New(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx, "audit_results")
	s.Require().NoError(err)
}

func makeResult(auditID string) models.AuditResult {
	return models.AuditResult{
		AuditID:       auditID,
		DocumentCount: 2,
		Inconsistencies: []models.Inconsistency{{
			Field:             "ssn",
			Severity:          models.SeverityCritical,
			ExpectedValue:     "123-45-6789",
			ActualValue:       "123-45-6780",
			SourceDocumentIDs: []string{"gov", "tax"},
			Description:       "ssn mismatch between gov and tax",
		}},
		GoldenRecord: models.GoldenRecord{
			"ssn": {
				Value:             "123-45-6789",
				SourceDocumentID:  "gov",
				Confidence:        0.95,
				AlternativeValues: []string{"123-45-6780"},
			},
		},
		RiskAssessment: models.RiskAssessment{
			Score: 30,
			Level: models.RiskMedium,
			Factors: []models.RiskFactor{{
				Factor:      "inconsistency",
				Points:      30,
				Description: "ssn mismatch between gov and tax",
			}},
		},
	}
}

// TestRoundTripFidelity verifies the JSONB payload survives a write and read
// with every nested structure intact.
func (s *PostgresStoreSuite) TestRoundTripFidelity() {
	ctx := context.Background()
	result := makeResult("audit-1")

	err := s.store.Put(ctx, result)
	s.Require().NoError(err)

	got, err := s.store.Get(ctx, "audit-1")
	s.Require().NoError(err)
	s.Equal(&result, got)
}

// TestGetMissing verifies the not-found sentinel surfaces for unknown ids.
func (s *PostgresStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "missing")
	s.ErrorIs(err, store.ErrNotFound)
}

// TestUpsert verifies re-running an audit replaces the stored result.
func (s *PostgresStoreSuite) TestUpsert() {
	ctx := context.Background()

	first := makeResult("audit-1")
	s.Require().NoError(s.store.Put(ctx, first))

	second := makeResult("audit-1")
	second.DocumentCount = 3
	second.RiskAssessment.Score = 45
	s.Require().NoError(s.store.Put(ctx, second))

	got, err := s.store.Get(ctx, "audit-1")
	s.Require().NoError(err)
	s.Equal(3, got.DocumentCount)
	s.Equal(45, got.RiskAssessment.Score)
}

// TestConcurrentPuts verifies independent audits persist safely in parallel.
func (s *PostgresStoreSuite) TestConcurrentPuts() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var errCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			result := makeResult("audit-" + string(rune('A'+idx)))
			if err := s.store.Put(ctx, result); err != nil {
				errCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	s.Equal(int32(0), errCount.Load(), "no puts should fail")

	for i := 0; i < goroutines; i++ {
		got, err := s.store.Get(ctx, "audit-"+string(rune('A'+i)))
		s.Require().NoError(err)
		s.Equal("audit-"+string(rune('A'+i)), got.AuditID)
	}
}
