package postgres_test

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/suite"

	"github.com/waterway-crossing/internal/domain"
	"github.com/waterway-crossing/internal/domain/repository"
	"github.com/waterway-crossing/internal/repository/postgres"
	"github.com/waterway-crossing/internal/repository/postgres/testhelpers"
)

// WaterwayRepositoryTestSuite exercises the store against a real
// PostGIS database (see testhelpers.SetupTestDB for the env contract).
type WaterwayRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.WaterwayRepository
	writer *postgres.StoreWriter
	ctx    context.Context
}

func (s *WaterwayRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	db := postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger)
	s.repo = postgres.NewWaterwayRepository(db)
	s.writer = postgres.NewStoreWriter(db)

	err := s.writer.Rebuild(context.Background(), testhelpers.SampleWaterways(s.T()), 2)
	s.Require().NoError(err, "Failed to build test store")
}

func (s *WaterwayRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *WaterwayRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *WaterwayRepositoryTestSuite) TestCount() {
	count, err := s.repo.Count(s.ctx)
	s.NoError(err)
	s.EqualValues(4, count)
}

func (s *WaterwayRepositoryTestSuite) TestCandidates_BoundingBoxPrunes() {
	// A box around the origin covers the two crossing lines and
	// nothing else.
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}

	candidates, err := s.repo.Candidates(s.ctx, bound)
	s.NoError(err)

	ids := collectIDs(candidates)
	s.ElementsMatch([]string{"way/1", "way/2"}, ids)
}

func (s *WaterwayRepositoryTestSuite) TestCandidates_EmptyRegion() {
	bound := orb.Bound{Min: orb.Point{-50, -50}, Max: orb.Point{-49, -49}}

	candidates, err := s.repo.Candidates(s.ctx, bound)
	s.NoError(err)
	s.Empty(candidates)
}

func (s *WaterwayRepositoryTestSuite) TestCandidates_ReturnsDecodableGeometry() {
	bound := orb.Bound{Min: orb.Point{3, 3}, Max: orb.Point{5, 5}}

	candidates, err := s.repo.Candidates(s.ctx, bound)
	s.NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal("relation/4", candidates[0].ID)
	s.Equal("Müggelsee", candidates[0].Name)
	s.NotEmpty(candidates[0].Geometry)
}

func (s *WaterwayRepositoryTestSuite) TestRebuildIsDeterministic() {
	// Building twice from the same dataset must answer queries
	// identically and never accumulate duplicates.
	err := s.writer.Rebuild(s.ctx, testhelpers.SampleWaterways(s.T()), 2)
	s.Require().NoError(err)

	count, err := s.repo.Count(s.ctx)
	s.NoError(err)
	s.EqualValues(4, count)

	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}
	candidates, err := s.repo.Candidates(s.ctx, bound)
	s.NoError(err)
	s.ElementsMatch([]string{"way/1", "way/2"}, collectIDs(candidates))
}

func (s *WaterwayRepositoryTestSuite) TestCountByWaterwayType() {
	counts, err := s.repo.CountByWaterwayType(s.ctx)
	s.NoError(err)

	byType := map[string]int64{}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}
	s.EqualValues(2, byType["river"])
	s.EqualValues(1, byType["canal"])
	s.EqualValues(1, byType["unknown"])
}

func (s *WaterwayRepositoryTestSuite) TestQueriesAgainstUnbuiltStore() {
	// A fresh database has no waterways table at all. Queries must
	// answer "no waterways", not fail, until the builder has run.
	_, err := s.testDB.DB.Exec(`DROP TABLE IF EXISTS waterways`)
	s.Require().NoError(err)

	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}
	candidates, err := s.repo.Candidates(s.ctx, bound)
	s.NoError(err)
	s.Empty(candidates)

	count, err := s.repo.Count(s.ctx)
	s.NoError(err)
	s.EqualValues(0, count)

	counts, err := s.repo.CountByWaterwayType(s.ctx)
	s.NoError(err)
	s.Empty(counts)

	// Restore the store for the remaining tests.
	err = s.writer.Rebuild(s.ctx, testhelpers.SampleWaterways(s.T()), 2)
	s.Require().NoError(err)
}

func (s *WaterwayRepositoryTestSuite) TestCountByFeatureType() {
	counts, err := s.repo.CountByFeatureType(s.ctx)
	s.NoError(err)

	byType := map[string]int64{}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}
	s.EqualValues(3, byType["way"])
	s.EqualValues(1, byType["relation"])
}

func collectIDs(waterways []domain.Waterway) []string {
	ids := make([]string, 0, len(waterways))
	for _, w := range waterways {
		ids = append(ids, w.ID)
	}
	return ids
}

func TestWaterwayRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(WaterwayRepositoryTestSuite))
}
