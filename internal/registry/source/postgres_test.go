package source

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"

	dErrors "voterroll/pkg/domain-errors"
)

var voterColumns = []string{
	"epic_id", "booth_id", "constituency_id", "serial_number", "name", "name_phonetic",
	"guardian_name", "gender", "date_of_birth", "age", "mobile", "photo_url", "part_number",
	"area", "house_number", "last_voted_party", "voting_preference", "certainty_of_vote",
	"vote_type", "availability", "religion", "category", "caste", "education_level",
	"employment_status", "business_type", "job_role", "salary_range", "verification_status",
}

func voterRow(epicID, booth, name string, age any) []driver.Value {
	row := make([]driver.Value, len(voterColumns))
	for i := range row {
		row[i] = ""
	}
	row[0], row[1], row[4], row[9] = epicID, booth, name, age
	row[7] = "Male"
	return row
}

type PostgresFetcherSuite struct {
	suite.Suite
	mock    sqlmock.Sqlmock
	fetcher *PostgresFetcher
}

func TestPostgresFetcherSuite(t *testing.T) {
	suite.Run(t, new(PostgresFetcherSuite))
}

func (s *PostgresFetcherSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.mock = mock
	s.fetcher = NewPostgresFetcher(db)
}

func (s *PostgresFetcherSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *PostgresFetcherSuite) TestFetch_ScansRows() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM voters ORDER BY booth_id, serial_number, epic_id")).
		WillReturnRows(sqlmock.NewRows(voterColumns).
			AddRow(voterRow("ABC1234567", "B001", "Ram Kumar", int64(34))...).
			AddRow(voterRow("DEF2345678", "B001", "Sita Devi", nil)...))

	got, err := s.fetcher.Fetch(context.Background(), FetchFilters{})

	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("ABC1234567", got[0].EpicID)
	s.Equal("Male", got[0].Gender)
	s.Require().NotNil(got[0].Age)
	s.Equal(34, *got[0].Age)
	s.Nil(got[1].Age)
}

func (s *PostgresFetcherSuite) TestFetch_AppliesFilters() {
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mock.ExpectQuery(regexp.QuoteMeta(
		"FROM voters WHERE booth_id IN ($1, $2) AND constituency_id = $3 AND updated_at >= $4 "+
			"ORDER BY booth_id, serial_number, epic_id LIMIT $5")).
		WithArgs("B001", "B002", "AC-101", since, 100).
		WillReturnRows(sqlmock.NewRows(voterColumns))

	got, err := s.fetcher.Fetch(context.Background(), FetchFilters{
		BoothIDs:       []string{"B001", " B002 "},
		ConstituencyID: "AC-101",
		UpdatedSince:   since,
		Limit:          100,
	})

	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PostgresFetcherSuite) TestFetch_InvalidFiltersNeverQuery() {
	_, err := s.fetcher.Fetch(context.Background(), FetchFilters{BoothIDs: []string{" "}, Limit: -1})

	kind, ok := KindOf(err)
	s.Require().True(ok)
	s.Equal(KindValidation, kind)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *PostgresFetcherSuite) TestFetch_ClassifiesQueryErrors() {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"postgres connection exception", &pgconn.PgError{Code: "08006"}, KindNetwork},
		{"network error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, KindNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, KindServer},
		{"unknown", errors.New("boom"), KindServer},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mock.ExpectQuery("FROM voters").WillReturnError(tc.err)

			_, err := s.fetcher.Fetch(context.Background(), FetchFilters{})

			kind, ok := KindOf(err)
			s.Require().True(ok)
			s.Equal(tc.want, kind)
			s.ErrorIs(err, tc.err)
		})
	}
}

func (s *PostgresFetcherSuite) TestFetch_RowErrorIsServerError() {
	s.mock.ExpectQuery("FROM voters").
		WillReturnRows(sqlmock.NewRows(voterColumns).
			AddRow(voterRow("ABC1234567", "B001", "Ram", int64(30))...).
			RowError(0, errors.New("corrupt page")))

	_, err := s.fetcher.Fetch(context.Background(), FetchFilters{})

	kind, _ := KindOf(err)
	s.Equal(KindServer, kind)
}

func (s *PostgresFetcherSuite) TestFetch_ScanErrorIsServerError() {
	row := voterRow("ABC1234567", "B001", "Ram", "not a number")
	s.mock.ExpectQuery("FROM voters").WillReturnRows(sqlmock.NewRows(voterColumns).AddRow(row...))

	_, err := s.fetcher.Fetch(context.Background(), FetchFilters{})

	kind, _ := KindOf(err)
	s.Equal(KindServer, kind)
}
