package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"voterroll/internal/voter/models"
	"voterroll/pkg/validation"
)

const opFetch = "fetch voters"

const selectVoters = `SELECT epic_id, booth_id, constituency_id,
	COALESCE(serial_number, ''), COALESCE(name, ''), COALESCE(name_phonetic, ''),
	COALESCE(guardian_name, ''), COALESCE(gender, ''), COALESCE(date_of_birth, ''), age,
	COALESCE(mobile, ''), COALESCE(photo_url, ''), COALESCE(part_number, ''),
	COALESCE(area, ''), COALESCE(house_number, ''), COALESCE(last_voted_party, ''),
	COALESCE(voting_preference, ''), COALESCE(certainty_of_vote, ''), COALESCE(vote_type, ''),
	COALESCE(availability, ''), COALESCE(religion, ''), COALESCE(category, ''),
	COALESCE(caste, ''), COALESCE(education_level, ''), COALESCE(employment_status, ''),
	COALESCE(business_type, ''), COALESCE(job_role, ''), COALESCE(salary_range, ''),
	COALESCE(verification_status, '')
FROM voters`

// PostgresFetcher reads raw records from the voters table.
type PostgresFetcher struct {
	db *sql.DB
}

func NewPostgresFetcher(db *sql.DB) *PostgresFetcher {
	return &PostgresFetcher{db: db}
}

// Fetch runs one query for filters. Rows come back in booth then serial
// order so repeated loads hydrate identically.
func (f *PostgresFetcher) Fetch(ctx context.Context, filters FetchFilters) ([]models.Fields, error) {
	if err := validation.Validate(filters); err != nil {
		return nil, NewFetchError(KindValidation, opFetch, err)
	}

	query, args := buildQuery(filters)
	rows, err := f.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []models.Fields
	for rows.Next() {
		var (
			rec models.Fields
			age sql.NullInt32
		)
		if err := rows.Scan(
			&rec.EpicID, &rec.BoothID, &rec.ConstituencyID,
			&rec.SerialNumber, &rec.Name, &rec.NamePhonetic,
			&rec.GuardianName, &rec.Gender, &rec.DateOfBirth, &age,
			&rec.Mobile, &rec.PhotoURL, &rec.PartNumber,
			&rec.Area, &rec.HouseNumber, &rec.LastVotedParty,
			&rec.VotingPreference, &rec.CertaintyOfVote, &rec.VoteType,
			&rec.Availability, &rec.Religion, &rec.Category,
			&rec.Caste, &rec.EducationLevel, &rec.EmploymentStatus,
			&rec.BusinessType, &rec.JobRole, &rec.SalaryRange,
			&rec.VerificationStatus,
		); err != nil {
			return nil, NewFetchError(KindServer, opFetch, fmt.Errorf("scan voter row: %w", err))
		}
		if age.Valid {
			a := int(age.Int32)
			rec.Age = &a
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func buildQuery(filters FetchFilters) (string, []any) {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filters.BoothIDs) > 0 {
		placeholders := make([]string, len(filters.BoothIDs))
		for i, id := range filters.BoothIDs {
			placeholders[i] = next(strings.TrimSpace(id))
		}
		where = append(where, "booth_id IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filters.ConstituencyID != "" {
		where = append(where, "constituency_id = "+next(filters.ConstituencyID))
	}
	if !filters.UpdatedSince.IsZero() {
		where = append(where, "updated_at >= "+next(filters.UpdatedSince))
	}

	var b strings.Builder
	b.WriteString(selectVoters)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY booth_id, serial_number, epic_id")
	if filters.Limit > 0 {
		b.WriteString(" LIMIT " + next(filters.Limit))
	}
	return b.String(), args
}

// classify maps driver errors to a FetchError kind. Connection failures,
// timeouts and Postgres class 08 errors are network; the rest are server.
func classify(err error) *FetchError {
	var (
		pgErr   *pgconn.PgError
		connErr *pgconn.ConnectError
		netErr  net.Error
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewFetchError(KindNetwork, opFetch, err)
	case errors.As(err, &connErr), errors.As(err, &netErr), errors.Is(err, sql.ErrConnDone):
		return NewFetchError(KindNetwork, opFetch, err)
	case errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08"):
		return NewFetchError(KindNetwork, opFetch, err)
	default:
		return NewFetchError(KindServer, opFetch, err)
	}
}
