//go:build integration

package applicant_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"uat/internal/path"
	"uat/internal/user/models"
	"uat/internal/user/store/account"
	"uat/internal/user/store/applicant"
	"uat/pkg/platform/sentinel"
	txcontext "uat/pkg/platform/tx"
	"uat/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *applicant.PostgresStore
	accounts *account.PostgresStore
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = applicant.NewPostgres(s.postgres.DB)
	s.accounts = account.NewPostgres(s.postgres.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(s.ctx))
}

func (s *PostgresStoreSuite) TestDocumentRoundTrip() {
	a := models.NewApplicant(time.Now().UTC().Truncate(time.Microsecond))
	d, err := a.ApplicantData()
	s.Require().NoError(err)
	d.PutString(path.Create("applicant.name.first"), "Ada")
	d.PutLong(path.Create("applicant.household.size"), 3)
	s.Require().NoError(s.store.Insert(s.ctx, a))
	s.False(a.ID.IsZero())

	found, err := s.store.FindByID(s.ctx, a.ID)
	s.Require().NoError(err)
	s.True(a.CreatedAt.Equal(found.CreatedAt))
	fd, err := found.ApplicantData()
	s.Require().NoError(err)
	first, _ := fd.ReadString(path.Create("applicant.name.first"))
	s.Equal("Ada", first)
	size, ok := fd.ReadLong(path.Create("applicant.household.size"))
	s.True(ok)
	s.Equal(int64(3), size)
}

func (s *PostgresStoreSuite) TestAccountLinkAndUpdate() {
	acct := models.NewAccount("linked@example.org")
	s.Require().NoError(s.accounts.Insert(s.ctx, acct))

	a := models.NewApplicant(time.Now())
	s.Require().NoError(s.store.Insert(s.ctx, a))
	a.SetAccount(acct.ID)
	s.Require().NoError(s.store.Update(s.ctx, a))

	linked, err := s.store.ListByAccount(s.ctx, acct.ID)
	s.Require().NoError(err)
	s.Require().Len(linked, 1)
	s.Equal(a.ID, linked[0].ID)

	s.ErrorIs(s.store.Update(s.ctx, &models.Applicant{ID: a.ID + 100}), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTransactionRollback() {
	err := txcontext.Run(s.ctx, s.postgres.DB, func(ctx context.Context) error {
		if err := s.store.Insert(ctx, models.NewApplicant(time.Now())); err != nil {
			return err
		}
		return sentinel.ErrConflict
	})
	s.ErrorIs(err, sentinel.ErrConflict)

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}
