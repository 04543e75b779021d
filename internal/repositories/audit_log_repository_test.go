package repositories

import (
	"testing"
	"time"

	"conta-bancaria/internal/database"
	"conta-bancaria/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuditLogRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo AuditLogRepositoryInterface
	user *models.User
}

func (s *AuditLogRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAuditLogRepository(s.db.DB)
	s.user = database.CreateTestCustomer(s.T(), s.db, "52998224725")
}

func (s *AuditLogRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestAuditLogRepositorySuite(t *testing.T) {
	suite.Run(t, new(AuditLogRepositorySuite))
}

func (s *AuditLogRepositorySuite) newLog(action string) *models.AuditLog {
	return &models.AuditLog{
		UserID:    &s.user.ID,
		Action:    action,
		Resource:  "account",
		IPAddress: gofakeit.IPv4Address(),
		UserAgent: gofakeit.UserAgent(),
	}
}

func (s *AuditLogRepositorySuite) TestCreate() {
	log := s.newLog("account.withdraw")
	log.SetMetadata("amount", "120.00")

	s.NoError(s.repo.Create(log))
	s.NotEqual(uuid.Nil, log.ID)
}

func (s *AuditLogRepositorySuite) TestListByUserID() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.repo.Create(s.newLog("account.deposit")))
	}

	logs, total, err := s.repo.ListByUserID(s.user.ID, 0, 2)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Len(logs, 2)
}

func (s *AuditLogRepositorySuite) TestListByAction() {
	s.Require().NoError(s.repo.Create(s.newLog("auth.login")))
	s.Require().NoError(s.repo.Create(s.newLog("auth.login")))
	s.Require().NoError(s.repo.Create(s.newLog("account.withdraw")))

	logs, total, err := s.repo.ListByAction("auth.login", 0, 20)
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(logs, 2)
}

func (s *AuditLogRepositorySuite) TestDeleteOlderThan() {
	old := s.newLog("account.deposit")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	s.Require().NoError(s.repo.Create(old))

	recent := s.newLog("account.deposit")
	s.Require().NoError(s.repo.Create(recent))

	deleted, err := s.repo.DeleteOlderThan(24 * time.Hour)
	s.NoError(err)
	s.Equal(int64(1), deleted)

	logs, total, err := s.repo.ListByUserID(s.user.ID, 0, 20)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Equal(recent.ID, logs[0].ID)
}
