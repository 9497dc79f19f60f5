package repositories

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

const testDSN = "petfind:petfind@tcp(127.0.0.1:3306)/petfind?charset=utf8mb4&parseTime=True&loc=Local"

// sqlRecorder keeps every statement gorm renders
type sqlRecorder struct {
	logger.Interface
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmts = append(r.stmts, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stmts...)
}

// first returns the first statement starting with prefix
func (r *sqlRecorder) first(prefix string) string {
	for _, s := range r.all() {
		if strings.HasPrefix(s, prefix) {
			return s
		}
	}
	return ""
}

type SQLSuite struct {
	suite.Suite
	ctx context.Context
	rec *sqlRecorder
	db  *gorm.DB
}

func TestSQLSuite(t *testing.T) {
	suite.Run(t, new(SQLSuite))
}

// open builds a MySQL dialect gorm handle that never reaches a server
func (s *SQLSuite) open(cfg gorm.Config) *gorm.DB {
	cfg.Logger = s.rec
	cfg.DisableAutomaticPing = true
	cfg.SkipDefaultTransaction = true
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       testDSN,
		SkipInitializeWithVersion: true,
	}), &cfg)
	s.Require().NoError(err)
	return db
}

func (s *SQLSuite) SetupTest() {
	s.ctx = context.Background()
	s.rec = &sqlRecorder{Interface: logger.Discard}
	s.db = s.open(gorm.Config{DryRun: true})
}

func (s *SQLSuite) TestAnimalRowLock() {
	_, err := NewAnimalRepository(s.db).GetByIDForUpdate(s.ctx, 7)
	s.Require().NoError(err)

	sql := s.rec.first("SELECT * FROM `animals`")
	s.Contains(sql, "`animals`.`id` = 7")
	s.True(strings.HasSuffix(sql, "FOR UPDATE"), sql)
}

func (s *SQLSuite) TestLatestCodeLock() {
	repo := NewOtpCodeRepository(s.db)

	_, err := repo.GetLatestByUserID(s.ctx, 5)
	s.Require().NoError(err)
	_, err = repo.GetLatestByUserIDForUpdate(s.ctx, 5)
	s.Require().NoError(err)

	stmts := s.rec.all()
	s.Require().Len(stmts, 2)
	for _, sql := range stmts {
		s.Contains(sql, "FROM `otp_codes` WHERE user_id = 5")
		s.Contains(sql, "ORDER BY created_at DESC,id DESC")
	}
	s.NotContains(stmts[0], "FOR UPDATE")
	s.True(strings.HasSuffix(stmts[1], "FOR UPDATE"), stmts[1])
}

func (s *SQLSuite) TestAnimalSearch() {
	repo := NewAnimalRepository(s.db)
	species := uint(2)
	gender := models.AnimalGenderFemale
	vaccinated := true

	s.Run("filters and member shelters", func() {
		_, err := repo.Search(s.ctx, AnimalFilter{SpeciesID: &species, Gender: &gender, IsVaccinated: &vaccinated}, []uint{3, 4})
		s.Require().NoError(err)

		sql := s.rec.first("SELECT animals.* FROM `animals`")
		s.Contains(sql, "animals.species_id = 2")
		s.Contains(sql, "animals.gender = 'female'")
		s.Contains(sql, "animals.is_vaccinated = true")
		s.Contains(sql, "animals.status = 'available' OR animals.shelter_id IN (3,4)")
		s.Contains(sql, "ORDER BY animals.created_at DESC")
		s.NotContains(sql, "JOIN shelters")
	})

	s.Run("anonymous callers only see available animals", func() {
		s.rec.stmts = nil
		city := "Lima"
		_, err := repo.Search(s.ctx, AnimalFilter{City: &city}, nil)
		s.Require().NoError(err)

		sql := s.rec.first("SELECT animals.* FROM `animals`")
		s.Contains(sql, "JOIN shelters ON shelters.id = animals.shelter_id")
		s.Contains(sql, "LOWER(shelters.city) = LOWER('Lima')")
		s.Contains(sql, "animals.status = 'available'")
		s.NotContains(sql, "shelter_id IN")
	})
}

func (s *SQLSuite) TestCatalogEdits() {
	species := NewSpeciesRepository(s.db)

	s.Require().NoError(species.Update(s.ctx, &models.Species{ID: 3, Name: "Feline"}))
	sql := s.rec.first("UPDATE `species`")
	s.Contains(sql, "SET `name`='Feline'")
	s.Contains(sql, "`id` = 3")

	s.rec.stmts = nil
	inUse, err := species.InUse(s.ctx, 4)
	s.Require().NoError(err)
	s.False(inUse)
	stmts := s.rec.all()
	s.Require().Len(stmts, 2)
	s.Contains(stmts[0], "FROM `breeds` WHERE species_id = 4")
	s.Contains(stmts[1], "FROM `animals` WHERE species_id = 4")

	s.rec.stmts = nil
	_, err = NewBreedRepository(s.db).InUse(s.ctx, 9)
	s.Require().NoError(err)
	s.Contains(s.rec.first("SELECT count(*)"), "FROM `animals` WHERE breed_id = 9")
}

func (s *SQLSuite) TestDuplicateRequestIsConflict() {
	db := s.open(gorm.Config{TranslateError: true})
	fail := func(err error) func(*gorm.DB) {
		return func(tx *gorm.DB) { _ = tx.AddError(err) }
	}
	repo := NewAdoptionRequestRepository(db)
	request := &models.AdoptionRequest{AnimalID: 1, ShelterID: 1, RequesterID: 2}

	s.Require().NoError(db.Callback().Create().Replace("gorm:create",
		fail(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'idx_animal_requester'"})))
	err := repo.Create(s.ctx, request)
	s.ErrorIs(err, domain.ErrDuplicateAdoptionReq)
	s.ErrorIs(err, domain.ErrConflict)

	s.Require().NoError(db.Callback().Create().Replace("gorm:create",
		fail(&mysqldrv.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})))
	err = repo.Create(s.ctx, request)
	s.ErrorIs(err, gorm.ErrForeignKeyViolated)
	s.NotErrorIs(err, domain.ErrDuplicateAdoptionReq)
}

func (s *SQLSuite) TestAdoptionRequestUniqueIndex() {
	sch, err := schema.Parse(&models.AdoptionRequest{}, &sync.Map{}, schema.NamingStrategy{})
	s.Require().NoError(err)

	idx, ok := sch.ParseIndexes()["idx_animal_requester"]
	s.Require().True(ok)
	s.Equal("UNIQUE", idx.Class)

	var columns []string
	for _, f := range idx.Fields {
		columns = append(columns, f.DBName)
	}
	s.ElementsMatch([]string{"animal_id", "requester_id"}, columns)
}
