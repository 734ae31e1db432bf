package teams

import (
	"context"
	"errors"

	"iotreg/models"

	"gorm.io/gorm"
)

// PageSize is the fixed page size for team listings.
const PageSize = 10

// Store is the persistence layer for Team records. The database carries a
// hard unique index on team_name; duplicate-key errors at insert time are
// translated into the same field-level message the pre-check produces, so a
// racing registration loses cleanly.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, team *models.Team) error {
	err := s.db.WithContext(ctx).Create(team).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ValidationErrors{"team_name": "This team name is already registered."}
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// List returns one page of teams, newest first, plus the total count.
func (s *Store) List(ctx context.Context, page int) ([]models.Team, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Team{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []models.Team
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&teams).Error
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

// UpdateStatus persists the status column only; gorm advances updated_at.
func (s *Store) UpdateStatus(ctx context.Context, team *models.Team, status models.TeamStatus) error {
	return s.db.WithContext(ctx).Model(team).Update("status", status).Error
}

func (s *Store) Delete(ctx context.Context, team *models.Team) error {
	return s.db.WithContext(ctx).Delete(team).Error
}

func (s *Store) NameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Team{}).
		Where("team_name = ?", name).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error
	return count, err
}

func (s *Store) CountByStatus(ctx context.Context, status models.TeamStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Team{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (s *Store) Recent(ctx context.Context, limit int) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&teams).Error
	return teams, err
}

func (s *Store) ApprovedTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusApproved).
		Find(&teams).Error
	return teams, err
}
