package repositories

import (
	"context"
	"time"

	"nightfly_backend/internal/database"
	"nightfly_backend/internal/models"
)

// ClubRepository defines the interface for venue persistence.
type ClubRepository interface {
	CreateClub(ctx context.Context, club *models.Club) error
	GetClubByID(ctx context.Context, clubID string) (*models.Club, error)
	GetClubs(ctx context.Context) ([]models.Club, error)
	UpdateClub(ctx context.Context, club *models.Club) error
	DeleteClub(ctx context.Context, clubID string) error
}

type clubRepository struct {
	store database.Store
}

// NewClubRepository creates a new instance of ClubRepository.
func NewClubRepository(store database.Store) ClubRepository {
	return &clubRepository{store: store}
}

func (r *clubRepository) CreateClub(ctx context.Context, club *models.Club) error {
	if club.CreatedAt.IsZero() {
		club.CreatedAt = time.Now().UTC()
	}
	if club.UpdatedAt.IsZero() {
		club.UpdatedAt = club.CreatedAt
	}
	return translateStoreError(r.store.Insert(ctx, database.Clubs, club.ID, club), "creating club")
}

func (r *clubRepository) GetClubByID(ctx context.Context, clubID string) (*models.Club, error) {
	club := &models.Club{}
	if err := r.store.Get(ctx, database.Clubs, clubID, club); err != nil {
		return nil, translateStoreError(err, "getting club "+clubID)
	}
	return club, nil
}

func (r *clubRepository) GetClubs(ctx context.Context) ([]models.Club, error) {
	clubs := []models.Club{}
	if err := r.store.Find(ctx, database.Clubs, nil, &clubs); err != nil {
		return nil, translateStoreError(err, "querying clubs")
	}
	return clubs, nil
}

// UpdateClub overwrites the editable club fields; id and createdAt are kept.
func (r *clubRepository) UpdateClub(ctx context.Context, club *models.Club) error {
	club.UpdatedAt = time.Now().UTC()
	fields := map[string]any{
		"name":        club.Name,
		"location":    club.Location,
		"vibe":        club.Vibe,
		"instagram":   club.Instagram,
		"imageBase64": club.ImageBase64,
		"updatedAt":   club.UpdatedAt,
	}
	return translateStoreError(r.store.Merge(ctx, database.Clubs, club.ID, fields), "updating club "+club.ID)
}

func (r *clubRepository) DeleteClub(ctx context.Context, clubID string) error {
	return translateStoreError(r.store.Delete(ctx, database.Clubs, clubID), "deleting club "+clubID)
}
