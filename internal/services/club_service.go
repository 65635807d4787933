package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nightfly_backend/internal/models"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrClubNotFound = errors.New("club not found")
	ErrClubExists   = errors.New("a club with this id already exists")
)

// CreateClubRequest DTO
type CreateClubRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Vibe        string `json:"vibe"`
	Instagram   string `json:"instagram"`
	ImageBase64 string `json:"imageBase64"`
}

// UpdateClubRequest DTO. Nil fields are left as stored.
type UpdateClubRequest struct {
	ID          string  `json:"id" binding:"required"`
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	Vibe        *string `json:"vibe"`
	Instagram   *string `json:"instagram"`
	ImageBase64 *string `json:"imageBase64"`
}

// --- ClubService Interface ---
type ClubService interface {
	CreateClub(ctx context.Context, req CreateClubRequest) (*models.Club, error)
	GetClubs(ctx context.Context) ([]models.Club, error)
	GetClubByID(ctx context.Context, clubID string) (*models.Club, error)
	UpdateClub(ctx context.Context, req UpdateClubRequest) (*models.Club, error)
	DeleteClub(ctx context.Context, clubID string) error
	SeedDemoClubs(ctx context.Context) (int, error)
}

type clubService struct {
	clubRepo repositories.ClubRepository
}

// NewClubService creates a new instance of ClubService.
func NewClubService(clubRepo repositories.ClubRepository) ClubService {
	return &clubService{clubRepo: clubRepo}
}

// DemoClubs are inserted into an empty store when seeding is enabled.
var DemoClubs = []models.Club{
	{ID: "club-nova-lounge", Name: "Nova Lounge", Location: "Bandra, Mumbai", Vibe: "EDM Nights", Instagram: "https://instagram.com/novalounge"},
	{ID: "club-skyline-social", Name: "Skyline Social", Location: "Gurugram", Vibe: "Rooftop Beats", Instagram: "https://instagram.com/skylinesocial"},
	{ID: "club-velvet-room", Name: "Velvet Room", Location: "Indiranagar, Bengaluru", Vibe: "Ladies Night", Instagram: "https://instagram.com/velvetroom"},
}

func (s *clubService) CreateClub(ctx context.Context, req CreateClubRequest) (*models.Club, error) {
	if utils.IsEmpty(req.Name) || utils.IsEmpty(req.Location) {
		return nil, fmt.Errorf("%w: name and location are required", ErrValidation)
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = "club-" + uuid.NewString()
	}
	club := &models.Club{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Vibe:        strings.TrimSpace(req.Vibe),
		Instagram:   strings.TrimSpace(req.Instagram),
		ImageBase64: req.ImageBase64,
	}
	if err := s.clubRepo.CreateClub(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrClubExists
		}
		return nil, storageError(err, "create club")
	}
	return club, nil
}

func (s *clubService) GetClubs(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.clubRepo.GetClubs(ctx)
	if err != nil {
		return nil, storageError(err, "get clubs")
	}
	return clubs, nil
}

func (s *clubService) GetClubByID(ctx context.Context, clubID string) (*models.Club, error) {
	club, err := s.clubRepo.GetClubByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, storageError(err, "get club")
	}
	return club, nil
}

func (s *clubService) UpdateClub(ctx context.Context, req UpdateClubRequest) (*models.Club, error) {
	club, err := s.GetClubByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if utils.IsEmpty(*req.Name) {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		club.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		if utils.IsEmpty(*req.Location) {
			return nil, fmt.Errorf("%w: location cannot be empty", ErrValidation)
		}
		club.Location = strings.TrimSpace(*req.Location)
	}
	if req.Vibe != nil {
		club.Vibe = strings.TrimSpace(*req.Vibe)
	}
	if req.Instagram != nil {
		club.Instagram = strings.TrimSpace(*req.Instagram)
	}
	if req.ImageBase64 != nil {
		club.ImageBase64 = *req.ImageBase64
	}

	if err := s.clubRepo.UpdateClub(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, storageError(err, "update club")
	}
	return club, nil
}

func (s *clubService) DeleteClub(ctx context.Context, clubID string) error {
	if err := s.clubRepo.DeleteClub(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClubNotFound
		}
		return storageError(err, "delete club")
	}
	return nil
}

// SeedDemoClubs inserts DemoClubs when no club exists yet and reports how many were added.
func (s *clubService) SeedDemoClubs(ctx context.Context) (int, error) {
	existing, err := s.clubRepo.GetClubs(ctx)
	if err != nil {
		return 0, storageError(err, "check clubs before seeding")
	}
	if len(existing) > 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	seeded := 0
	for _, demo := range DemoClubs {
		club := demo
		club.CreatedAt, club.UpdatedAt = now, now
		if err := s.clubRepo.CreateClub(ctx, &club); err != nil {
			if errors.Is(err, repositories.ErrDuplicateKey) {
				continue
			}
			return seeded, storageError(err, "seed club "+club.Name)
		}
		seeded++
	}
	return seeded, nil
}
