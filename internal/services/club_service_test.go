package services

import (
	"context"
	"testing"

	"nightfly_backend/internal/database"
	"nightfly_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubService_SeedDemoClubsOnce(t *testing.T) {
	svc := NewClubService(repositories.NewClubRepository(database.NewMemoryStore()))
	ctx := context.Background()

	seeded, err := svc.SeedDemoClubs(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DemoClubs), seeded)

	seeded, err = svc.SeedDemoClubs(ctx)
	require.NoError(t, err)
	assert.Zero(t, seeded)

	clubs, err := svc.GetClubs(ctx)
	require.NoError(t, err)
	assert.Len(t, clubs, len(DemoClubs))
}

func TestClubService_PartialUpdate(t *testing.T) {
	svc := NewClubService(repositories.NewClubRepository(database.NewMemoryStore()))
	ctx := context.Background()

	club, err := svc.CreateClub(ctx, CreateClubRequest{Name: "Nova Lounge", Location: "Bandra, Mumbai", Vibe: "EDM Nights"})
	require.NoError(t, err)

	vibe := "Techno, House"
	updated, err := svc.UpdateClub(ctx, UpdateClubRequest{ID: club.ID, Vibe: &vibe})
	require.NoError(t, err)
	assert.Equal(t, "Nova Lounge", updated.Name)
	assert.Equal(t, "Techno, House", updated.Vibe)

	empty := " "
	_, err = svc.UpdateClub(ctx, UpdateClubRequest{ID: club.ID, Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateClub(ctx, UpdateClubRequest{ID: "club-missing", Vibe: &vibe})
	assert.ErrorIs(t, err, ErrClubNotFound)
}

func TestUserService_UpsertKeepsCreatedAt(t *testing.T) {
	svc := NewUserService(repositories.NewUserRepository(database.NewMemoryStore()))
	ctx := context.Background()

	exists, err := svc.UserExists(ctx, "9876543210")
	require.NoError(t, err)
	assert.False(t, exists)

	first, err := svc.UpsertUser(ctx, UpsertUserRequest{Mobile: "9876543210", Name: "Riya"})
	require.NoError(t, err)
	second, err := svc.UpsertUser(ctx, UpsertUserRequest{Mobile: "9876543210", Name: "Riya S", Location: "Pune"})
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, "Riya S", second.Name)

	exists, err = svc.UserExists(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, exists)
}
