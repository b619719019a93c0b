package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

func TestPropertyListPagesInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepo()
	for i := 0; i < 12; i++ {
		p := &model.Property{Name: fmt.Sprintf("Unit%02d", i), Size: "10 sqm", Type: model.PropertyApartment}
		require.NoError(t, repo.Create(ctx, p))
		if i%3 == 0 {
			require.NoError(t, repo.SetRented(ctx, p.ID, true))
		}
	}

	items, total, err := repo.List(ctx, repository.PropertyFilter{}, repository.Page{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, items, 5)
	assert.Equal(t, "Unit05", items[0].Name)

	items, _, err = repo.List(ctx, repository.PropertyFilter{}, repository.Page{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, items)

	rented := true
	n, err := repo.Count(ctx, repository.PropertyFilter{Rented: &rented})
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestRecordsAreCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewContractorRepo()
	c := &model.Contractor{Name: "Bob", Email: "bob@example.com", Phone: "0123456789", Skills: []string{"plumbing"}}
	require.NoError(t, repo.Create(ctx, c))

	c.Skills[0] = "changed"
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"plumbing"}, got.Skills)
}

func TestDuplicateEmails(t *testing.T) {
	ctx := context.Background()
	tenants := NewTenantRepo()
	a := &model.Tenant{Name: "A", Email: "same@example.com"}
	b := &model.Tenant{Name: "B", Email: "other@example.com"}
	require.NoError(t, tenants.Create(ctx, a))
	require.NoError(t, tenants.Create(ctx, b))

	assert.ErrorIs(t, tenants.Create(ctx, &model.Tenant{Email: "SAME@example.com"}), repository.ErrDuplicate)

	b.Email = "same@example.com"
	assert.ErrorIs(t, tenants.Update(ctx, b), repository.ErrDuplicate)

	a.Name = "A2"
	assert.NoError(t, tenants.Update(ctx, a))
}

func TestUnknownIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, err := s.Tenants.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Tenants.Delete(ctx, "nope"), repository.ErrNotFound)
	assert.ErrorIs(t, s.Properties.SetRented(ctx, "nope", true), repository.ErrNotFound)
	assert.ErrorIs(t, s.Maintenance.Update(ctx, &model.MaintenanceRequest{ID: "nope"}), repository.ErrNotFound)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepo()
	require.NoError(t, repo.StoreRefresh(ctx, "u1", "h1", time.Now().Add(time.Hour)))
	require.NoError(t, repo.StoreRefresh(ctx, "u1", "h2", time.Now().Add(time.Hour)))
	require.NoError(t, repo.StoreRefresh(ctx, "u1", "old", time.Now().Add(-time.Minute)))

	uid, err := repo.ValidateRefresh(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	_, err = repo.ValidateRefresh(ctx, "old")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.RevokeByHash(ctx, "h1"))
	_, err = repo.ValidateRefresh(ctx, "h1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.RevokeAllForUser(ctx, "u1"))
	_, err = repo.ValidateRefresh(ctx, "h2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserTokenSurvivesUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo()
	u := &model.User{Name: "Admin", Email: " Admin@Example.com", Role: model.RoleAdmin, Status: model.UserActive}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "admin@example.com", u.Email)

	jti := "jti-1"
	require.NoError(t, repo.SetToken(ctx, u.ID, &jti))

	u.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, u))
	got, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	require.NotNil(t, got.Token)
	assert.Equal(t, "jti-1", *got.Token)
}
