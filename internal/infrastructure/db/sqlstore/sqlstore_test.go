package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:sqlstore_%s?mode=memory&cache=shared", name)
	db, err := Connect(dsn, false)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, SeedReference(context.Background(), db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, id, name string, role domain.Role) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, NewProfileRepository(db).Create(context.Background(), &domain.Profile{
		ID:        id,
		Email:     id + "@9rib.ma",
		FullName:  name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func seedApplication(t *testing.T, db *gorm.DB, id string, userID *string) {
	t.Helper()
	require.NoError(t, NewApplicationRepository(db).Create(context.Background(), &domain.Application{
		ID:              id,
		UserID:          userID,
		FullName:        "Youssef Amrani",
		Email:           "youssef@example.ma",
		CategoryID:      "cat-plumbing",
		CityID:          "city-casablanca",
		BusinessName:    "Amrani Plomberie",
		Description:     "Réparation de fuites",
		ExperienceYears: 5,
		Specialties:     []string{"fuites"},
		Status:          domain.StatusNotRead,
		CreatedAt:       time.Now().UTC(),
	}))
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("file:9rib.db?cache=shared"))
}

func TestSeedReference_FreshDatabase(t *testing.T) {
	db, err := Connect("file:sqlstore_seed_fresh?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedReference(context.Background(), db))

	var categories, cities int64
	require.NoError(t, db.Model(&categoryModel{}).Count(&categories).Error)
	require.NoError(t, db.Model(&cityModel{}).Count(&cities).Error)
	assert.EqualValues(t, 6, categories)
	assert.EqualValues(t, 6, cities)
}

func TestProfileRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	seedProfile(t, db, "user-9", "Youssef", domain.RoleClient)

	err := repo.Create(ctx, &domain.Profile{ID: "user-10", Email: "user-9@9rib.ma", Role: domain.RoleClient})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	p, err := repo.FindByEmail(ctx, "user-9@9rib.ma")
	require.NoError(t, err)
	assert.Equal(t, "user-9", p.ID)

	require.NoError(t, repo.UpdateRole(ctx, "user-9", domain.RoleArtisan))
	p, err = repo.FindByID(ctx, "user-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleArtisan, p.Role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, "ghost", domain.RoleAdmin), domain.ErrProfileNotFound)
	_, err = repo.FindByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestApplicationRepository_ListAndDecision(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	uid := "user-9"
	seedApplication(t, db, "app-1", &uid)
	seedApplication(t, db, "app-2", nil)

	items, total, err := repo.List(ctx, ports.ListApplicationsFilter{Status: "not_read", Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 1)

	now := time.Now().UTC()
	admin := "admin-1"
	app, err := repo.FindByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fuites"}, app.Specialties)

	app.Status = domain.StatusRejected
	app.AdminNotes = "Incomplete documents"
	app.ProcessedBy = &admin
	app.ProcessedAt = &now
	require.NoError(t, repo.UpdateDecision(ctx, app))

	stored, err := repo.FindByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, stored.Status)
	assert.Equal(t, "Incomplete documents", stored.AdminNotes)
	require.NotNil(t, stored.ProcessedBy)
	assert.Equal(t, "admin-1", *stored.ProcessedBy)

	_, total, err = repo.List(ctx, ports.ListApplicationsFilter{Status: "not_read", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	assert.ErrorIs(t, repo.UpdateDecision(ctx, &domain.Application{ID: "missing"}), domain.ErrApplicationNotFound)
}

func TestArtisanRepository_UpsertByUserKeepsOneRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArtisanRepository(db)
	ctx := context.Background()
	seedProfile(t, db, "user-9", "Youssef Amrani", domain.RoleClient)

	now := time.Now().UTC()
	app := &domain.Application{
		UserID:          func() *string { s := "user-9"; return &s }(),
		CategoryID:      "cat-plumbing",
		CityID:          "city-casablanca",
		BusinessName:    "Amrani Plomberie",
		ExperienceYears: 5,
	}

	first := domain.ArtisanProfileFromApplication(app, now)
	first.ID = "art-1"
	require.NoError(t, repo.UpsertByUser(ctx, first))

	app.ExperienceYears = 6
	second := domain.ArtisanProfileFromApplication(app, now.Add(time.Minute))
	second.ID = "art-2"
	require.NoError(t, repo.UpsertByUser(ctx, second))
	assert.Equal(t, "art-1", second.ID)

	var count int64
	require.NoError(t, db.Model(&artisanModel{}).Where("user_id = ?", "user-9").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	listing, err := repo.FindByID(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, "art-1", listing.ID)
	assert.Equal(t, "user-9", listing.UserID)
	assert.Equal(t, "Amrani Plomberie", listing.BusinessName)
	assert.Equal(t, 6, listing.ExperienceYears)
	assert.True(t, listing.IsVerified)
	assert.True(t, listing.IsActive)
	assert.Equal(t, "Youssef Amrani", listing.OwnerName)
	assert.Equal(t, "Plomberie", listing.CategoryName)
	assert.Equal(t, "Casablanca", listing.CityName)
}

func TestArtisanRepository_ListSearchAndFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArtisanRepository(db)
	ctx := context.Background()
	seedProfile(t, db, "user-1", "Youssef Amrani", domain.RoleArtisan)
	seedProfile(t, db, "user-2", "Salma Bennani", domain.RoleArtisan)
	seedProfile(t, db, "user-3", "Karim Idrissi", domain.RoleArtisan)

	now := time.Now().UTC()
	profiles := []*domain.ArtisanProfile{
		{ID: "art-1", UserID: "user-1", CategoryID: "cat-plumbing", CityID: "city-casablanca", BusinessName: "Amrani Plomberie", RatingAverage: 4.8, IsActive: true, IsVerified: true},
		{ID: "art-2", UserID: "user-2", CategoryID: "cat-zellige", CityID: "city-fes", BusinessName: "Atelier Zellige", Description: "Zellige 100% fait main", RatingAverage: 4.2, IsActive: true},
		{ID: "art-3", UserID: "user-3", CategoryID: "cat-plumbing", CityID: "city-rabat", BusinessName: "Idrissi Services", RatingAverage: 4.9, IsActive: false},
	}
	for _, p := range profiles {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, repo.UpsertByUser(ctx, p))
	}

	all, total, err := repo.List(ctx, ports.ArtisanQuery{ActiveOnly: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, all, 2)
	assert.Equal(t, "art-1", all[0].ID)
	assert.Equal(t, "user-1", all[0].UserID)
	assert.Equal(t, "Amrani Plomberie", all[0].BusinessName)
	assert.InDelta(t, 4.8, all[0].RatingAverage, 0.001)
	assert.True(t, all[0].IsActive)
	assert.Equal(t, "Youssef Amrani", all[0].OwnerName)

	byOwner, _, err := repo.List(ctx, ports.ArtisanQuery{Search: "BENNANI", ActiveOnly: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, "art-2", byOwner[0].ID)

	wildcard, _, err := repo.List(ctx, ports.ArtisanQuery{Search: "100%", ActiveOnly: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, wildcard, 1)

	verified := true
	onlyVerified, _, err := repo.List(ctx, ports.ArtisanQuery{Verified: &verified, MinRating: 4.5, ActiveOnly: true, Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, onlyVerified, 1)
	assert.Equal(t, "art-1", onlyVerified[0].ID)

	top, err := repo.Top(ctx, 6)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "art-1", top[0].ID)
}

func TestArtisanRepository_SearchFoldsAccents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArtisanRepository(db)
	ctx := context.Background()
	seedProfile(t, db, "user-1", "Omar Élalami", domain.RoleArtisan)
	seedProfile(t, db, "user-2", "Salma Bennani", domain.RoleArtisan)

	now := time.Now().UTC()
	for _, p := range []*domain.ArtisanProfile{
		{ID: "art-1", UserID: "user-1", CategoryID: "cat-electricity", CityID: "city-casablanca", BusinessName: "Électricité Anfa", IsActive: true},
		{ID: "art-2", UserID: "user-2", CategoryID: "cat-zellige", CityID: "city-fes", BusinessName: "Atelier Zellige", IsActive: true},
	} {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, repo.UpsertByUser(ctx, p))
	}

	for _, term := range []string{"électricité", "ÉLECTRICITÉ", "Électricité", "élalami", "ÉLALAMI"} {
		t.Run(term, func(t *testing.T) {
			items, total, err := repo.List(ctx, ports.ArtisanQuery{Search: term, ActiveOnly: true, Page: 1, Limit: 20})
			require.NoError(t, err)
			assert.EqualValues(t, 1, total)
			require.Len(t, items, 1)
			assert.Equal(t, "art-1", items[0].ID)
		})
	}
}

func TestArtisanRepository_UpdateThroughListing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArtisanRepository(db)
	ctx := context.Background()
	seedProfile(t, db, "user-1", "Youssef Amrani", domain.RoleArtisan)

	now := time.Now().UTC()
	require.NoError(t, repo.UpsertByUser(ctx, &domain.ArtisanProfile{
		ID: "art-1", UserID: "user-1", BusinessName: "Amrani Plomberie", IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	listing, err := repo.FindByID(ctx, "art-1")
	require.NoError(t, err)
	listing.IsFeatured = true
	require.NoError(t, repo.Update(ctx, &listing.ArtisanProfile))

	stored, err := repo.FindByID(ctx, "art-1")
	require.NoError(t, err)
	assert.True(t, stored.IsFeatured)
	assert.Equal(t, "Amrani Plomberie", stored.BusinessName)
}

func TestUnicodeLower(t *testing.T) {
	assert.Equal(t, "électricité", unicodeLower("ÉLECTRICITÉ"))
	assert.Equal(t, []byte("fès"), unicodeLower([]byte("FÈS")))
	assert.Nil(t, unicodeLower([]byte(nil)))
	assert.Equal(t, int64(3), unicodeLower(int64(3)))
}

func TestArtisanRepository_UpdateAndViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArtisanRepository(db)
	ctx := context.Background()
	seedProfile(t, db, "user-1", "Youssef Amrani", domain.RoleArtisan)

	p := &domain.ArtisanProfile{ID: "art-1", UserID: "user-1", BusinessName: "Amrani", IsActive: true}
	require.NoError(t, repo.UpsertByUser(ctx, p))

	p.IsActive = false
	p.PortfolioImages = []string{"https://cdn.9rib.ma/p/1.jpg"}
	require.NoError(t, repo.Update(ctx, p))
	require.NoError(t, repo.IncrementViews(ctx, "art-1"))
	require.NoError(t, repo.IncrementViews(ctx, "art-1"))

	stored, err := repo.FindByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, []string{"https://cdn.9rib.ma/p/1.jpg"}, stored.PortfolioImages)
	assert.EqualValues(t, 2, stored.ViewCount)

	assert.ErrorIs(t, repo.IncrementViews(ctx, "missing"), domain.ErrArtisanNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrArtisanNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedProfile(t, db, "user-9", "Youssef", domain.RoleClient)
	uid := "user-9"
	seedApplication(t, db, "app-1", &uid)

	boom := errors.New("boom")
	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context, repos ports.TxRepositories) error {
		app, err := repos.Applications.FindByID(ctx, "app-1")
		require.NoError(t, err)
		app.Status = domain.StatusValidated
		require.NoError(t, repos.Applications.UpdateDecision(ctx, app))
		require.NoError(t, repos.Profiles.UpdateRole(ctx, "user-9", domain.RoleArtisan))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	app, err := NewApplicationRepository(db).FindByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotRead, app.Status)

	p, err := NewProfileRepository(db).FindByID(ctx, "user-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleClient, p.Role)
}

func TestReferenceAndNotifications(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	refs := NewReferenceRepository(db)
	categories, err := refs.ActiveCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	assert.Equal(t, "cat-plumbing", categories[0].ID)

	require.NoError(t, db.Model(&cityModel{}).Where("id = ?", "city-agadir").Update("is_active", false).Error)
	cities, err := refs.ActiveCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 5)
	for _, c := range cities {
		assert.NotEqual(t, "city-agadir", c.ID)
	}

	// Seeding twice keeps the existing rows.
	require.NoError(t, SeedReference(ctx, db))

	notifications := NewNotificationRepository(db)
	require.NoError(t, notifications.Create(ctx, &domain.Notification{
		ID:        "n-1",
		UserID:    "user-9",
		Type:      domain.NotificationApplicationValidated,
		Title:     "Candidature validée",
		Data:      map[string]any{"application_id": "app-1"},
		CreatedAt: time.Now().UTC(),
	}))

	assert.ErrorIs(t, notifications.MarkRead(ctx, "n-1", "user-10"), domain.ErrNotificationNotFound)
	require.NoError(t, notifications.MarkRead(ctx, "n-1", "user-9"))

	unread, err := notifications.ListByUser(ctx, "user-9", true, 50)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := notifications.ListByUser(ctx, "user-9", false, 50)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "app-1", all[0].Data["application_id"])

	require.NoError(t, NewContactRepository(db).Create(ctx, &domain.ContactMessage{
		ID:      "c-1",
		Name:    "Salma",
		Email:   "salma@example.ma",
		Message: "Bonjour",
	}))
}
