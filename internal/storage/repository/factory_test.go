package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/PoorDoomer/gym-saas-sub000/internal/migrations"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage/storagetest"
)

// setupTestStorage поднимает postgres, применяет миграции и возвращает Storage.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	db, _ := storagetest.NewDB(t)
	require.NoError(t, migrations.Run(db, storagetest.MigrationsPath(t)))
	return &Storage{DB: db}
}

// TestDataFactory создаёт тестовые записи напрямую через Storage.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateIdentity создаёт учётную запись и возвращает её ID.
func (f *TestDataFactory) CreateIdentity(t *testing.T, email string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.storage.CreateIdentity(context.Background(), models.Identity{
		UUID: id, Email: email, PasswordHash: "hash",
	}))
	return id
}

// CreateGym создаёт клуб с владельцем-администратором.
func (f *TestDataFactory) CreateGym(t *testing.T, slug string) (*models.Gym, string) {
	t.Helper()
	owner := f.CreateIdentity(t, slug+"-owner@gym.test")
	gym, err := f.storage.CreateGym(context.Background(), models.Gym{Name: "Gym " + slug, Slug: slug}, owner)
	require.NoError(t, err)
	return gym, owner
}

// CreateMember создаёт активного участника клуба.
func (f *TestDataFactory) CreateMember(t *testing.T, gymID, first, last string) *models.Member {
	t.Helper()
	m, err := f.storage.CreateMember(context.Background(), models.Member{
		GymID: gymID, FirstName: first, LastName: last, Email: first + "@member.test",
	})
	require.NoError(t, err)
	return m
}

// CreatePlan создаёт месячный абонемент.
func (f *TestDataFactory) CreatePlan(t *testing.T, gymID string, price float64) *models.MembershipPlan {
	t.Helper()
	p, err := f.storage.CreatePlan(context.Background(), models.MembershipPlan{
		GymID: gymID, Name: "Monthly", Price: price, BillingPeriod: "monthly",
	})
	require.NoError(t, err)
	return p
}

// CreateClassWithSchedule создаёт занятие на capacity мест и одно проведение через час.
func (f *TestDataFactory) CreateClassWithSchedule(t *testing.T, gymID string, capacity int) (*models.Class, *models.ClassSchedule) {
	t.Helper()
	ctx := context.Background()
	c, err := f.storage.CreateClass(ctx, models.Class{
		GymID: gymID, Name: "Yoga Flow", Capacity: capacity, DurationMinutes: 60,
	})
	require.NoError(t, err)
	start := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	cs, err := f.storage.CreateSchedule(ctx, models.ClassSchedule{
		GymID: gymID, ClassID: c.ID, StartsAt: start, EndsAt: start.Add(time.Hour),
	})
	require.NoError(t, err)
	return c, cs
}

// CreateTrainer создаёт тренера клуба с собственной учётной записью.
func (f *TestDataFactory) CreateTrainer(t *testing.T, gymID, email string) *models.Trainer {
	t.Helper()
	userID := f.CreateIdentity(t, email)
	tr, err := f.storage.CreateTrainerAccount(context.Background(), models.Trainer{
		GymID: gymID, FirstName: "Mike", LastName: "Coach", Email: email,
	}, userID)
	require.NoError(t, err)
	return tr
}

// CreateSport создаёт вид спорта, принадлежащий клубу.
func (f *TestDataFactory) CreateSport(t *testing.T, gymID, name string) *models.Sport {
	t.Helper()
	sp, err := f.storage.CreateSport(context.Background(), models.Sport{
		GymID: &gymID, Name: name, Category: "fitness",
	})
	require.NoError(t, err)
	return sp
}
