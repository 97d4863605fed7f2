package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/storage"
)

func TestStorage_TenantIsolation(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gymA, _ := f.CreateGym(t, "gym-a")
	gymB, _ := f.CreateGym(t, "gym-b")
	memberA := f.CreateMember(t, gymA.ID, "Jane", "Doe")
	f.CreateMember(t, gymB.ID, "John", "Smith")

	listA, err := s.ListMembers(ctx, gymA.ID)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, memberA.ID, listA[0].ID)

	_, err = s.GetMember(ctx, gymB.ID, memberA.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = s.DeactivateMember(ctx, gymB.ID, memberA.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_MemberSoftDeleteIsIdempotent(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "soft")
	m := f.CreateMember(t, gym.ID, "Anna", "Smith")
	assert.Nil(t, m.MembershipPlanID)

	require.NoError(t, s.DeactivateMember(ctx, gym.ID, m.ID))
	require.NoError(t, s.DeactivateMember(ctx, gym.ID, m.ID))

	got, err := s.GetMember(ctx, gym.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	n, err := s.CountActiveMembers(ctx, gym.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStorage_CreateGymMakesOwnerAdmin(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, owner := f.CreateGym(t, "owner")
	assert.Equal(t, models.TierStarter, gym.Tier)

	roles, err := s.ListRoles(ctx, owner, gym.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleAdmin, roles[0].Role)

	ok, err := s.HasGymAccess(ctx, owner, gym.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	gyms, err := s.ListGymsForUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, gyms, 1)

	_, err = s.CreateGym(ctx, models.Gym{Name: "dup", Slug: "owner"}, owner)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestStorage_TrainerSpecializationsAndSports(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "trainers")
	userID := f.CreateIdentity(t, "coach@gym.test")
	tr, err := s.CreateTrainerAccount(ctx, models.Trainer{
		GymID: gym.ID, FirstName: "Mike", LastName: "Coach", Email: "coach@gym.test",
		Specializations: []string{"yoga", "hiit, circuits"}, HourlyRate: 40.5,
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"yoga", "hiit, circuits"}, tr.Specializations)
	assert.InDelta(t, 40.5, tr.HourlyRate, 0.001)

	roles, err := s.ListRoles(ctx, userID, gym.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleTrainer, roles[0].Role)

	sports, err := s.ListSports(ctx, gym.ID)
	require.NoError(t, err)
	require.NotEmpty(t, sports)
	global := sports[0]
	assert.True(t, global.IsGlobal())

	require.NoError(t, s.AssignTrainerSport(ctx, gym.ID, tr.ID, global.ID, models.SkillExpert))
	list, err := s.ListTrainerSports(ctx, gym.ID, tr.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.SkillExpert, list[0].SkillLevel)

	require.NoError(t, s.RemoveTrainerSport(ctx, gym.ID, tr.ID, global.ID))
	assert.ErrorIs(t, s.RemoveTrainerSport(ctx, gym.ID, tr.ID, global.ID), storage.ErrNotFound)
}

func TestStorage_EnrollWaitlistsWhenFull(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "classes")
	_, cs := f.CreateClassWithSchedule(t, gym.ID, 1)
	first := f.CreateMember(t, gym.ID, "First", "One")
	second := f.CreateMember(t, gym.ID, "Second", "Two")

	e1, err := s.Enroll(ctx, gym.ID, cs.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentApproved, e1.Status)

	e2, err := s.Enroll(ctx, gym.ID, cs.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentWaitlist, e2.Status)

	_, err = s.Enroll(ctx, gym.ID, cs.ID, first.ID)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.UpdateEnrollmentStatus(ctx, gym.ID, e1.ID, models.EnrollmentNoShow)
	require.NoError(t, err)

	schedules, err := s.ListSchedules(ctx, gym.ID, time.Time{})
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, 0, schedules[0].EnrolledCount)

	require.NoError(t, s.CancelSchedule(ctx, gym.ID, cs.ID))
	third := f.CreateMember(t, gym.ID, "Third", "Three")
	_, err = s.Enroll(ctx, gym.ID, cs.ID, third.ID)
	assert.ErrorIs(t, err, models.ErrScheduleClosed)
}

func TestStorage_CheckInAndOut(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "checkins")
	m := f.CreateMember(t, gym.ID, "Jane", "Doe")

	c, err := s.CreateCheckIn(ctx, models.CheckIn{GymID: gym.ID, MemberID: m.ID, Method: models.CheckInQRScan})
	require.NoError(t, err)
	assert.Nil(t, c.CheckedOutAt)

	out, err := s.CheckOut(ctx, gym.ID, c.ID, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, out.CheckedOutAt)

	_, err = s.CheckOut(ctx, gym.ID, c.ID, time.Now())
	assert.ErrorIs(t, err, models.ErrAlreadyCheckedOut)

	list, err := s.ListCheckIns(ctx, gym.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.DeactivateMember(ctx, gym.ID, m.ID))
	_, err = s.CreateCheckIn(ctx, models.CheckIn{GymID: gym.ID, MemberID: m.ID, Method: models.CheckInManual})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_SubscriptionsExpiry(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "subs")
	m := f.CreateMember(t, gym.ID, "Jane", "Doe")
	plan := f.CreatePlan(t, gym.ID, 49.99)

	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)
	_, err := s.CreateSubscription(ctx, models.Subscription{
		GymID: gym.ID, MemberID: m.ID, MembershipPlanID: plan.ID, BillingPeriod: "monthly",
		CurrentPeriodStart: tomorrow.AddDate(0, -1, 0), CurrentPeriodEnd: tomorrow,
	})
	require.NoError(t, err)
	overdue, err := s.CreateSubscription(ctx, models.Subscription{
		GymID: gym.ID, MemberID: m.ID, MembershipPlanID: plan.ID, BillingPeriod: "monthly",
		CurrentPeriodStart: now.AddDate(0, -2, 0), CurrentPeriodEnd: now.AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	expiring, err := s.FindSubscriptionsExpiringOn(ctx, tomorrow)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "Jane@member.test", expiring[0].Email)
	assert.Equal(t, gym.Name, expiring[0].GymName)

	n, err := s.ExpireOverdueSubscriptions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetSubscription(ctx, gym.ID, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionExpired, got.Status)
}

func TestStorage_PaymentsAndRefund(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "payments")
	m := f.CreateMember(t, gym.ID, "Jane", "Doe")
	paid := time.Now()

	p, err := s.CreatePayment(ctx, models.Payment{
		GymID: gym.ID, MemberID: m.ID, Amount: 30, Currency: "USD",
		Method: models.PaymentCard, Status: models.PaymentCompleted, PaidAt: &paid,
	})
	require.NoError(t, err)
	assert.InDelta(t, 30.0, p.Amount, 0.001)

	require.NoError(t, s.UpdatePaymentStatus(ctx, gym.ID, p.ID, models.PaymentRefunded, nil))
	got, err := s.GetPayment(ctx, gym.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, got.Status)
	assert.NotNil(t, got.PaidAt)
}

func TestStorage_MemberAccountTransaction(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "accounts")
	userID := f.CreateIdentity(t, "jane@x.com")

	m, err := s.CreateMemberAccount(ctx, models.Member{
		GymID: gym.ID, FirstName: "Jane", LastName: "Doe", Email: "jane@x.com",
	}, userID)
	require.NoError(t, err)
	require.NotNil(t, m.UserID)

	links, err := s.ListAccountLinks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, m.ID, *links[0].MemberID)

	badPlan := "00000000-0000-4000-8000-000000000000"
	other := f.CreateIdentity(t, "other@x.com")
	_, err = s.CreateMemberAccount(ctx, models.Member{
		GymID: gym.ID, FirstName: "Bad", LastName: "Plan", Email: "other@x.com", MembershipPlanID: &badPlan,
	}, other)
	assert.ErrorIs(t, err, storage.ErrInvalidReference)

	roles, err := s.ListRoles(ctx, other, gym.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestStorage_ForeignRecordsFromOtherGym(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gymA, _ := f.CreateGym(t, "refs-a")
	gymB, _ := f.CreateGym(t, "refs-b")
	planB := f.CreatePlan(t, gymB.ID, 20)
	trainerB := f.CreateTrainer(t, gymB.ID, "coach-b@gym.test")
	sportB := f.CreateSport(t, gymB.ID, "Climbing")
	memberB := f.CreateMember(t, gymB.ID, "John", "Smith")
	subB, err := s.CreateSubscription(ctx, models.Subscription{
		GymID: gymB.ID, MemberID: memberB.ID, MembershipPlanID: planB.ID, BillingPeriod: "monthly",
		CurrentPeriodStart: time.Now(), CurrentPeriodEnd: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	memberA := f.CreateMember(t, gymA.ID, "Jane", "Doe")
	classA, _ := f.CreateClassWithSchedule(t, gymA.ID, 5)

	t.Run("абонемент участника", func(t *testing.T) {
		_, err := s.CreateMember(ctx, models.Member{
			GymID: gymA.ID, FirstName: "Eve", LastName: "Stone", Email: "eve@x.com", MembershipPlanID: &planB.ID,
		})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		upd := *memberA
		upd.MembershipPlanID = &planB.ID
		assert.ErrorIs(t, s.UpdateMember(ctx, upd), storage.ErrInvalidReference)

		got, err := s.GetMember(ctx, gymA.ID, memberA.ID)
		require.NoError(t, err)
		assert.Nil(t, got.MembershipPlanID)
	})

	t.Run("тренер и вид спорта занятия", func(t *testing.T) {
		_, err := s.CreateClass(ctx, models.Class{
			GymID: gymA.ID, Name: "Bouldering", Capacity: 10, DurationMinutes: 60, TrainerID: &trainerB.ID,
		})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		_, err = s.CreateClass(ctx, models.Class{
			GymID: gymA.ID, Name: "Bouldering", Capacity: 10, DurationMinutes: 60, SportID: &sportB.ID,
		})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		upd := *classA
		upd.TrainerID = &trainerB.ID
		assert.ErrorIs(t, s.UpdateClass(ctx, upd), storage.ErrInvalidReference)

		upd = *classA
		upd.SportID = &sportB.ID
		assert.ErrorIs(t, s.UpdateClass(ctx, upd), storage.ErrInvalidReference)
	})

	t.Run("глобальный вид спорта доступен", func(t *testing.T) {
		sports, err := s.ListSports(ctx, gymA.ID)
		require.NoError(t, err)
		var globalID string
		for _, sp := range sports {
			if sp.IsGlobal() {
				globalID = sp.ID
				break
			}
		}
		require.NotEmpty(t, globalID)

		c, err := s.CreateClass(ctx, models.Class{
			GymID: gymA.ID, Name: "Open Gym", Capacity: 10, DurationMinutes: 60, SportID: &globalID,
		})
		require.NoError(t, err)
		require.NotNil(t, c.SportID)
		assert.Equal(t, globalID, *c.SportID)
	})

	t.Run("тренер проведения", func(t *testing.T) {
		start := time.Now().Add(2 * time.Hour)
		_, err := s.CreateSchedule(ctx, models.ClassSchedule{
			GymID: gymA.ID, ClassID: classA.ID, TrainerID: &trainerB.ID, StartsAt: start, EndsAt: start.Add(time.Hour),
		})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)
	})

	t.Run("подписка платежа", func(t *testing.T) {
		_, err := s.CreatePayment(ctx, models.Payment{
			GymID: gymA.ID, MemberID: memberA.ID, SubscriptionID: &subB.ID, Amount: 20, Currency: "USD",
			Method: models.PaymentCard, Status: models.PaymentPending,
		})
		assert.ErrorIs(t, err, storage.ErrInvalidReference)

		payments, err := s.ListPayments(ctx, gymA.ID)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}

func TestStorage_TrainerAndSportSoftDeleteIsIdempotent(t *testing.T) {
	s := setupTestStorage(t)
	f := NewTestDataFactory(s)
	ctx := context.Background()

	gym, _ := f.CreateGym(t, "soft-staff")
	tr := f.CreateTrainer(t, gym.ID, "coach-soft@gym.test")
	sp := f.CreateSport(t, gym.ID, "Rowing")

	require.NoError(t, s.DeactivateTrainer(ctx, gym.ID, tr.ID))
	require.NoError(t, s.DeactivateTrainer(ctx, gym.ID, tr.ID))
	gotTrainer, err := s.GetTrainer(ctx, gym.ID, tr.ID)
	require.NoError(t, err)
	assert.False(t, gotTrainer.IsActive)

	require.NoError(t, s.DeactivateSport(ctx, gym.ID, sp.ID))
	require.NoError(t, s.DeactivateSport(ctx, gym.ID, sp.ID))
	gotSport, err := s.GetSport(ctx, gym.ID, sp.ID)
	require.NoError(t, err)
	assert.False(t, gotSport.IsActive)

	other, _ := f.CreateGym(t, "soft-staff-other")
	assert.ErrorIs(t, s.DeactivateTrainer(ctx, other.ID, tr.ID), storage.ErrNotFound)
	assert.ErrorIs(t, s.DeactivateSport(ctx, other.ID, sp.ID), storage.ErrNotFound)
}
