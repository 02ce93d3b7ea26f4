package service

import (
	"context"
	"errors"
	"testing"

	"globetrotter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		updateFn:     func(_ context.Context, _ *models.User) error { return nil },
	}
}

// cityRepoStub is a stub for repository.CityRepository.
type cityRepoStub struct {
	searchFn      func(context.Context, string, int) ([]models.City, error)
	popularFn     func(context.Context, int) ([]models.City, error)
	getByIDsFn    func(context.Context, []uint) ([]models.City, error)
	createFn      func(context.Context, *models.City) error
	countFn       func(context.Context) (int64, error)
	savedByUserFn func(context.Context, uint) ([]models.City, error)
	saveFn        func(context.Context, uint, uint) error
	unsaveFn      func(context.Context, uint, uint) error
}

func (s *cityRepoStub) Search(ctx context.Context, query string, limit int) ([]models.City, error) {
	return s.searchFn(ctx, query, limit)
}
func (s *cityRepoStub) Popular(ctx context.Context, limit int) ([]models.City, error) {
	return s.popularFn(ctx, limit)
}
func (s *cityRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.City, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *cityRepoStub) Create(ctx context.Context, city *models.City) error {
	return s.createFn(ctx, city)
}
func (s *cityRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *cityRepoStub) SavedByUser(ctx context.Context, userID uint) ([]models.City, error) {
	return s.savedByUserFn(ctx, userID)
}
func (s *cityRepoStub) Save(ctx context.Context, userID, cityID uint) error {
	return s.saveFn(ctx, userID, cityID)
}
func (s *cityRepoStub) Unsave(ctx context.Context, userID, cityID uint) error {
	return s.unsaveFn(ctx, userID, cityID)
}

func noopCityRepo() *cityRepoStub {
	return &cityRepoStub{
		searchFn:      func(_ context.Context, _ string, _ int) ([]models.City, error) { return nil, nil },
		popularFn:     func(_ context.Context, _ int) ([]models.City, error) { return nil, nil },
		getByIDsFn:    func(_ context.Context, _ []uint) ([]models.City, error) { return nil, nil },
		createFn:      func(_ context.Context, _ *models.City) error { return nil },
		countFn:       func(_ context.Context) (int64, error) { return 0, nil },
		savedByUserFn: func(_ context.Context, _ uint) ([]models.City, error) { return nil, nil },
		saveFn:        func(_ context.Context, _, _ uint) error { return nil },
		unsaveFn:      func(_ context.Context, _, _ uint) error { return nil },
	}
}

// tripRepoStub is a stub for repository.TripRepository.
type tripRepoStub struct {
	createFn       func(context.Context, *models.Trip) error
	getByIDFn      func(context.Context, uint) (*models.Trip, error)
	getDetailFn    func(context.Context, uint) (*models.Trip, error)
	getByUserIDFn  func(context.Context, uint) ([]models.Trip, error)
	updateFn       func(context.Context, *models.Trip) error
	deleteFn       func(context.Context, uint) error
	getStopsFn     func(context.Context, uint) ([]models.TripStop, error)
	replaceStopsFn func(context.Context, uint, []models.TripStop) error
	reorderStopsFn func(context.Context, uint, []uint) error
}

func (s *tripRepoStub) Create(ctx context.Context, trip *models.Trip) error {
	return s.createFn(ctx, trip)
}
func (s *tripRepoStub) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tripRepoStub) GetDetail(ctx context.Context, id uint) (*models.Trip, error) {
	return s.getDetailFn(ctx, id)
}
func (s *tripRepoStub) GetByUserID(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *tripRepoStub) Update(ctx context.Context, trip *models.Trip) error {
	return s.updateFn(ctx, trip)
}
func (s *tripRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *tripRepoStub) GetStops(ctx context.Context, tripID uint) ([]models.TripStop, error) {
	return s.getStopsFn(ctx, tripID)
}
func (s *tripRepoStub) ReplaceStops(ctx context.Context, tripID uint, stops []models.TripStop) error {
	return s.replaceStopsFn(ctx, tripID, stops)
}
func (s *tripRepoStub) ReorderStops(ctx context.Context, tripID uint, orderedIDs []uint) error {
	return s.reorderStopsFn(ctx, tripID, orderedIDs)
}

func noopTripRepo() *tripRepoStub {
	return &tripRepoStub{
		createFn:       func(_ context.Context, _ *models.Trip) error { return nil },
		getByIDFn:      func(_ context.Context, _ uint) (*models.Trip, error) { return &models.Trip{}, nil },
		getDetailFn:    func(_ context.Context, _ uint) (*models.Trip, error) { return &models.Trip{}, nil },
		getByUserIDFn:  func(_ context.Context, _ uint) ([]models.Trip, error) { return nil, nil },
		updateFn:       func(_ context.Context, _ *models.Trip) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		getStopsFn:     func(_ context.Context, _ uint) ([]models.TripStop, error) { return nil, nil },
		replaceStopsFn: func(_ context.Context, _ uint, _ []models.TripStop) error { return nil },
		reorderStopsFn: func(_ context.Context, _ uint, _ []uint) error { return nil },
	}
}

// stopRepoStub is a stub for repository.StopRepository.
type stopRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.TripStop, error)
	getDetailFn         func(context.Context, uint) (*models.TripStop, error)
	getActivitiesFn     func(context.Context, uint) ([]models.Activity, error)
	replaceActivitiesFn func(context.Context, uint, []models.Activity) error
	reorderActivitiesFn func(context.Context, uint, []uint) error
}

func (s *stopRepoStub) GetByID(ctx context.Context, id uint) (*models.TripStop, error) {
	return s.getByIDFn(ctx, id)
}
func (s *stopRepoStub) GetDetail(ctx context.Context, id uint) (*models.TripStop, error) {
	return s.getDetailFn(ctx, id)
}
func (s *stopRepoStub) GetActivities(ctx context.Context, stopID uint) ([]models.Activity, error) {
	return s.getActivitiesFn(ctx, stopID)
}
func (s *stopRepoStub) ReplaceActivities(ctx context.Context, stopID uint, activities []models.Activity) error {
	return s.replaceActivitiesFn(ctx, stopID, activities)
}
func (s *stopRepoStub) ReorderActivities(ctx context.Context, stopID uint, orderedIDs []uint) error {
	return s.reorderActivitiesFn(ctx, stopID, orderedIDs)
}

func noopStopRepo() *stopRepoStub {
	return &stopRepoStub{
		getByIDFn:           func(_ context.Context, _ uint) (*models.TripStop, error) { return &models.TripStop{}, nil },
		getDetailFn:         func(_ context.Context, _ uint) (*models.TripStop, error) { return &models.TripStop{}, nil },
		getActivitiesFn:     func(_ context.Context, _ uint) ([]models.Activity, error) { return nil, nil },
		replaceActivitiesFn: func(_ context.Context, _ uint, _ []models.Activity) error { return nil },
		reorderActivitiesFn: func(_ context.Context, _ uint, _ []uint) error { return nil },
	}
}

// expenseRepoStub is a stub for repository.ExpenseRepository.
type expenseRepoStub struct {
	getByTripIDFn    func(context.Context, uint) ([]models.Expense, error)
	replaceForTripFn func(context.Context, uint, []models.Expense) error
}

func (s *expenseRepoStub) GetByTripID(ctx context.Context, tripID uint) ([]models.Expense, error) {
	return s.getByTripIDFn(ctx, tripID)
}
func (s *expenseRepoStub) ReplaceForTrip(ctx context.Context, tripID uint, expenses []models.Expense) error {
	return s.replaceForTripFn(ctx, tripID, expenses)
}

func noopExpenseRepo() *expenseRepoStub {
	return &expenseRepoStub{
		getByTripIDFn:    func(_ context.Context, _ uint) ([]models.Expense, error) { return nil, nil },
		replaceForTripFn: func(_ context.Context, _ uint, _ []models.Expense) error { return nil },
	}
}

// mailerStub records outbound OTP mail.
type mailerStub struct {
	sent    []string
	to      []string
	sendErr error
}

func (m *mailerStub) SendOTP(_ context.Context, to, otp string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.to = append(m.to, to)
	m.sent = append(m.sent, otp)
	return nil
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}
