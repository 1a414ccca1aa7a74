package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// MockDiaryRepo is a mock implementation of port.DiaryRepository.
type MockDiaryRepo struct {
	mock.Mock
}

func (m *MockDiaryRepo) Create(ctx context.Context, diary *domain.Diary) error {
	args := m.Called(ctx, diary)
	return args.Error(0)
}

func (m *MockDiaryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryRepo) List(ctx context.Context, filter port.DiaryFilter) ([]domain.Diary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

func (m *MockDiaryRepo) Update(ctx context.Context, diary *domain.Diary) error {
	args := m.Called(ctx, diary)
	return args.Error(0)
}

func (m *MockDiaryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDiaryPhotoRepo is a mock implementation of port.DiaryPhotoRepository.
type MockDiaryPhotoRepo struct {
	mock.Mock
}

func (m *MockDiaryPhotoRepo) Create(ctx context.Context, photo *domain.DiaryPhoto) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockDiaryPhotoRepo) GetByID(ctx context.Context, diaryID, photoID uuid.UUID) (*domain.DiaryPhoto, error) {
	args := m.Called(ctx, diaryID, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiaryPhoto), args.Error(1)
}

func (m *MockDiaryPhotoRepo) ListByDiary(ctx context.Context, diaryID uuid.UUID) ([]domain.DiaryPhoto, error) {
	args := m.Called(ctx, diaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiaryPhoto), args.Error(1)
}

func (m *MockDiaryPhotoRepo) Delete(ctx context.Context, diaryID, photoID uuid.UUID) error {
	args := m.Called(ctx, diaryID, photoID)
	return args.Error(0)
}
