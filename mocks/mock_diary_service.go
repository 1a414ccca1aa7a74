package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/port"
	"sitediary/internal/service"
)

// MockDiaryService is a mock implementation of service.DiaryService.
type MockDiaryService struct {
	mock.Mock
}

func (m *MockDiaryService) Create(ctx context.Context, createdBy uuid.UUID, input service.DiaryInput) (*domain.Diary, error) {
	args := m.Called(ctx, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryService) Get(ctx context.Context, id uuid.UUID) (*service.DiaryDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DiaryDetail), args.Error(1)
}

func (m *MockDiaryService) List(ctx context.Context, filter port.DiaryFilter) ([]domain.Diary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Diary), args.Error(1)
}

func (m *MockDiaryService) Update(ctx context.Context, id uuid.UUID, input service.DiaryInput) (*domain.Diary, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diary), args.Error(1)
}

func (m *MockDiaryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDiaryService) UploadPhotos(ctx context.Context, diaryID uuid.UUID, files []service.PhotoFile) (*service.UploadPhotosResult, error) {
	args := m.Called(ctx, diaryID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadPhotosResult), args.Error(1)
}

func (m *MockDiaryService) PhotoURLs(ctx context.Context, diaryID uuid.UUID) (map[string]string, error) {
	args := m.Called(ctx, diaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockDiaryService) DeletePhoto(ctx context.Context, diaryID, photoID uuid.UUID) error {
	args := m.Called(ctx, diaryID, photoID)
	return args.Error(0)
}
