package impl

import (
	"context"
	"testing"

	"bento/internal/domain/entity"
	mockRepo "bento/internal/mocks/repository"
	"bento/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeviceService_RegisterDevice_NewDevice(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	info := &usecase.DeviceInfo{
		FCMToken: "fcm-token-1",
		DeviceID: "device-1",
		Platform: "ios",
	}

	deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{}, nil)
	deviceRepo.EXPECT().
		CreateDevice(ctx, mock.AnythingOfType("*entity.UserDevice")).
		Run(func(ctx context.Context, device *entity.UserDevice) {
			assert.Equal(t, userID, device.UserID)
			assert.True(t, device.IsActive)
			device.ID = uuid.New()
		}).
		Return(nil)

	device, err := svc.RegisterDevice(ctx, userID, info)

	require.NoError(t, err)
	require.NotNil(t, device)
	assert.Equal(t, info.FCMToken, device.FCMToken)
	assert.Equal(t, info.DeviceID, device.DeviceID)
}

func TestDeviceService_RegisterDevice_ExistingDeviceRefreshesToken(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.UserDevice{
		ID:       uuid.New(),
		UserID:   userID,
		DeviceID: "device-1",
		FCMToken: "stale-token",
		IsActive: true,
	}
	info := &usecase.DeviceInfo{
		FCMToken: "fresh-token",
		DeviceID: "device-1",
		Platform: "android",
	}

	deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return([]*entity.UserDevice{existing}, nil)
	deviceRepo.EXPECT().UpdateFCMToken(ctx, existing.ID, info.FCMToken).Return(nil)

	device, err := svc.RegisterDevice(ctx, userID, info)

	require.NoError(t, err)
	require.NotNil(t, device)
	assert.Equal(t, existing.ID, device.ID)
	assert.Equal(t, "fresh-token", device.FCMToken)
	deviceRepo.AssertNotCalled(t, "CreateDevice", mock.Anything, mock.Anything)
}

func TestDeviceService_RegisterDevice_FindError(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	info := &usecase.DeviceInfo{FCMToken: "fcm-token-1", DeviceID: "device-1", Platform: "web"}

	deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return(nil, errors.New("connection refused"))

	device, err := svc.RegisterDevice(ctx, userID, info)

	assert.Error(t, err)
	assert.Nil(t, device)
}

func TestDeviceService_GetUserDevices_Success(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	svc := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	stored := []*entity.UserDevice{
		{ID: uuid.New(), UserID: userID, DeviceID: "device-1", IsActive: true},
		{ID: uuid.New(), UserID: userID, DeviceID: "device-2", IsActive: true},
	}

	deviceRepo.EXPECT().FindDevicesByUser(ctx, userID).Return(stored, nil)

	devices, err := svc.GetUserDevices(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, stored, devices)
}
