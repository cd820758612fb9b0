package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stay/config"
	"stay/infras/otel/mocks"
	hotelMocks "stay/internal/domains/hotel/mocks"
	"stay/internal/domains/hotel/model"
	"stay/internal/domains/hotel/model/dto"
	"stay/internal/domains/hotel/service"
	cacheMocks "stay/shared/cache/mocks"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
)

func managerCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleManager)
}

func ownedHotel() model.Hotel {
	return model.Hotel{
		ID:        "hotel-1",
		Name:      "Grand Stay",
		Address:   "1 Seaside Road",
		Mobile:    "+628123456789",
		Email:     "frontdesk@grandstay.example",
		Status:    model.StatusAvailable,
		ManagerID: "manager-1",
	}
}

func TestHotelService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	req := dto.CreateHotelRequest{
		Name:    "Grand Stay",
		Address: "1 Seaside Road",
		Mobile:  "+628123456789",
		Email:   "frontdesk@grandstay.example",
	}

	t.Run("successful hotel creation", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, hotel model.Hotel) error {
				assert.Equal(t, req.Name, hotel.Name)
				assert.Equal(t, "manager-1", hotel.ManagerID)
				assert.Equal(t, model.StatusAvailable, hotel.Status)

				return nil
			})

		err := svc.Create(managerCtx("manager-1"), req)

		assert.NoError(t, err)
	})

	t.Run("insert error", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		err := svc.Create(managerCtx("manager-1"), req)

		assert.Error(t, err)
	})
}

func TestHotelService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	t.Run("hotel found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ownedHotel(), nil)

		res, err := svc.Get(context.Background(), "hotel-1")

		assert.NoError(t, err)
		assert.Equal(t, "hotel-1", res.ID)
		assert.Equal(t, "Grand Stay", res.Name)
	})

	t.Run("hotel not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, errors.New("database error"))

		_, err := svc.Get(context.Background(), "hotel-1")

		assert.Error(t, err)
	})
}

func TestHotelService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Hotel{ownedHotel()}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Hotels, 1)
}

func TestHotelService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	validReq := dto.UpdateHotelRequest{Status: model.StatusUnderMaintenance}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateHotelRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			ctx:  managerCtx("manager-1"),
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedHotel(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty update request",
			ctx:       managerCtx("manager-1"),
			req:       dto.UpdateHotelRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "hotel managed by someone else",
			ctx:  managerCtx("manager-2"),
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedHotel(), nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "update error",
			ctx:  managerCtx("manager-1"),
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedHotel(), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(tt.ctx, tt.req, "hotel-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHotelService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := hotelMocks.NewMockHotel(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("delete cascades to rooms and bookings", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ownedHotel(), nil)

		mockRepo.EXPECT().
			DeleteCascade(gomock.Any(), "hotel-1").
			Return(nil)

		err := svc.Delete(managerCtx("manager-1"), "hotel-1")

		assert.NoError(t, err)
	})

	t.Run("hotel managed by someone else", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ownedHotel(), nil)

		err := svc.Delete(managerCtx("manager-2"), "hotel-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("hotel does not exist", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Hotel{}, nil)

		err := svc.Delete(managerCtx("manager-1"), "missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("cascade delete error", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(ownedHotel(), nil)

		mockRepo.EXPECT().
			DeleteCascade(gomock.Any(), "hotel-1").
			Return(errors.New("database error"))

		err := svc.Delete(managerCtx("manager-1"), "hotel-1")

		assert.Error(t, err)
	})
}
