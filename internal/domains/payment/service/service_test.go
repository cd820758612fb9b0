package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stay/config"
	"stay/infras/otel/mocks"
	bookingMocks "stay/internal/domains/booking/mocks"
	bookingModel "stay/internal/domains/booking/model"
	paymentMocks "stay/internal/domains/payment/mocks"
	"stay/internal/domains/payment/model"
	"stay/internal/domains/payment/model/dto"
	"stay/internal/domains/payment/service"
	cacheMocks "stay/shared/cache/mocks"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
)

func guestCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)
}

func managerCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleManager)
}

func TestPaymentService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, nil)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	booking := bookingModel.Booking{
		ID:        "booking-1",
		RoomID:    "room-1",
		UserID:    "guest-1",
		ManagerID: "manager-1",
		IsActive:  true,
	}

	validReq := dto.CreatePaymentRequest{
		BookingID:     "booking-1",
		AmountPaid:    250.00,
		PaymentStatus: model.StatusPaid,
		PaymentMethod: model.MethodCreditCard,
		TransactionID: "txn-001",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreatePaymentRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful payment",
			ctx:  guestCtx("guest-1"),
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "manager records payment for own hotel booking",
			ctx:  managerCtx("manager-1"),
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking outside caller scope reports not found",
			ctx:  guestCtx("guest-2"),
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "booking does not exist",
			ctx:  guestCtx("guest-1"),
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "zero amount",
			ctx:  guestCtx("guest-1"),
			req: dto.CreatePaymentRequest{
				BookingID:     "booking-1",
				AmountPaid:    0,
				PaymentStatus: model.StatusPaid,
				PaymentMethod: model.MethodCash,
				TransactionID: "txn-002",
			},
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "duplicate transaction id",
			ctx:  guestCtx("guest-1"),
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "insert error",
			ctx:  guestCtx("guest-1"),
			req:  validReq,
			setupMock: func() {
				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(tt.ctx, tt.req)

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

func TestPaymentService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, nil)

	payment := model.Payment{
		ID:            "payment-1",
		BookingID:     "booking-1",
		UserID:        "guest-1",
		ManagerID:     "manager-1",
		AmountPaid:    250.00,
		PaymentStatus: model.StatusPaid,
		PaymentMethod: model.MethodCreditCard,
		TransactionID: "txn-001",
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
	}{
		{
			name: "guest sees own payment",
			ctx:  guestCtx("guest-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(payment, nil)
			},
			wantErr: false,
		},
		{
			name: "manager of the hotel sees the payment",
			ctx:  managerCtx("manager-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(payment, nil)
			},
			wantErr: false,
		},
		{
			name: "another guest gets not found",
			ctx:  guestCtx("guest-2"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(payment, nil)
			},
			wantErr: true,
		},
		{
			name: "missing payment gets not found",
			ctx:  guestCtx("guest-1"),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(tt.ctx, "payment-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 404, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, payment.ID, res.ID)
			}
		})
	}
}

func TestPaymentService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, nil)

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

	payments := []model.Payment{
		{
			ID:            "payment-1",
			BookingID:     "booking-1",
			UserID:        "guest-1",
			AmountPaid:    250.00,
			PaymentStatus: model.StatusPaid,
			PaymentMethod: model.MethodCreditCard,
			TransactionID: "txn-001",
		},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(payments, nil)

	res, err := svc.GetAll(guestCtx("guest-1"), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Payments, 1)
}

func TestPaymentService_GetAllScopesFilterToCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := paymentMocks.NewMockPayment(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockBookingRepo, cfg, mockCache, mockOtel, nil)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	tests := []struct {
		name       string
		ctx        context.Context
		wantClause string
		wantArg    string
		wantValue  string
	}{
		{
			name:       "manager queries are scoped to managed hotels",
			ctx:        managerCtx("manager-1"),
			wantClause: "hotels.manager_id = :scope_manager_id",
			wantArg:    "scope_manager_id",
			wantValue:  "manager-1",
		},
		{
			name:       "guest queries are scoped to own payments",
			ctx:        guestCtx("guest-1"),
			wantClause: "payments.user_id = :scope_user_id",
			wantArg:    "scope_user_id",
			wantValue:  "guest-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkScope := func(filter gDto.FilterGroup) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, tt.wantClause)
				assert.Equal(t, tt.wantValue, args[tt.wantArg])
			}

			mockRepo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
					checkScope(filter)

					return 0, nil
				})

			mockRepo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Payment, error) {
					checkScope(filter)

					return []model.Payment{}, nil
				})

			_, err := svc.GetAll(tt.ctx, gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

			assert.NoError(t, err)
		})
	}
}
