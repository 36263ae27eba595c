// Package mocks provides generated mock implementations for testing.
//
// Mocks are generated with go.uber.org/mock (gomock). To regenerate after
// interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	repo := mocks.NewMockOrderRepository(ctrl)
//	repo.EXPECT().Get(gomock.Any(), "u1", "o1").Return(order, nil)
package mocks

// Generate mock for OrderRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=order_repository_mock.go github.com/order-wizard/ow-api/internal/ports OrderRepository
