// Package mocks holds gomock doubles of the ports in internal/core/ports.
// They follow the shape of the go:generate directives beside each port.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "go.trai.ch/spell/internal/core/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockContextLoader is a mock of ContextLoader interface.
type MockContextLoader struct {
	ctrl     *gomock.Controller
	recorder *MockContextLoaderMockRecorder
	isgomock struct{}
}

// MockContextLoaderMockRecorder is the mock recorder for MockContextLoader.
type MockContextLoaderMockRecorder struct {
	mock *MockContextLoader
}

// NewMockContextLoader creates a new mock instance.
func NewMockContextLoader(ctrl *gomock.Controller) *MockContextLoader {
	mock := &MockContextLoader{ctrl: ctrl}
	mock.recorder = &MockContextLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockContextLoader) EXPECT() *MockContextLoaderMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockContextLoader) Load(ctx context.Context, sources []domain.Source) (*domain.Node, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", ctx, sources)
	ret0, _ := ret[0].(*domain.Node)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockContextLoaderMockRecorder) Load(ctx, sources any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockContextLoader)(nil).Load), ctx, sources)
}
