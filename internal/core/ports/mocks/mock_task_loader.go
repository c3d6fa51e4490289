package mocks

import (
	reflect "reflect"

	domain "go.trai.ch/spell/internal/core/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockTaskLoader is a mock of TaskLoader interface.
type MockTaskLoader struct {
	ctrl     *gomock.Controller
	recorder *MockTaskLoaderMockRecorder
	isgomock struct{}
}

// MockTaskLoaderMockRecorder is the mock recorder for MockTaskLoader.
type MockTaskLoaderMockRecorder struct {
	mock *MockTaskLoader
}

// NewMockTaskLoader creates a new mock instance.
func NewMockTaskLoader(ctrl *gomock.Controller) *MockTaskLoader {
	mock := &MockTaskLoader{ctrl: ctrl}
	mock.recorder = &MockTaskLoaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTaskLoader) EXPECT() *MockTaskLoaderMockRecorder {
	return m.recorder
}

// Load mocks base method.
func (m *MockTaskLoader) Load(path string) (*domain.Registry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Load", path)
	ret0, _ := ret[0].(*domain.Registry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Load indicates an expected call of Load.
func (mr *MockTaskLoaderMockRecorder) Load(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Load", reflect.TypeOf((*MockTaskLoader)(nil).Load), path)
}
