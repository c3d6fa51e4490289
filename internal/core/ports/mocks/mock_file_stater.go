package mocks

import (
	reflect "reflect"
	time "time"

	gomock "go.uber.org/mock/gomock"
)

// MockFileStater is a mock of FileStater interface.
type MockFileStater struct {
	ctrl     *gomock.Controller
	recorder *MockFileStaterMockRecorder
	isgomock struct{}
}

// MockFileStaterMockRecorder is the mock recorder for MockFileStater.
type MockFileStaterMockRecorder struct {
	mock *MockFileStater
}

// NewMockFileStater creates a new mock instance.
func NewMockFileStater(ctrl *gomock.Controller) *MockFileStater {
	mock := &MockFileStater{ctrl: ctrl}
	mock.recorder = &MockFileStaterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockFileStater) EXPECT() *MockFileStaterMockRecorder {
	return m.recorder
}

// ModTime mocks base method.
func (m *MockFileStater) ModTime(path string) (time.Time, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ModTime", path)
	ret0, _ := ret[0].(time.Time)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ModTime indicates an expected call of ModTime.
func (mr *MockFileStaterMockRecorder) ModTime(path any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ModTime", reflect.TypeOf((*MockFileStater)(nil).ModTime), path)
}
