package mocks

import (
	reflect "reflect"

	domain "go.trai.ch/spell/internal/core/domain"
	gomock "go.uber.org/mock/gomock"
)

// MockJournalStore is a mock of JournalStore interface.
type MockJournalStore struct {
	ctrl     *gomock.Controller
	recorder *MockJournalStoreMockRecorder
	isgomock struct{}
}

// MockJournalStoreMockRecorder is the mock recorder for MockJournalStore.
type MockJournalStoreMockRecorder struct {
	mock *MockJournalStore
}

// NewMockJournalStore creates a new mock instance.
func NewMockJournalStore(ctrl *gomock.Controller) *MockJournalStore {
	mock := &MockJournalStore{ctrl: ctrl}
	mock.recorder = &MockJournalStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockJournalStore) EXPECT() *MockJournalStoreMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockJournalStore) Get(taskName string) ([]domain.RunRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", taskName)
	ret0, _ := ret[0].([]domain.RunRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockJournalStoreMockRecorder) Get(taskName any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockJournalStore)(nil).Get), taskName)
}

// Put mocks base method.
func (m *MockJournalStore) Put(rec domain.RunRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Put", rec)
	ret0, _ := ret[0].(error)
	return ret0
}

// Put indicates an expected call of Put.
func (mr *MockJournalStoreMockRecorder) Put(rec any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Put", reflect.TypeOf((*MockJournalStore)(nil).Put), rec)
}
