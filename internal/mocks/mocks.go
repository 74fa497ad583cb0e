package mocks

import (
	"github.com/stretchr/testify/mock"

	"homespace/internal/models"
)

type NotifierMock struct {
	mock.Mock
}

func (m *NotifierMock) Notify(toast models.Toast) {
	m.Called(toast)
}

type SinkMock struct {
	mock.Mock
}

func (m *SinkMock) Save(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *SinkMock) Load() ([]byte, error) {
	args := m.Called()
	var data []byte
	if val := args.Get(0); val != nil {
		data = val.([]byte)
	}
	return data, args.Error(1)
}
