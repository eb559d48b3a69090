package wlst

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSession mocks the DomainSession interface
type MockSession struct {
	mock.Mock
}

// ReadTemplate mocks the ReadTemplate method
func (m *MockSession) ReadTemplate(ctx context.Context, templatePath string) error {
	args := m.Called(ctx, templatePath)
	return args.Error(0)
}

// SetOption mocks the SetOption method
func (m *MockSession) SetOption(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

// WriteDomain mocks the WriteDomain method
func (m *MockSession) WriteDomain(ctx context.Context, domainHome string) error {
	args := m.Called(ctx, domainHome)
	return args.Error(0)
}

// CloseTemplate mocks the CloseTemplate method
func (m *MockSession) CloseTemplate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ReadDomain mocks the ReadDomain method
func (m *MockSession) ReadDomain(ctx context.Context, domainHome string) error {
	args := m.Called(ctx, domainHome)
	return args.Error(0)
}

// UpdateDomain mocks the UpdateDomain method
func (m *MockSession) UpdateDomain(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CloseDomain mocks the CloseDomain method
func (m *MockSession) CloseDomain(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Get mocks the Get method
func (m *MockSession) Get(ctx context.Context, address, attribute string) (any, error) {
	args := m.Called(ctx, address, attribute)
	return args.Get(0), args.Error(1)
}

// Set mocks the Set method
func (m *MockSession) Set(ctx context.Context, address, attribute string, value any) error {
	args := m.Called(ctx, address, attribute, value)
	return args.Error(0)
}

// List mocks the List method
func (m *MockSession) List(ctx context.Context, parent, kind string) ([]string, error) {
	args := m.Called(ctx, parent, kind)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

// Create mocks the Create method
func (m *MockSession) Create(ctx context.Context, parent, kind, name string) (string, error) {
	args := m.Called(ctx, parent, kind, name)
	return args.String(0), args.Error(1)
}

// CreateProvider mocks the CreateProvider method
func (m *MockSession) CreateProvider(ctx context.Context, realmPath, name, providerType, baseType string) (string, error) {
	args := m.Called(ctx, realmPath, name, providerType, baseType)
	return args.String(0), args.Error(1)
}

// SetProviderOrder mocks the SetProviderOrder method
func (m *MockSession) SetProviderOrder(ctx context.Context, realmPath, baseType string, names []string) error {
	args := m.Called(ctx, realmPath, baseType, names)
	return args.Error(0)
}
