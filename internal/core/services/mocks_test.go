package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionDetail(ctx context.Context, engagementID string, state *domain.TransactionState) ([]domain.TransactionWithDetail, error) {
	args := m.Called(ctx, engagementID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionWithDetail), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionState(ctx context.Context, transactionID string, state domain.TransactionState, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, state, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) CreateSplit(ctx context.Context, children []domain.Transaction, classifications []domain.Classification) error {
	args := m.Called(ctx, children, classifications)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindLatestClassification(ctx context.Context, transactionID string) (*domain.Classification, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classification), args.Error(1)
}

func (m *MockTransactionRepository) SaveClassification(ctx context.Context, cls domain.Classification) error {
	args := m.Called(ctx, cls)
	return args.Error(0)
}

// MockAuditRepository is a mock type for the AuditWriter interface
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockDocumentRepository is a mock type for the DocumentRepositoryFacade interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByEngagement(ctx context.Context, engagementID string) ([]domain.Document, error) {
	args := m.Called(ctx, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus) error {
	args := m.Called(ctx, documentID, status)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveExtraction(ctx context.Context, extraction domain.Extraction) error {
	args := m.Called(ctx, extraction)
	return args.Error(0)
}

// MockJobEnqueuer is a mock type for the JobEnqueuer interface
type MockJobEnqueuer struct {
	mock.Mock
}

func (m *MockJobEnqueuer) EnqueueJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockEngagementRepository is a mock type for the EngagementRepositoryFacade interface
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockEngagementRepository) ListClientsByTenant(ctx context.Context, tenantID string) ([]domain.Client, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockEngagementRepository) FindEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error) {
	args := m.Called(ctx, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engagement), args.Error(1)
}

func (m *MockEngagementRepository) ListEngagementSummaries(ctx context.Context, clientID string) ([]domain.EngagementSummary, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EngagementSummary), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// memStore is an in-memory Storage for tests.
type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (s *memStore) Save(filename string, data []byte) (string, error) {
	s.files[filename] = data
	return filename, nil
}

func (s *memStore) Read(path string) ([]byte, error) {
	return s.files[path], nil
}

func (s *memStore) Exists(path string) bool {
	_, ok := s.files[path]
	return ok
}

// MockVendorRuleRepository is a mock type for the VendorRuleRepositoryFacade interface
type MockVendorRuleRepository struct {
	mock.Mock
}

func (m *MockVendorRuleRepository) ListRulesByTenant(ctx context.Context, tenantID string) ([]domain.VendorRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VendorRule), args.Error(1)
}

func (m *MockVendorRuleRepository) SaveRule(ctx context.Context, rule domain.VendorRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}
