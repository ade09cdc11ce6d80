package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mapleleaf/taxprep_backend/internal/apperrors"
	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	portssvc "github.com/mapleleaf/taxprep_backend/internal/core/ports/services"
	"github.com/mapleleaf/taxprep_backend/internal/core/services"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo        *MockDocumentRepository
	mockJobRepo        *MockJobEnqueuer
	mockEngagementRepo *MockEngagementRepository
	store              *memStore
	service            portssvc.DocumentSvcFacade
	actor              domain.Actor
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockJobRepo = new(MockJobEnqueuer)
	suite.mockEngagementRepo = new(MockEngagementRepository)
	suite.store = newMemStore()
	suite.service = services.NewDocumentService(suite.mockDocRepo, suite.mockJobRepo, suite.mockEngagementRepo, suite.store)
	suite.actor = domain.Actor{UserID: "u1", TenantID: "t1", Name: "Sarah Chen", Role: domain.RoleJunior}
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_Success() {
	ctx := context.Background()
	data := []byte("Date,Vendor,Amount\n2025-02-01,Tim Hortons,12.45\n")

	suite.mockEngagementRepo.On("FindEngagementByID", ctx, "e1").
		Return(&domain.Engagement{EngagementID: "e1", ClientID: "c1", Year: 2024}, nil).Once()

	var savedDoc domain.Document
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.Document) bool {
		savedDoc = doc
		return doc.EngagementID == "e1" &&
			doc.Filename == "january.csv" &&
			doc.MimeType == "text/csv" &&
			doc.Status == domain.DocumentUploaded &&
			doc.DocumentID != ""
	})).Return(nil).Once()

	suite.mockJobRepo.On("EnqueueJob", ctx, mock.MatchedBy(func(job domain.Job) bool {
		return job.Type == domain.JobProcessDocument &&
			job.Status == domain.JobPending &&
			job.Payload.DocumentID == savedDoc.DocumentID &&
			job.JobID != ""
	})).Return(nil).Once()

	doc, err := suite.service.UploadDocument(ctx, suite.actor, "e1", "january.csv", "text/csv", data)

	suite.Require().NoError(err)
	suite.Require().NotNil(doc)
	suite.Equal(domain.DocumentUploaded, doc.Status)
	suite.Equal(data, suite.store.files[doc.StoragePath])
	suite.mockDocRepo.AssertExpectations(suite.T())
	suite.mockJobRepo.AssertExpectations(suite.T())
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_DefaultsMimeType() {
	ctx := context.Background()
	suite.mockEngagementRepo.On("FindEngagementByID", ctx, "e1").
		Return(&domain.Engagement{EngagementID: "e1"}, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.Document) bool {
		return doc.MimeType == "application/octet-stream"
	})).Return(nil).Once()
	suite.mockJobRepo.On("EnqueueJob", ctx, mock.AnythingOfType("domain.Job")).Return(nil).Once()

	_, err := suite.service.UploadDocument(ctx, suite.actor, "e1", "receipt.pdf", "", []byte{0x25, 0x50})

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_MissingFields() {
	ctx := context.Background()

	cases := []struct {
		name         string
		engagementID string
		filename     string
		data         []byte
	}{
		{"empty engagement", "", "a.csv", []byte("x")},
		{"empty filename", "e1", "", []byte("x")},
		{"empty content", "e1", "a.csv", nil},
	}
	for _, tc := range cases {
		_, err := suite.service.UploadDocument(ctx, suite.actor, tc.engagementID, tc.filename, "text/csv", tc.data)
		suite.Require().ErrorIs(err, apperrors.ErrValidation, tc.name)
	}

	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "FindEngagementByID", mock.Anything, mock.Anything)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
	suite.mockJobRepo.AssertNotCalled(suite.T(), "EnqueueJob", mock.Anything, mock.Anything)
	suite.Empty(suite.store.files)
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_EngagementNotFound() {
	ctx := context.Background()
	suite.mockEngagementRepo.On("FindEngagementByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UploadDocument(ctx, suite.actor, "missing", "a.csv", "text/csv", []byte("x"))

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything)
	suite.Empty(suite.store.files)
}

func (suite *DocumentServiceTestSuite) TestUploadDocument_EnqueueFailure() {
	ctx := context.Background()
	suite.mockEngagementRepo.On("FindEngagementByID", ctx, "e1").
		Return(&domain.Engagement{EngagementID: "e1"}, nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.Document")).Return(nil).Once()
	suite.mockJobRepo.On("EnqueueJob", ctx, mock.AnythingOfType("domain.Job")).
		Return(apperrors.ErrInternal).Once()

	_, err := suite.service.UploadDocument(ctx, suite.actor, "e1", "a.csv", "text/csv", []byte("x"))

	suite.Require().ErrorIs(err, apperrors.ErrInternal)
}

func (suite *DocumentServiceTestSuite) TestListDocuments() {
	ctx := context.Background()
	docs := []domain.Document{
		{DocumentID: "d2", EngagementID: "e1", Filename: "feb.csv"},
		{DocumentID: "d1", EngagementID: "e1", Filename: "jan.csv"},
	}
	suite.mockDocRepo.On("ListDocumentsByEngagement", ctx, "e1").Return(docs, nil).Once()

	got, err := suite.service.ListDocuments(ctx, "e1")

	suite.Require().NoError(err)
	suite.Equal(docs, got)
}

func (suite *DocumentServiceTestSuite) TestReprocessDocument_Enqueues() {
	ctx := context.Background()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "d1").
		Return(&domain.Document{DocumentID: "d1", Status: domain.DocumentFailed}, nil).Once()
	suite.mockJobRepo.On("EnqueueJob", ctx, mock.MatchedBy(func(job domain.Job) bool {
		return job.Type == domain.JobProcessDocument &&
			job.Status == domain.JobPending &&
			job.Payload.DocumentID == "d1"
	})).Return(nil).Once()

	err := suite.service.ReprocessDocument(ctx, suite.actor, "d1")

	suite.Require().NoError(err)
	suite.mockJobRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestReprocessDocument_NotFound() {
	ctx := context.Background()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "missing").
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ReprocessDocument(ctx, suite.actor, "missing")

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJobRepo.AssertNotCalled(suite.T(), "EnqueueJob", mock.Anything, mock.Anything)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
