// Package verification reviews a rental company's compliance documents and
// evaluates the gating rule that can promote the company automatically.
package verification

import (
	"context"
	"fmt"
	"log"
	"time"

	"carvio/internal/models"
	"carvio/internal/repositories"
	"carvio/internal/services/access"
	"carvio/internal/services/audit"
	"carvio/internal/services/company"
)

type Service struct {
	documents repositories.DocumentRepository
	companies *company.Service
	auditLog  audit.Logger
}

func NewService(documents repositories.DocumentRepository, companies *company.Service, auditLog audit.Logger) *Service {
	if documents == nil {
		panic("document repository is required")
	}
	if companies == nil {
		panic("company service is required")
	}
	if auditLog == nil {
		panic("audit logger is required")
	}
	return &Service{
		documents: documents,
		companies: companies,
		auditLog:  auditLog,
	}
}

// SubmitDocument files a new compliance document for the company in PENDING
// status. Storage of the file itself happens upstream; only the reference
// lands here.
func (s *Service) SubmitDocument(ctx context.Context, companyID uint, docType models.DocumentType, fileURL string) (*models.VerificationDocument, error) {
	if !docType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDocumentType, docType)
	}
	if _, err := s.companies.Get(ctx, companyID); err != nil {
		return nil, err
	}

	doc := &models.VerificationDocument{
		CompanyID: companyID,
		Type:      docType,
		FileURL:   fileURL,
		Status:    models.DocumentStatusPending,
	}
	if err := s.documents.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns all documents filed for the company.
func (s *Service) ListDocuments(ctx context.Context, companyID uint) ([]models.VerificationDocument, error) {
	return s.documents.ListByCompany(companyID)
}

// ReviewDocument applies an administrator's decision to one document. The
// document mutation and the gating evaluation are two explicit steps: the
// review commits first and is audited on its own, then an approval triggers
// the gating rule for the owning company.
func (s *Service) ReviewDocument(ctx context.Context, in ReviewInput, actor access.Actor) (*models.VerificationDocument, error) {
	if err := access.Authorize(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	if in.Status == models.DocumentStatusRejected && in.RejectionReason == "" {
		return nil, ErrMissingReason
	}

	doc, err := s.documents.GetByIDAndCompany(in.DocumentID, in.CompanyID)
	if err != nil {
		return nil, err
	}

	from := doc.Status
	doc.Status = in.Status
	doc.VerifiedAt = nil
	doc.VerifiedByID = nil
	doc.RejectionReason = ""
	switch in.Status {
	case models.DocumentStatusApproved:
		now := time.Now().UTC()
		doc.VerifiedAt = &now
		doc.VerifiedByID = &actor.ID
	case models.DocumentStatusRejected:
		doc.RejectionReason = in.RejectionReason
	}
	if in.AdminNotes != "" {
		doc.AdminNotes = in.AdminNotes
	}

	if err := s.documents.Update(doc); err != nil {
		return nil, err
	}

	audit.MustRecord(ctx, s.auditLog, actor.ID, models.ResourceDocument, doc.ID, models.DocumentReviewDetail{
		DocumentType:    doc.Type,
		FromStatus:      from,
		ToStatus:        doc.Status,
		RejectionReason: doc.RejectionReason,
		AdminNotes:      in.AdminNotes,
	})

	if doc.Status == models.DocumentStatusApproved {
		if err := s.evaluateGating(ctx, doc.CompanyID, actor); err != nil {
			// The review itself has committed; a failed promotion attempt is
			// retried by the next gating evaluation.
			log.Printf("gating evaluation failed for company %d: %v", doc.CompanyID, err)
		}
	}

	return doc, nil
}

// DeleteDocument removes a document. Deleting a document never re-evaluates
// or downgrades the owning company's verification status, even when the
// deleted document was one of the documents that satisfied the gating rule.
func (s *Service) DeleteDocument(ctx context.Context, documentID, companyID uint, actor access.Actor) error {
	if err := access.Authorize(actor, models.RoleAdmin); err != nil {
		return err
	}

	doc, err := s.documents.GetByIDAndCompany(documentID, companyID)
	if err != nil {
		return err
	}

	if err := s.documents.Delete(documentID, companyID); err != nil {
		return err
	}

	audit.MustRecord(ctx, s.auditLog, actor.ID, models.ResourceDocument, doc.ID, models.DocumentDeleteDetail{
		DocumentType: doc.Type,
		Status:       doc.Status,
	})

	return nil
}

// evaluateGating promotes the company when every required document type has
// at least one approved document. The promotion call is idempotent, so two
// concurrent evaluations cannot double-promote or double-log.
func (s *Service) evaluateGating(ctx context.Context, companyID uint, actor access.Actor) error {
	docs, err := s.documents.ListByCompany(companyID)
	if err != nil {
		return err
	}
	if !requiredTypesSatisfied(docs) {
		return nil
	}

	_, err = s.companies.PromoteVerified(ctx, companyID, access.SystemActor(actor.ID))
	return err
}

// requiredTypesSatisfied checks that each required type has at least one
// approved document. Several approvals of one type never stand in for a
// missing type.
func requiredTypesSatisfied(docs []models.VerificationDocument) bool {
	approved := make(map[models.DocumentType]bool)
	for _, doc := range docs {
		if doc.Status == models.DocumentStatusApproved {
			approved[doc.Type] = true
		}
	}
	for _, required := range models.RequiredDocumentTypes {
		if !approved[required] {
			return false
		}
	}
	return true
}
