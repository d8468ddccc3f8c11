/*
Package verification provides compliance document review for rental
companies.

Documents are filed in PENDING status and reviewed by administrators:

	svc := verification.NewService(documentRepo, companyService, auditLogger)

	doc, err := svc.ReviewDocument(ctx, verification.ReviewInput{
	    DocumentID: docID,
	    CompanyID:  companyID,
	    Status:     models.DocumentStatusApproved,
	}, actor)

Approving a document triggers the gating rule: once every required document
type (business license, tax certificate, insurance certificate) has at least
one approved document, the owning company is promoted to APPROVED through the
company status service. The promotion is idempotent and is skipped entirely
for SUSPENDED or REJECTED companies.

Each review and each delete produces exactly one audit entry; a
gating-triggered promotion produces its own separate entry, tagged automatic.
*/
package verification
