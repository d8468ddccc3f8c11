package repositories

import (
	"fmt"

	"carvio/internal/models"

	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(doc *models.VerificationDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) GetByIDAndCompany(id, companyID uint) (*models.VerificationDocument, error) {
	var doc models.VerificationDocument
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (r *documentRepository) ListByCompany(companyID uint) ([]models.VerificationDocument, error) {
	var docs []models.VerificationDocument
	if err := r.db.Where("company_id = ?", companyID).Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (r *documentRepository) Update(doc *models.VerificationDocument) error {
	if err := r.db.Save(doc).Error; err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (r *documentRepository) Delete(id, companyID uint) error {
	result := r.db.Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.VerificationDocument{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
