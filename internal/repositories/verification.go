package repositories

import (
	"errors"

	"placement/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository-level errors. Services translate these into the
// application error taxonomy.
var (
	ErrRecordNotFound  = errors.New("verification record not found")
	ErrDuplicateRecord = errors.New("verification record already exists for item")
	ErrVersionConflict = errors.New("verification record version conflict")
)

// ListFilter narrows record listings. Empty fields match everything.
type ListFilter struct {
	Status   string
	ItemType string
}

type VerificationRepository interface {
	Create(record *models.VerificationRecord, event *models.VerificationEvent) error
	FindByID(id uint) (*models.VerificationRecord, error)
	FindByItem(itemType string, itemID uint) (*models.VerificationRecord, error)
	FindEvents(recordID uint) ([]models.VerificationEvent, error)
	// UpdateWithVersion applies updates only if the stored version still
	// equals expectedVersion, and appends the audit event in the same
	// transaction. Returns ErrVersionConflict when another writer won.
	UpdateWithVersion(recordID uint, expectedVersion uint64, updates map[string]interface{}, event *models.VerificationEvent) error
	CountPending(ownerIDs []uint) (int64, error)
	ListByOwners(ownerIDs []uint, filter ListFilter, limit, offset int) ([]models.VerificationRecord, int64, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(record *models.VerificationRecord, event *models.VerificationEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateRecord
			}
			return err
		}
		event.RecordID = record.ID
		return tx.Create(event).Error
	})
}

func (r *verificationRepository) FindByID(id uint) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *verificationRepository) FindByItem(itemType string, itemID uint) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.Where("item_type = ? AND item_id = ?", itemType, itemID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *verificationRepository) FindEvents(recordID uint) ([]models.VerificationEvent, error) {
	var events []models.VerificationEvent
	err := r.db.Where("record_id = ?", recordID).Order("id ASC").Find(&events).Error
	return events, err
}

func (r *verificationRepository) UpdateWithVersion(recordID uint, expectedVersion uint64, updates map[string]interface{}, event *models.VerificationEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates["version"] = expectedVersion + 1

		res := tx.Model(&models.VerificationRecord{}).
			Where("id = ? AND version = ?", recordID, expectedVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the record is gone or another actor advanced the
			// version first. Distinguish so callers can report precisely.
			var count int64
			if err := tx.Model(&models.VerificationRecord{}).Where("id = ?", recordID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrRecordNotFound
			}
			return ErrVersionConflict
		}

		event.RecordID = recordID
		return tx.Create(event).Error
	})
}

func (r *verificationRepository) CountPending(ownerIDs []uint) (int64, error) {
	query := r.db.Model(&models.VerificationRecord{}).Where("status = ?", models.StatusPending)
	if ownerIDs != nil {
		if len(ownerIDs) == 0 {
			return 0, nil
		}
		query = query.Where("owner_id IN ?", ownerIDs)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *verificationRepository) ListByOwners(ownerIDs []uint, filter ListFilter, limit, offset int) ([]models.VerificationRecord, int64, error) {
	if ownerIDs != nil && len(ownerIDs) == 0 {
		return []models.VerificationRecord{}, 0, nil
	}

	query := r.db.Model(&models.VerificationRecord{})
	if ownerIDs != nil {
		query = query.Where("owner_id IN ?", ownerIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ItemType != "" {
		query = query.Where("item_type = ?", filter.ItemType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.VerificationRecord
	// Newest submission first; id breaks timestamp ties deterministically.
	err := query.Order("submitted_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// isUniqueViolation detects a Postgres unique-constraint violation. The
// postgres driver is pgx-backed, so the raw error is *pgconn.PgError;
// gorm's TranslateError also maps it to ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
