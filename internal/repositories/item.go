package repositories

import (
	"errors"
	"fmt"

	"placement/internal/models"

	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("item not found")

// ItemRepository owns the five artifact tables. The workflow engine only
// ever calls Exists; the richer accessors serve the item endpoints.
type ItemRepository interface {
	Create(item interface{}) error
	// Exists returns the owner id of the item, or ErrItemNotFound.
	Exists(itemType string, itemID uint) (uint, error)
	Get(itemType string, itemID uint) (interface{}, error)
	ListByOwner(itemType string, ownerID uint) (interface{}, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item interface{}) error {
	return r.db.Create(item).Error
}

func (r *itemRepository) Exists(itemType string, itemID uint) (uint, error) {
	model, err := modelFor(itemType)
	if err != nil {
		return 0, err
	}

	var ownerID uint
	res := r.db.Model(model).Where("id = ?", itemID).Limit(1).Pluck("owner_id", &ownerID)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrItemNotFound
	}
	return ownerID, nil
}

func (r *itemRepository) Get(itemType string, itemID uint) (interface{}, error) {
	item, err := modelFor(itemType)
	if err != nil {
		return nil, err
	}

	err = r.db.First(item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepository) ListByOwner(itemType string, ownerID uint) (interface{}, error) {
	switch itemType {
	case models.ItemQualification:
		var items []models.Qualification
		err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&items).Error
		return items, err
	case models.ItemSession:
		var items []models.TeachingSession
		err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&items).Error
		return items, err
	case models.ItemActivity:
		var items []models.Activity
		err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&items).Error
		return items, err
	case models.ItemCompetencyClaim:
		var items []models.CompetencyClaim
		err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&items).Error
		return items, err
	case models.ItemProfileDocument:
		var items []models.ProfileDocument
		err := r.db.Where("owner_id = ?", ownerID).Order("id DESC").Find(&items).Error
		return items, err
	default:
		return nil, fmt.Errorf("unknown item type %q", itemType)
	}
}

func modelFor(itemType string) (interface{}, error) {
	switch itemType {
	case models.ItemQualification:
		return &models.Qualification{}, nil
	case models.ItemSession:
		return &models.TeachingSession{}, nil
	case models.ItemActivity:
		return &models.Activity{}, nil
	case models.ItemCompetencyClaim:
		return &models.CompetencyClaim{}, nil
	case models.ItemProfileDocument:
		return &models.ProfileDocument{}, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", itemType)
	}
}
