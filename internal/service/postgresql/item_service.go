package service

import (
	"errors"
	"time"

	entity "campusx/internal/domain"
	repo "campusx/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrNotItemOwner = errors.New("you are not the owner of this item")
	ErrItemLocked   = errors.New("item has an open exchange and cannot be modified")
)

type ItemWithImages struct {
	Item   *entity.Item       `json:"item"`
	Images []entity.ItemImage `json:"images"`
}

type ItemService struct {
	itemRepo repo.ItemRepository
}

func NewItemService(itemRepo repo.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

func (s *ItemService) CreateItem(ownerID uuid.UUID, input entity.CreateItemInput, imageURLs []string) (*ItemWithImages, error) {
	item := &entity.Item{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Condition:   input.Condition,
		Status:      entity.ItemAvailable,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.itemRepo.CreateItem(item); err != nil {
		return nil, err
	}

	var images []entity.ItemImage
	for _, url := range imageURLs {
		img := entity.ItemImage{
			ID:        uuid.New(),
			ItemID:    item.ID,
			ImageURL:  url,
			CreatedAt: time.Now(),
		}
		if err := s.itemRepo.CreateItemImage(&img); err != nil {
			return &ItemWithImages{Item: item, Images: images}, err
		}
		images = append(images, img)
	}
	return &ItemWithImages{Item: item, Images: images}, nil
}

func (s *ItemService) GetItem(itemID uuid.UUID) (*ItemWithImages, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status == entity.ItemDeleted || item.Status == entity.ItemHidden {
		return nil, ErrItemNotFound
	}
	images, err := s.itemRepo.GetImages(itemID)
	if err != nil {
		return nil, err
	}
	return &ItemWithImages{Item: item, Images: images}, nil
}

func (s *ItemService) Browse(filter entity.ItemFilter) ([]entity.Item, error) {
	return s.itemRepo.List(filter)
}

func (s *ItemService) ListByOwner(ownerID uuid.UUID) ([]entity.Item, error) {
	return s.itemRepo.GetByOwnerID(ownerID)
}

func (s *ItemService) UpdateItem(callerID, itemID uuid.UUID, input entity.UpdateItemInput) (*entity.Item, error) {
	item, err := s.loadOwned(callerID, itemID)
	if err != nil {
		return nil, err
	}
	// items tied up in an exchange stay frozen until it resolves
	if item.Status == entity.ItemPending {
		return nil, ErrItemLocked
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Condition != "" {
		item.Condition = input.Condition
	}
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) DeleteItem(callerID, itemID uuid.UUID) error {
	item, err := s.loadOwned(callerID, itemID)
	if err != nil {
		return err
	}
	if item.Status == entity.ItemPending {
		return ErrItemLocked
	}
	return s.itemRepo.UpdateStatus(itemID, entity.ItemDeleted)
}

func (s *ItemService) loadOwned(callerID, itemID uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status == entity.ItemDeleted {
		return nil, ErrItemNotFound
	}
	if item.OwnerID != callerID {
		return nil, ErrNotItemOwner
	}
	return item, nil
}
