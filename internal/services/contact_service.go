package services

import (
	"time"

	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	List(db *gorm.DB, user *models.User, offset, limit int) ([]dto.ContactResponse, error)
	Get(db *gorm.DB, user *models.User, id string) (*dto.ContactResponse, error)
	Create(db *gorm.DB, user *models.User, req *dto.ContactCreateRequest) (*dto.ContactResponse, error)
	Patch(db *gorm.DB, user *models.User, id string, patch *dto.ContactPatch) (*dto.ContactResponse, error)
	Delete(db *gorm.DB, user *models.User, id string) (*dto.ContactResponse, error)
	Search(db *gorm.DB, user *models.User, filter repositories.ContactFilter) ([]dto.ContactResponse, error)
	UpcomingBirthdays(db *gorm.DB, user *models.User) ([]dto.ContactResponse, error)
}

type ContactServiceImpl struct {
	contactRepo repositories.ContactRepository
}

func NewContactService(contactRepo repositories.ContactRepository) ContactService {
	return &ContactServiceImpl{contactRepo: contactRepo}
}

func (s *ContactServiceImpl) List(db *gorm.DB, user *models.User, offset, limit int) ([]dto.ContactResponse, error) {
	contacts, err := s.contactRepo.List(db, user, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewContactResponseList(contacts), nil
}

func (s *ContactServiceImpl) Get(db *gorm.DB, user *models.User, id string) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.Get(db, user, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if contact == nil {
		return nil, apperrors.NewNotFoundError("contacts", "Contact not found")
	}
	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactServiceImpl) Create(db *gorm.DB, user *models.User, req *dto.ContactCreateRequest) (*dto.ContactResponse, error) {
	contact := &models.Contact{
		Name:        req.Name,
		Lastname:    req.Lastname,
		Email:       req.Email,
		Phone:       req.Phone,
		Age:         req.Age,
		Description: req.Description,
	}
	if req.Birthday != nil {
		birthday := req.Birthday.Time
		contact.Birthday = &birthday
	}

	if err := s.contactRepo.Create(db, user, contact); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactServiceImpl) Patch(db *gorm.DB, user *models.User, id string, patch *dto.ContactPatch) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.Patch(db, user, id, patch)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if contact == nil {
		return nil, apperrors.NewNotFoundError("contacts", "Contact not found")
	}
	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactServiceImpl) Delete(db *gorm.DB, user *models.User, id string) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.Delete(db, user, id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if contact == nil {
		return nil, apperrors.NewNotFoundError("contacts", "Contact not found")
	}
	resp := dto.NewContactResponse(contact)
	return &resp, nil
}

func (s *ContactServiceImpl) Search(db *gorm.DB, user *models.User, filter repositories.ContactFilter) ([]dto.ContactResponse, error) {
	contacts, err := s.contactRepo.Search(db, user, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewContactResponseList(contacts), nil
}

func (s *ContactServiceImpl) UpcomingBirthdays(db *gorm.DB, user *models.User) ([]dto.ContactResponse, error) {
	contacts, err := s.contactRepo.UpcomingBirthdays(db, user, time.Now())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewContactResponseList(contacts), nil
}
