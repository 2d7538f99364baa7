package repositories

import (
	"errors"
	"time"

	"contacts_backend/internal/models"
	"contacts_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ContactFilter refines a search. Key matches any of name/lastname/email;
// the remaining fields are optional exact-match filters.
type ContactFilter struct {
	Key      string
	Name     string
	Lastname string
	Email    string
}

// ContactRepository owns query/mutation of a user's contact set. All
// operations are scoped to the supplied user and report absence as
// (nil, nil) rather than an error.
type ContactRepository interface {
	List(db *gorm.DB, user *models.User, offset, limit int) ([]models.Contact, error)
	Get(db *gorm.DB, user *models.User, id string) (*models.Contact, error)
	Create(db *gorm.DB, user *models.User, contact *models.Contact) error
	Patch(db *gorm.DB, user *models.User, id string, patch *dto.ContactPatch) (*models.Contact, error)
	Delete(db *gorm.DB, user *models.User, id string) (*models.Contact, error)
	Search(db *gorm.DB, user *models.User, filter ContactFilter) ([]models.Contact, error)
	UpcomingBirthdays(db *gorm.DB, user *models.User, today time.Time) ([]models.Contact, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) List(db *gorm.DB, user *models.User, offset, limit int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.Where("user_id = ?", user.ID).Offset(offset).Limit(limit).Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepositoryImpl) Get(db *gorm.DB, user *models.User, id string) (*models.Contact, error) {
	var contact models.Contact
	err := db.Where("user_id = ? AND id = ?", user.ID, id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, user *models.User, contact *models.Contact) error {
	contact.UserID = user.ID
	return db.Create(contact).Error
}

// Patch applies a sparse patch: only fields present in the request are
// written, the rest keep their stored values.
func (r *ContactRepositoryImpl) Patch(db *gorm.DB, user *models.User, id string, patch *dto.ContactPatch) (*models.Contact, error) {
	contact, err := r.Get(db, user, id)
	if err != nil || contact == nil {
		return nil, err
	}

	if patch.Name != nil {
		contact.Name = *patch.Name
	}
	if patch.Lastname != nil {
		contact.Lastname = *patch.Lastname
	}
	if patch.Email != nil {
		contact.Email = *patch.Email
	}
	if patch.Phone != nil {
		contact.Phone = *patch.Phone
	}
	if patch.Age != nil {
		contact.Age = *patch.Age
	}
	if patch.Description != nil {
		contact.Description = *patch.Description
	}
	if patch.Birthday.Set {
		if patch.Birthday.Value == nil {
			// Explicit null clears the stored date
			contact.Birthday = nil
		} else {
			t := patch.Birthday.Value.Time
			contact.Birthday = &t
		}
	}

	if err := db.Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes and returns the contact, or (nil, nil) when no row matched.
func (r *ContactRepositoryImpl) Delete(db *gorm.DB, user *models.User, id string) (*models.Contact, error) {
	contact, err := r.Get(db, user, id)
	if err != nil || contact == nil {
		return nil, err
	}
	if err := db.Delete(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (r *ContactRepositoryImpl) Search(db *gorm.DB, user *models.User, filter ContactFilter) ([]models.Contact, error) {
	q := db.Where("user_id = ?", user.ID)

	if filter.Key != "" {
		q = q.Where(
			db.Where("name = ?", filter.Key).
				Or("lastname = ?", filter.Key).
				Or("email = ?", filter.Key),
		)
	}
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}
	if filter.Lastname != "" {
		q = q.Where("lastname = ?", filter.Lastname)
	}
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}

	var contacts []models.Contact
	err := q.Find(&contacts).Error
	return contacts, err
}

// UpcomingBirthdays returns contacts whose birthday falls inside the 7-day
// window starting on the most recent Monday on/before today. The match
// compares month and day-of-month against the window's day range only:
// the month must equal today's month and the day must lie inside
// [weekStart.Day(), weekEnd.Day()]. When the week spans a month boundary
// that day range is empty past the rollover, so such contacts never match.
func (r *ContactRepositoryImpl) UpcomingBirthdays(db *gorm.DB, user *models.User, today time.Time) ([]models.Contact, error) {
	var contacts []models.Contact
	err := db.Where("user_id = ? AND birthday IS NOT NULL", user.ID).Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	// Monday = 0 ... Sunday = 6
	weekday := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -weekday)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var matching []models.Contact
	for _, contact := range contacts {
		bd := contact.Birthday
		if bd.Month() != today.Month() {
			continue
		}
		if bd.Day() >= weekStart.Day() && bd.Day() <= weekEnd.Day() {
			matching = append(matching, contact)
		}
	}
	return matching, nil
}
