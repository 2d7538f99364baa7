package repositories_test

import (
	"testing"
	"time"

	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactList_ScopedAndPaginated(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")
	other := helpers.CreateUser(t, db, "other", "other@test.com", "password1")

	for _, email := range []string{"c1@test.com", "c2@test.com", "c3@test.com"} {
		helpers.CreateContact(t, db, owner, "Name", "Lastname", email, nil)
	}
	helpers.CreateContact(t, db, other, "Foreign", "Contact", "foreign@test.com", nil)

	all, err := repo.List(db, owner, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := repo.List(db, owner, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	// Another user's set is untouched
	foreign, err := repo.List(db, other, 0, 100)
	require.NoError(t, err)
	assert.Len(t, foreign, 1)
}

func TestContactGet_AbsentIsNil(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")
	other := helpers.CreateUser(t, db, "other", "other@test.com", "password1")
	contact := helpers.CreateContact(t, db, owner, "Anna", "Koval", "anna@test.com", nil)

	found, err := repo.Get(db, owner, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "anna@test.com", found.Email)

	// Unknown id and foreign owner both come back as nil, not an error
	missing, err := repo.Get(db, owner, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	foreign, err := repo.Get(db, other, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestContactPatch_SparseSemantics(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")
	contact := helpers.CreateContact(t, db, owner, "Anna", "Koval", "anna@test.com", nil)
	contact.Phone = "1"
	contact.Description = "A"
	require.NoError(t, db.Save(contact).Error)

	newDescription := "B"
	patched, err := repo.Patch(db, owner, contact.ID, &dto.ContactPatch{
		Description: &newDescription,
	})
	require.NoError(t, err)
	require.NotNil(t, patched)

	// Only the supplied field changed
	assert.Equal(t, "B", patched.Description)
	assert.Equal(t, "1", patched.Phone)
	assert.Equal(t, "Anna", patched.Name)
}

func TestContactPatch_ExplicitNullClearsBirthday(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")
	contact := helpers.CreateContact(t, db, owner, "Anna", "Koval", "anna@test.com",
		helpers.DateOf(1990, time.March, 14))

	patched, err := repo.Patch(db, owner, contact.ID, &dto.ContactPatch{
		Birthday: dto.Optional[dto.Date]{Set: true, Value: nil},
	})
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Nil(t, patched.Birthday)

	// Absent birthday key leaves the stored value alone
	restored, err := repo.Patch(db, owner, contact.ID, &dto.ContactPatch{
		Birthday: dto.Optional[dto.Date]{Set: true, Value: &dto.Date{Time: *helpers.DateOf(1990, time.March, 14)}},
	})
	require.NoError(t, err)
	require.NotNil(t, restored.Birthday)

	name := "Maria"
	untouched, err := repo.Patch(db, owner, contact.ID, &dto.ContactPatch{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, untouched.Birthday)
	assert.Equal(t, 14, untouched.Birthday.Day())
}

func TestContactPatch_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")

	name := "Maria"
	patched, err := repo.Patch(db, owner, "no-such-id", &dto.ContactPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, patched)
}

func TestContactDelete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")
	contact := helpers.CreateContact(t, db, owner, "Anna", "Koval", "anna@test.com", nil)

	deleted, err := repo.Delete(db, owner, contact.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, contact.ID, deleted.ID)

	gone, err := repo.Get(db, owner, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting a nonexistent id is not a fault
	again, err := repo.Delete(db, owner, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestContactSearch(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")
	helpers.CreateContact(t, db, owner, "Anna", "Koval", "anna@test.com", nil)
	helpers.CreateContact(t, db, owner, "Maria", "Anna", "maria@test.com", nil)
	helpers.CreateContact(t, db, owner, "Petro", "Shevchenko", "petro@test.com", nil)

	// Key matches name OR lastname OR email
	found, err := repo.Search(db, owner, repositories.ContactFilter{Key: "Anna"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Exact-match filter narrows the key match
	found, err = repo.Search(db, owner, repositories.ContactFilter{Key: "Anna", Lastname: "Koval"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "anna@test.com", found[0].Email)

	// Filters work without a key too
	found, err = repo.Search(db, owner, repositories.ContactFilter{Email: "petro@test.com"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Petro", found[0].Name)
}

func TestUpcomingBirthdays_WeekWindow(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")

	// today = Wednesday 2024-07-17; week window is Mon 15 .. Sun 21 July
	today := time.Date(2024, time.July, 17, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Wednesday, today.Weekday())

	inWindow := helpers.CreateContact(t, db, owner, "In", "Window", "in@test.com",
		helpers.DateOf(1985, time.July, 19))
	helpers.CreateContact(t, db, owner, "Out", "Window", "out@test.com",
		helpers.DateOf(1985, time.July, 25))
	helpers.CreateContact(t, db, owner, "No", "Birthday", "nobd@test.com", nil)

	// Same day-of-week inside the window's day range but in another month:
	// the comparison is month-and-day-range only, so the month mismatch
	// excludes it.
	helpers.CreateContact(t, db, owner, "Other", "Month", "othermonth@test.com",
		helpers.DateOf(1985, time.March, 19))

	matches, err := repo.UpcomingBirthdays(db, owner, today)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, inWindow.Email, matches[0].Email)
}

func TestUpcomingBirthdays_CrossMonthWeekDayRangeIsEmpty(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewContactRepository()

	owner := helpers.CreateUser(t, db, "owner", "owner@test.com", "password1")

	// today = Wednesday 2024-07-31; the week runs Mon Jul 29 .. Sun Aug 4,
	// so the day range is [29, 4], an empty interval. Neither a birthday
	// inside the week (Jul 30, Aug 2) nor anything else matches. This pins
	// the documented day-range interpretation.
	today := time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Wednesday, today.Weekday())

	helpers.CreateContact(t, db, owner, "Early", "August", "aug@test.com",
		helpers.DateOf(1990, time.August, 2))
	helpers.CreateContact(t, db, owner, "Late", "July", "jul@test.com",
		helpers.DateOf(1990, time.July, 30))

	matches, err := repo.UpcomingBirthdays(db, owner, today)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
