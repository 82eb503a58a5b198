package utils

import (
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Course{}, &models.Category{}))
	return db
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "intro-to-php", Slugify("Intro to PHP"))
	assert.Equal(t, "go-101-the-basics", Slugify("  Go 101: The Basics!  "))
	assert.Equal(t, "a-b", Slugify("a---b"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestUniqueSlugDisambiguates(t *testing.T) {
	db := newTestDb(t)

	assert.Equal(t, "intro-to-php", UniqueSlug(db, "courses", "Intro to PHP", 0))

	require.NoError(t, db.Create(&models.Course{Title: "Intro to PHP", Slug: "intro-to-php", InstructorID: 1, CategoryID: 1}).Error)
	assert.Equal(t, "intro-to-php-1", UniqueSlug(db, "courses", "Intro to PHP", 0))

	require.NoError(t, db.Create(&models.Course{Title: "Intro to PHP", Slug: "intro-to-php-1", InstructorID: 1, CategoryID: 1}).Error)
	assert.Equal(t, "intro-to-php-2", UniqueSlug(db, "courses", "Intro to PHP", 0))
}

func TestUniqueSlugKeepsOwnSlugOnUpdate(t *testing.T) {
	db := newTestDb(t)

	course := models.Course{Title: "Intro to PHP", Slug: "intro-to-php", InstructorID: 1, CategoryID: 1}
	require.NoError(t, db.Create(&course).Error)

	// The row being updated does not collide with itself
	assert.Equal(t, "intro-to-php", UniqueSlug(db, "courses", "Intro to PHP", course.ID))
}

func TestUniqueSlugScopedPerTable(t *testing.T) {
	db := newTestDb(t)

	require.NoError(t, db.Create(&models.Category{Name: "Programming", Slug: "programming"}).Error)

	// A category slug does not block the same slug on courses
	assert.Equal(t, "programming", UniqueSlug(db, "courses", "Programming", 0))
	assert.Equal(t, "programming-1", UniqueSlug(db, "categories", "Programming", 0))
}
