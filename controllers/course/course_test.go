package controllers

import (
	"lms/database"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Review{}, &models.Enrollment{}))

	database.Database = database.DbInstance{Db: db}
	return db
}

func TestAverageRatingRoundsToTwoDecimals(t *testing.T) {
	db := setupCatalogDb(t)

	course := models.Course{Title: "Rated", Slug: "rated", InstructorID: 1, CategoryID: 1}
	require.NoError(t, db.Create(&course).Error)

	for i, rating := range []int{4, 4, 5} {
		review := models.Review{UserID: uint(i + 1), CourseID: course.ID, Rating: rating, IsApproved: true}
		require.NoError(t, db.Create(&review).Error)
	}

	// 13/3 = 4.333... rounds to two decimals for display
	assert.Equal(t, 4.33, averageRating(course.ID))
}

func TestAverageRatingSkipsUnapprovedReviews(t *testing.T) {
	db := setupCatalogDb(t)

	course := models.Course{Title: "Rated", Slug: "rated", InstructorID: 1, CategoryID: 1}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, db.Create(&models.Review{UserID: 1, CourseID: course.ID, Rating: 5, IsApproved: true}).Error)
	hidden := models.Review{UserID: 2, CourseID: course.ID, Rating: 1, IsApproved: false}
	require.NoError(t, db.Create(&hidden).Error)
	require.NoError(t, db.Model(&hidden).Update("is_approved", false).Error)

	assert.Equal(t, 5.00, averageRating(course.ID))
}

func TestAverageRatingEmptyCourse(t *testing.T) {
	setupCatalogDb(t)
	assert.Equal(t, 0.00, averageRating(9999))
}
