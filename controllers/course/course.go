package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetPublicCourses lists published courses with instructor, category and
// review stats for the public catalog
func GetPublicCourses(c *fiber.Ctx) error {
	db := database.Database.Db
	page, limit, offset := paginationParams(c)

	query := db.Model(&models.Course{}).Where("is_published = ?", true)
	if categoryID := c.QueryInt("category_id", 0); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.Preload("Instructor").Preload("Category").
		Order("created_at desc").Offset(offset).Limit(limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]fiber.Map, len(courses))
	for i, course := range courses {
		course.Instructor.Password = ""
		result[i] = fiber.Map{
			"course":         course,
			"students_count": countEnrollments(course.ID),
			"average_rating": averageRating(course.ID),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetPublicCourse shows one published course by slug, with its sections,
// lessons and approved reviews
func GetPublicCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	slug := c.Params("slug")

	var course models.Course
	if err := db.Where("slug = ? AND is_published = ?", slug, true).
		Preload("Instructor").Preload("Category").
		Preload("Sections", sectionOrder).
		Preload("Sections.Lessons", sectionOrder).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	course.Instructor.Password = ""

	var reviews []models.Review
	db.Where("course_id = ? AND is_approved = ?", course.ID, true).
		Preload("User").Order("created_at desc").Limit(20).Find(&reviews)
	for i := range reviews {
		reviews[i].User.Password = ""
	}

	// Is the requesting user enrolled? Only meaningful with a token present.
	isEnrolled := false
	if userID, ok := c.Locals("userId").(uint); ok {
		isEnrolled = db.Where("user_id = ? AND course_id = ?", userID, course.ID).
			First(&models.Enrollment{}).Error == nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":         course,
		"reviews":        reviews,
		"is_enrolled":    isEnrolled,
		"students_count": countEnrollments(course.ID),
		"average_rating": averageRating(course.ID),
	})
}

// GetMyCourses lists the authenticated student's enrollments with courses
func GetMyCourses(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	page, limit, offset := paginationParams(c)

	query := db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID)

	var total int64
	query.Count(&total)

	var enrollments []models.Enrollment
	if err := query.Preload("Course").Preload("Course.Category").Preload("Course.Instructor").
		Order("enrolled_at desc").Offset(offset).Limit(limit).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch your courses!", nil)
	}
	for i := range enrollments {
		enrollments[i].Course.Instructor.Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Your courses fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetDashboardCourses lists courses for the dashboard. Instructors see their
// own courses; admins see everything.
func GetDashboardCourses(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionCreateCourse, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	page, limit, offset := paginationParams(c)

	query := db.Model(&models.Course{})
	if !user.IsAdmin() {
		query = query.Where("instructor_id = ?", user.ID)
	}

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.Preload("Category").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CreateCourse creates a new course for the authenticated instructor
func CreateCourse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionCreateCourse, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title            string  `json:"title" form:"title"`
		ShortDescription string  `json:"short_description" form:"short_description"`
		Description      string  `json:"description" form:"description"`
		CategoryID       uint    `json:"category_id" form:"category_id"`
		Price            float64 `json:"price" form:"price"`
		Level            string  `json:"level" form:"level"`
		IsPublished      bool    `json:"is_published" form:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Category must exist and be active
	if err := db.Where("id = ? AND is_active = ?", reqData.CategoryID, true).First(&models.Category{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	course := models.Course{
		Title:            reqData.Title,
		Slug:             utils.UniqueSlug(db, "courses", reqData.Title, 0),
		ShortDescription: reqData.ShortDescription,
		Description:      reqData.Description,
		CategoryID:       reqData.CategoryID,
		InstructorID:     user.ID, // Always the current user
		Price:            reqData.Price,
		Level:            reqData.Level,
		IsPublished:      reqData.IsPublished,
	}

	// Thumbnail upload
	if file, err := c.FormFile("thumbnail"); err == nil {
		path, err := utils.SaveUploadedFile(file, "courses/thumbnails")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		course.Thumbnail = path
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an existing course. The slug is regenerated only when
// the title changes.
func UpdateCourse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCourse, &course); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title            string  `json:"title" form:"title"`
		ShortDescription string  `json:"short_description" form:"short_description"`
		Description      string  `json:"description" form:"description"`
		CategoryID       uint    `json:"category_id" form:"category_id"`
		Price            float64 `json:"price" form:"price"`
		Level            string  `json:"level" form:"level"`
		IsPublished      bool    `json:"is_published" form:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := db.Where("id = ? AND is_active = ?", reqData.CategoryID, true).First(&models.Category{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	// Regenerate the slug if the title changed
	if reqData.Title != course.Title {
		course.Slug = utils.UniqueSlug(db, "courses", reqData.Title, course.ID)
	}

	course.Title = reqData.Title
	course.ShortDescription = reqData.ShortDescription
	course.Description = reqData.Description
	course.CategoryID = reqData.CategoryID
	course.Price = reqData.Price
	course.Level = reqData.Level
	course.IsPublished = reqData.IsPublished

	// Replace thumbnail if a new one was uploaded
	if file, err := c.FormFile("thumbnail"); err == nil {
		path, err := utils.SaveUploadedFile(file, "courses/thumbnails")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
		}
		utils.DeleteUploadedFile(course.Thumbnail)
		course.Thumbnail = path
	}

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course along with its thumbnail file
func DeleteCourse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCourse, &course); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	utils.DeleteUploadedFile(course.Thumbnail)

	if err := db.Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// sectionOrderExpr sorts by the quoted "order" column
var sectionOrderExpr = clause.OrderByColumn{Column: clause.Column{Name: "order"}}

// sectionOrder applies the display ordering to preloaded sections/lessons
func sectionOrder(db *gorm.DB) *gorm.DB {
	return db.Order(sectionOrderExpr)
}

func countEnrollments(courseID uint) int64 {
	var total int64
	database.Database.Db.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&total)
	return total
}

func averageRating(courseID uint) float64 {
	var avg *float64
	database.Database.Db.Model(&models.Review{}).
		Where("course_id = ? AND is_approved = ?", courseID, true).
		Select("AVG(rating)").Scan(&avg)
	if avg == nil {
		return 0
	}
	return round2(*avg)
}
