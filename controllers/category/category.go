package categoryController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// GetCategories returns active categories with their course counts. Public.
func GetCategories(c *fiber.Ctx) error {
	db := database.Database.Db

	var categories []models.Category
	if err := db.Where("is_active = ?", true).Order("\"order\" asc, name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	result := make([]fiber.Map, 0, len(categories))
	for _, category := range categories {
		var courseCount int64
		db.Model(&models.Course{}).Where("category_id = ? AND is_published = ?", category.ID, true).Count(&courseCount)
		result = append(result, fiber.Map{
			"category":      category,
			"courses_count": courseCount,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", result)
}

// GetAllCategories returns every category including inactive ones. Admin only.
func GetAllCategories(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCategory, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db

	var categories []models.Category
	if err := db.Order("\"order\" asc, name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// CreateCategory adds a new category. Admin only.
func CreateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCategory, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db

	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
		Order       int    `json:"order" form:"order"`
		IsActive    *bool  `json:"is_active" form:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := db.Where("name = ?", reqData.Name).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A category with this name already exists!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Slug:        utils.UniqueSlug(db, "categories", reqData.Name, 0),
		Description: reqData.Description,
		Order:       reqData.Order,
		IsActive:    true,
	}
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}

	if iconFile, err := c.FormFile("icon"); err == nil {
		path, err := utils.SaveUploadedFile(iconFile, "categories")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save icon!", nil)
		}
		category.Icon = path
	}
	if imageFile, err := c.FormFile("image"); err == nil {
		path, err := utils.SaveUploadedFile(imageFile, "categories")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
		}
		category.Image = path
	}

	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// UpdateCategory edits a category. The slug is regenerated only when the name
// changes. Admin only.
func UpdateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCategory, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	categoryID := c.Locals("categoryID").(int)

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
		Order       int    `json:"order" form:"order"`
		IsActive    *bool  `json:"is_active" form:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Name != category.Name {
		if err := db.Where("name = ? AND id != ?", reqData.Name, category.ID).First(&models.Category{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A category with this name already exists!", nil)
		}
		category.Slug = utils.UniqueSlug(db, "categories", reqData.Name, category.ID)
	}

	category.Name = reqData.Name
	category.Description = reqData.Description
	category.Order = reqData.Order
	if reqData.IsActive != nil {
		category.IsActive = *reqData.IsActive
	}

	if iconFile, err := c.FormFile("icon"); err == nil {
		path, err := utils.SaveUploadedFile(iconFile, "categories")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save icon!", nil)
		}
		utils.DeleteUploadedFile(category.Icon)
		category.Icon = path
	}
	if imageFile, err := c.FormFile("image"); err == nil {
		path, err := utils.SaveUploadedFile(imageFile, "categories")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
		}
		utils.DeleteUploadedFile(category.Image)
		category.Image = path
	}

	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory removes an empty category. Admin only.
func DeleteCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if decision := middleware.Authorize(user, middleware.ActionManageCategory, nil); !decision.Allowed {
		return middleware.Forbid(c, decision)
	}

	db := database.Database.Db
	categoryID := c.Locals("categoryID").(int)

	var category models.Category
	if err := db.Where("id = ?", categoryID).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	// Courses keep their category; deleting a non-empty one would orphan them
	var courseCount int64
	db.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&courseCount)
	if courseCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete a category that still has courses!", nil)
	}

	utils.DeleteUploadedFile(category.Icon)
	utils.DeleteUploadedFile(category.Image)

	if err := db.Delete(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
