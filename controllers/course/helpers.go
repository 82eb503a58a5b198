package controllers

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// currentUser loads the authenticated user set by the JWT middleware
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

// paginationParams reads page/limit query params with defaults
func paginationParams(c *fiber.Ctx) (page, limit, offset int) {
	page = c.QueryInt("page", 1)
	limit = c.QueryInt("limit", 12)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset = (page - 1) * limit
	return page, limit, offset
}
