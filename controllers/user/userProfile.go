package userController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the authenticated user's profile with activity stats
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrolledCourses, createdCourses, reviewsGiven int64
	db.Model(&models.Enrollment{}).Where("user_id = ?", userID).Count(&enrolledCourses)
	db.Model(&models.Course{}).Where("instructor_id = ?", userID).Count(&createdCourses)
	db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&reviewsGiven)

	var currentSubscription models.Subscription
	hasSubscription := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionActive).
		First(&currentSubscription).Error == nil

	user.Password = ""
	stats := fiber.Map{
		"enrolled_courses": enrolledCourses,
		"created_courses":  createdCourses,
		"reviews_given":    reviewsGiven,
	}
	if hasSubscription {
		stats["current_subscription"] = currentSubscription
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":  user,
		"stats": stats,
	})
}

// UpdateProfile updates profile fields. The role field is never updatable here.
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*struct {
		Name  string `json:"name" form:"name"`
		Email string `json:"email" form:"email"`
		Phone string `json:"phone" form:"phone"`
		Bio   string `json:"bio" form:"bio"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Email must stay unique
	if reqData.Email != user.Email {
		if err := db.Where("email = ? AND id != ?", reqData.Email, user.ID).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
	}

	user.Name = reqData.Name
	user.Email = reqData.Email
	user.Phone = reqData.Phone
	user.Bio = reqData.Bio

	// Replace avatar if a new one was uploaded
	if file, err := c.FormFile("avatar"); err == nil {
		path, err := utils.SaveUploadedFile(file, "avatars")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save avatar!", nil)
		}
		utils.DeleteUploadedFile(user.Avatar)
		user.Avatar = path
	}

	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// DeleteAccount removes the authenticated user after a password check
func DeleteAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData := new(struct {
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect password!", nil)
	}

	utils.DeleteUploadedFile(user.Avatar)

	if err := db.Delete(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Your account has been deleted successfully.", nil)
}
