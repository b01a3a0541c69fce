package controllers

import (
	"errors"
	"log"
	"net/http"

	"titanfit/services"
	"titanfit/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users    *services.UserService
	advisor  services.Advisor
	uploader services.ImageUploader
}

func NewUserController(users *services.UserService, advisor services.Advisor, uploader services.ImageUploader) *UserController {
	return &UserController{users: users, advisor: advisor, uploader: uploader}
}

func (ctl *UserController) GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	user, err := ctl.users.Get(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	resp := gin.H{"user": user}
	if bmi, category, ok := utils.BMI(user.Weight, user.Height); ok {
		resp["bmi"] = bmi
		resp["bmi_category"] = category
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile saves physical stats from the profile form and recomputes the
// calorie and water goals. Malformed input rejects the whole update.
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input services.StatsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.UpdateStats(userID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Stats updated",
		"goal_calories": user.GoalCalories,
		"goal_water":    user.GoalWater,
	})
}

type BodyAnalysisInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// AnalyzeBody estimates gender/height/weight from a full-body photo and
// auto-updates the user's stats and goals.
func (ctl *UserController) AnalyzeBody(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input BodyAnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	image, contentType, err := utils.DecodeBase64Image(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ctl.uploader != nil {
		// Stored for audit only; analysis runs on the raw bytes
		if _, err := ctl.uploader.UploadImage(c.Request.Context(), image, contentType, "body-images/upload"); err != nil {
			log.Printf("body image upload failed: %v", err)
		}
	}

	est, err := ctl.advisor.AnalyzeBody(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not analyze image"})
		return
	}
	if est == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "could not detect a person clearly, try a full-body shot",
		})
		return
	}

	user, err := ctl.users.ApplyBodyEstimate(userID, est)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Analysis complete",
		"estimate":      est,
		"goal_calories": user.GoalCalories,
		"goal_water":    user.GoalWater,
	})
}

// DeleteAccount removes the user and all of their logs.
func (ctl *UserController) DeleteAccount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if err := ctl.users.Delete(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
