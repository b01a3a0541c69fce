package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"titanfit/services"
	"titanfit/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	food   *services.FoodService
	ledger *services.LedgerService
}

func NewFoodController(food *services.FoodService, ledger *services.LedgerService) *FoodController {
	return &FoodController{food: food, ledger: ledger}
}

type ClassifyTextInput struct {
	Description string `json:"description" binding:"required"`
}

// POST /api/food/classify-text  { "description": "2 eggs and toast" }
func (ctl *FoodController) ClassifyText(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input ClassifyTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	cand, err := ctl.food.ClassifyText(c.Request.Context(), userID, input.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not understand food"})
		return
	}
	c.JSON(http.StatusOK, cand)
}

type ClassifyImageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /api/food/classify-image  { "image_base64": "data:image/jpeg;base64,..." }
func (ctl *FoodController) ClassifyImage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input ClassifyImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	image, contentType, err := utils.DecodeBase64Image(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cand, err := ctl.food.ClassifyImage(c.Request.Context(), userID, image, contentType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not analyze image"})
		return
	}
	c.JSON(http.StatusOK, cand)
}

// GET /api/food/pending — staged candidate plus the safety check
func (ctl *FoodController) Pending(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	view, err := ctl.food.Pending(userID)
	if err != nil {
		if errors.Is(err, services.ErrNothingPending) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending food"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/food/pending/confirm
func (ctl *FoodController) Confirm(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	foodLog, err := ctl.food.Confirm(userID)
	if err != nil {
		if errors.Is(err, services.ErrNothingPending) {
			// retried confirm: benign, nothing logged twice
			c.JSON(http.StatusOK, gin.H{"message": "nothing to confirm"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, foodLog)
}

// POST /api/food/pending/discard
func (ctl *FoodController) Discard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	ctl.food.Discard(userID)
	c.JSON(http.StatusOK, gin.H{"message": "discarded"})
}

// DELETE /api/food/:id
func (ctl *FoodController) Delete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := ctl.ledger.DeleteFoodLog(userID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
