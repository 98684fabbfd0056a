package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/agroxhub-api/checkout"
	"github.com/Kariqs/agroxhub-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCartController(db *gorm.DB, log *zap.Logger) *CartController {
	return &CartController{db: db, log: log}
}

type addCartItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=10"`
}

func (c *CartController) CreateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	var product models.Product
	if err := c.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			return
		}
		c.log.Error("Unable to load product", zap.Uint("productId", req.ProductID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var item models.CartItem
	var created bool
	err := c.db.Transaction(func(tx *gorm.DB) error {
		cart := models.Cart{UserID: userID}
		if err := tx.Where("user_id = ?", userID).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{CartID: cart.ID, ProductID: req.ProductID, Quantity: req.Quantity}
			created = true
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}

		quantity := item.Quantity + req.Quantity
		if quantity > checkout.MaxItemQuantity {
			quantity = checkout.MaxItemQuantity
		}
		item.Quantity = quantity
		return tx.Model(&models.CartItem{}).Where("id = ?", item.ID).Update("quantity", quantity).Error
	})
	if err != nil {
		c.log.Error("Unable to update cart", zap.Uint("userId", userID), zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart")
		return
	}

	if created {
		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"status":  true,
			"message": product.Name + " added to cart",
			"id":      item.ID,
		})
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":   true,
		"message":  "Cart item quantity updated",
		"id":       item.ID,
		"quantity": item.Quantity,
	})
}

func (c *CartController) GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var cart models.Cart
	result := c.db.
		Where("user_id = ?", userID).
		Preload("Items.Product").
		First(&cart)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			c.log.Error("Failed to fetch cart", zap.Error(result.Error))
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"status": true, "cart": cart})
}
