package controllers

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alumnifund/AlumniFund/config"
	"github.com/alumnifund/AlumniFund/models"
	"github.com/alumnifund/AlumniFund/services"
	"github.com/alumnifund/AlumniFund/utils"
)

var (
	gateway  *services.GatewayClient
	liveFeed *services.LiveFeed
)

// InitPayments wires the payment provider client and the live donation
// feed into the payment and donation handlers. Called once at startup.
func InitPayments(client *services.GatewayClient, feed *services.LiveFeed) {
	gateway = client
	liveFeed = feed
}

// generateOrderID creates a provider-safe order identifier. Timestamp plus
// random suffix keeps it unique and under the provider's 64-byte cap.
func generateOrderID() string {
	return fmt.Sprintf("ORD%s%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
}

// CreateOrderRequest represents the payment order request body
type CreateOrderRequest struct {
	CampaignID uint    `json:"campaign_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Message    string  `json:"message"`
}

// CreatePaymentOrder registers a donation intent and opens a hosted
// checkout session with the payment provider.
func CreatePaymentOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Order creation failed - Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateAmount(req.Amount); err != nil {
		utils.LogError("Order creation failed - Invalid amount: %f", req.Amount)
		utils.BadRequest(c, "Invalid amount", err.Error())
		return
	}

	var campaign models.Campaign
	if err := config.DB.Preload("School").First(&campaign, req.CampaignID).Error; err != nil {
		utils.LogError("Order creation failed - Campaign not found: %d", req.CampaignID)
		utils.NotFound(c, "Campaign not found")
		return
	}
	if campaign.Status != models.CampaignStatusActive {
		utils.LogError("Order creation failed - Campaign %d is %s", campaign.ID, campaign.Status)
		utils.BadRequest(c, "Campaign is not active", "Donations can only be made to active campaigns.")
		return
	}

	order := models.PaymentOrder{
		OrderID:       generateOrderID(),
		CampaignID:    campaign.ID,
		UserID:        user.ID,
		Amount:        req.Amount,
		PaymentStatus: models.PaymentOrderStatusPending,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		utils.LogError("Failed to persist payment order: %v", err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}

	utils.LogInfo("Payment order %s created for campaign %d by user %d", order.OrderID, campaign.ID, user.ID)

	customer := services.CustomerDetails{
		CustomerID:    fmt.Sprintf("user_%d", user.ID),
		CustomerName:  user.DisplayName(),
		CustomerEmail: user.Email,
	}
	returnURL := os.Getenv("FRONTEND_URL") + "/donation/result?order_id=" + order.OrderID
	notifyURL := os.Getenv("BACKEND_URL") + "/api/payments/webhook"

	session, err := gateway.CreateOrder(order.OrderID, order.Amount, customer, returnURL, notifyURL)
	if err != nil {
		// Order stays pending; the client retries with a fresh order
		utils.LogError("Provider order creation failed for %s: %v", order.OrderID, err)
		utils.InternalServerError(c, "Failed to initiate payment", err.Error())
		return
	}

	if err := config.DB.Model(&order).Update("payment_session_id", session.PaymentSessionID).Error; err != nil {
		utils.LogError("Failed to store payment session for %s: %v", order.OrderID, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}

	utils.LogInfo("Checkout session opened for order %s", order.OrderID)
	utils.Created(c, "Payment order created successfully", gin.H{
		"order_id":           order.OrderID,
		"payment_session_id": session.PaymentSessionID,
		"amount":             order.Amount,
		"campaign": gin.H{
			"id":     campaign.ID,
			"title":  campaign.Title,
			"school": campaign.School.Name,
		},
	})
}

// paymentWebhookPayload is the provider's settlement notification envelope.
type paymentWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		Order struct {
			OrderID     string  `json:"order_id"`
			OrderAmount float64 `json:"order_amount"`
		} `json:"order"`
		Payment struct {
			PaymentStatus string  `json:"payment_status"`
			CfPaymentID   string  `json:"cf_payment_id"`
			PaymentAmount float64 `json:"payment_amount"`
		} `json:"payment"`
	} `json:"data"`
}

// PaymentWebhook reconciles a provider settlement notification against the
// matching payment order. Always acknowledges with 200: a retry of a
// webhook we already processed, or one we cannot process, must not make the
// provider retry-storm us.
func PaymentWebhook(c *gin.Context) {
	var payload paymentWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.LogError("Payment webhook - Malformed payload: %v", err)
		utils.Ack(c)
		return
	}

	orderID := payload.Data.Order.OrderID
	payment := payload.Data.Payment
	utils.LogInfo("Payment webhook received: order=%s status=%s payment=%s", orderID, payment.PaymentStatus, payment.CfPaymentID)

	var order models.PaymentOrder
	if err := config.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		utils.LogError("Payment webhook - Unknown order: %s", orderID)
		utils.Ack(c)
		return
	}

	if !strings.EqualFold(payment.PaymentStatus, "SUCCESS") {
		utils.LogInfo("Payment webhook - Non-success status %s for order %s, nothing to credit", payment.PaymentStatus, orderID)
		utils.Ack(c)
		return
	}

	if payload.Data.Order.OrderAmount != 0 && payload.Data.Order.OrderAmount != order.Amount {
		utils.LogError("Payment webhook - Amount mismatch for order %s: provider=%f local=%f", orderID, payload.Data.Order.OrderAmount, order.Amount)
	}

	credited := false
	var donation models.Donation
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Race-breaker: only the first settlement for an order flips it to
		// success. Retries and concurrent deliveries see RowsAffected==0.
		result := tx.Model(&models.PaymentOrder{}).
			Where("order_id = ? AND payment_status <> ?", orderID, models.PaymentOrderStatusSuccess).
			Update("payment_status", models.PaymentOrderStatusSuccess)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			utils.LogInfo("Payment webhook - Order %s already settled, duplicate delivery", orderID)
			return nil
		}

		donorName := "Anonymous"
		donorEmail := ""
		if order.UserID != 0 {
			var donor models.User
			if err := tx.First(&donor, order.UserID).Error; err == nil {
				donorName = donor.DisplayName()
				donorEmail = donor.Email
			}
		}

		donorUserID := &order.UserID
		if order.UserID == 0 {
			donorUserID = nil
		}
		donation = models.Donation{
			CampaignID:        order.CampaignID,
			DonorUserID:       donorUserID,
			DonorName:         donorName,
			DonorEmail:        donorEmail,
			Amount:            order.Amount,
			Status:            models.DonationStatusCompleted,
			ProviderPaymentID: payment.CfPaymentID,
		}
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Campaign{}).
			Where("id = ?", order.CampaignID).
			Update("current_amount", gorm.Expr("current_amount + ?", order.Amount)).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.PaymentOrder{}).
			Where("order_id = ?", orderID).
			Update("donation_id", donation.ID).Error; err != nil {
			return err
		}

		credited = true
		return nil
	})
	if err != nil {
		utils.LogError("Payment webhook - Failed to settle order %s: %v", orderID, err)
		utils.Ack(c)
		return
	}

	if credited {
		utils.LogInfo("Payment webhook - Order %s settled, donation %d credited to campaign %d", orderID, donation.ID, order.CampaignID)
		notifyDonationCredited(donation)
	}

	utils.Ack(c)
}

// notifyDonationCredited handles the side effects of a credit: receipt
// email and live feed broadcast. Failures are logged, never surfaced.
func notifyDonationCredited(donation models.Donation) {
	var campaign models.Campaign
	if err := config.DB.First(&campaign, donation.CampaignID).Error; err != nil {
		utils.LogError("Failed to load campaign %d for donation notifications: %v", donation.CampaignID, err)
		return
	}

	if donation.DonorEmail != "" {
		go func() {
			if err := utils.SendDonationReceipt(donation.DonorEmail, donation.DonorName, campaign.Title, donation.Amount); err != nil {
				utils.LogError("Failed to send receipt email for donation %d: %v", donation.ID, err)
			}
		}()
	}

	if liveFeed != nil {
		liveFeed.BroadcastDonation(services.DonationEvent{
			CampaignID:    campaign.ID,
			CampaignTitle: campaign.Title,
			DonorName:     donation.DonorName,
			Amount:        donation.Amount,
			Message:       donation.Message,
			CreatedAt:     donation.CreatedAt,
		})
	}
}

// GetPaymentStatus reports the payment state of an order. A locally
// settled order answers from our own records without calling the provider;
// anything else is checked live, falling back to the local state if the
// provider is unreachable.
func GetPaymentStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.PaymentOrder
	if err := config.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		utils.LogError("Payment status - Unknown order: %s", orderID)
		utils.NotFound(c, "Order not found")
		return
	}

	if order.PaymentStatus == models.PaymentOrderStatusSuccess {
		providerPaymentID := ""
		if order.DonationID != nil {
			var donation models.Donation
			if err := config.DB.First(&donation, *order.DonationID).Error; err == nil {
				providerPaymentID = donation.ProviderPaymentID
			}
		}
		utils.LogInfo("Payment status for %s answered locally", orderID)
		utils.Success(c, "Payment status retrieved successfully", gin.H{
			"order_id":       order.OrderID,
			"payment_status": "SUCCESS",
			"source":         "local",
			"payments": []gin.H{{
				"payment_status": "SUCCESS",
				"cf_payment_id":  providerPaymentID,
				"payment_amount": order.Amount,
			}},
		})
		return
	}

	payments, err := gateway.GetOrderPayments(orderID)
	if err != nil {
		utils.LogError("Payment status - Provider query failed for %s: %v", orderID, err)
		utils.Success(c, "Payment status retrieved successfully", gin.H{
			"order_id":       order.OrderID,
			"payment_status": strings.ToUpper(order.PaymentStatus),
			"source":         "local",
			"payments":       []gin.H{},
		})
		return
	}

	status := "PENDING"
	results := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		if strings.EqualFold(p.PaymentStatus, "SUCCESS") {
			status = "SUCCESS"
		}
		results = append(results, gin.H{
			"payment_status": p.PaymentStatus,
			"cf_payment_id":  p.TransactionID,
			"payment_amount": p.Amount,
		})
	}

	utils.LogInfo("Payment status for %s answered by provider: %s", orderID, status)
	utils.Success(c, "Payment status retrieved successfully", gin.H{
		"order_id":       order.OrderID,
		"payment_status": status,
		"source":         "provider",
		"payments":       results,
	})
}

// GetOrderQR renders the hosted checkout link for an order as a PNG QR
// code, for poster and kiosk flows.
func GetOrderQR(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.PaymentOrder
	if err := config.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		utils.LogError("Order QR - Unknown order: %s", orderID)
		utils.NotFound(c, "Order not found")
		return
	}
	if order.PaymentSessionID == "" {
		utils.BadRequest(c, "Order has no checkout session", "Create the payment order again to open a checkout session.")
		return
	}

	png, err := utils.GenerateQRCode(gateway.CheckoutURL(order.OrderID, order.PaymentSessionID))
	if err != nil {
		utils.LogError("Order QR - Failed to render for %s: %v", orderID, err)
		utils.InternalServerError(c, "Failed to generate QR code", err.Error())
		return
	}

	c.Data(200, "image/png", png)
}
