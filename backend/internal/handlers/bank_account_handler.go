package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/user/nairaswap/backend/internal/database"
	"github.com/user/nairaswap/backend/internal/models"
)

// CreateBankAccountRequest defines the expected JSON body for saving a payout destination
type CreateBankAccountRequest struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IsDefault     bool   `json:"is_default"`
}

// ListBankAccounts retrieves the caller's saved payout destinations.
func ListBankAccounts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	accounts, err := database.ListBankAccounts(c.Context(), userID)
	if err != nil {
		log.Printf("Error fetching bank accounts for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bank accounts"})
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

// CreateBankAccount saves a payout destination for the caller.
func CreateBankAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	req := new(CreateBankAccountRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}

	req.BankName = strings.TrimSpace(req.BankName)
	req.AccountName = strings.TrimSpace(req.AccountName)
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)
	if req.BankName == "" || req.AccountName == "" || req.AccountNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Bank name, account name and account number are required"})
	}

	account := &models.BankAccount{
		UserID:        userID,
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		IsDefault:     req.IsDefault,
	}
	if err := database.CreateBankAccount(c.Context(), account); err != nil {
		log.Printf("Error creating bank account for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save bank account"})
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// DeleteBankAccount removes one of the caller's payout destinations.
func DeleteBankAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	accountID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid account ID format"})
	}

	if err := database.DeleteBankAccount(c.Context(), userID, accountID); err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Bank account deleted"})
}
