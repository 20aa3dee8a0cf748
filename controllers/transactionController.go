package controllers

import (
	"bytes"
	"errors"
	"fmt"

	"notenledger-backend/database"
	"notenledger-backend/middlewares"
	"notenledger-backend/models"
	"notenledger-backend/pdf"
	"notenledger-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func transactionRepo() models.TransactionRepo {
	return models.TransactionRepo{DB: database.DB}
}

func GetTransactions(c *fiber.Ctx) error {
	transactions, err := transactionRepo().List()
	if err != nil {
		return err
	}
	return c.JSON(transactions)
}

func GetTransaction(c *fiber.Ctx) error {
	tx, items, err := transactionRepo().Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":  tx,
		"items": items,
	})
}

func CreateTransaction(c *fiber.Ctx) error {
	var in models.TransactionInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tx, items, err := transactionRepo().Create(middlewares.Acting(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tx, "items": items})
}

func UpdateTransaction(c *fiber.Ctx) error {
	var patch models.TransactionPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	tx, items, err := transactionRepo().Update(middlewares.Acting(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tx, "items": items})
}

func ApproveTransaction(c *fiber.Ctx) error {
	tx, err := transactionRepo().Approve(middlewares.Acting(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": tx})
}

// TransactionPDF renders the note on demand. Missing company or vendor
// references render as blanks rather than failing the document.
func TransactionPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	tx, items, err := transactionRepo().Get(id)
	if err != nil {
		return err
	}

	company, err := companyRepo().Get(tx.CompanyID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	vendor, err := vendorRepo().Get(tx.VendorID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	financialYear, err := database.DB.Setting("Financial_Year", "")
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pdf.RenderNote(&buf, tx, items, company, vendor, financialYear); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%s.pdf", id))
	return c.Send(buf.Bytes())
}

// DashboardSummary is the admin-oriented overview; non-admin callers see only
// their own notes.
func DashboardSummary(c *fiber.Ctx) error {
	transactions, err := transactionRepo().List()
	if err != nil {
		return err
	}
	limit := utils.ParseIntDefault(c.Query("limit"), 10)
	return c.JSON(models.Summarize(transactions, middlewares.Acting(c), limit))
}

// UserDashboardSummary scopes the overview to the acting user regardless of role.
func UserDashboardSummary(c *fiber.Ctx) error {
	transactions, err := transactionRepo().List()
	if err != nil {
		return err
	}
	actor := middlewares.Acting(c)
	actor.Role = models.RoleViewer // force the scoped view
	limit := utils.ParseIntDefault(c.Query("limit"), 5)
	return c.JSON(models.Summarize(transactions, actor, limit))
}
