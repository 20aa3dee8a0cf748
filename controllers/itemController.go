package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// Items are written only through their owning transaction; these endpoints
// expose the sheet read-only.

func GetItems(c *fiber.Ctx) error {
	items, err := transactionRepo().ListItems()
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func GetItem(c *fiber.Ctx) error {
	item, err := transactionRepo().GetItem(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}
