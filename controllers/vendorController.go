package controllers

import (
	"notenledger-backend/database"
	"notenledger-backend/middlewares"
	"notenledger-backend/models"
	"notenledger-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func vendorRepo() models.VendorRepo {
	return models.VendorRepo{DB: database.DB}
}

func GetVendors(c *fiber.Ctx) error {
	vendors, err := vendorRepo().List()
	if err != nil {
		return err
	}
	return c.JSON(vendors)
}

func GetVendor(c *fiber.Ctx) error {
	vendor, err := vendorRepo().Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(vendor)
}

func CreateVendor(c *fiber.Ctx) error {
	var in models.VendorInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	vendor, err := vendorRepo().Create(in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": vendor})
}

func UpdateVendor(c *fiber.Ctx) error {
	var patch models.VendorPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	vendor, err := vendorRepo().Update(middlewares.Acting(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": vendor})
}

func DeleteVendor(c *fiber.Ctx) error {
	if err := vendorRepo().Remove(middlewares.Acting(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
