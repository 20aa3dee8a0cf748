package controllers

import (
	"notenledger-backend/database"
	"notenledger-backend/middlewares"
	"notenledger-backend/models"
	"notenledger-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func companyRepo() models.CompanyRepo {
	return models.CompanyRepo{DB: database.DB}
}

func GetCompanies(c *fiber.Ctx) error {
	companies, err := companyRepo().List()
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

func GetCompany(c *fiber.Ctx) error {
	company, err := companyRepo().Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(company)
}

func CreateCompany(c *fiber.Ctx) error {
	var in models.CompanyInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	company, err := companyRepo().Create(in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": company})
}

func UpdateCompany(c *fiber.Ctx) error {
	var patch models.CompanyPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	company, err := companyRepo().Update(middlewares.Acting(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": company})
}

func DeleteCompany(c *fiber.Ctx) error {
	if err := companyRepo().Remove(middlewares.Acting(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
