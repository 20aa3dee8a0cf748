package controllers

import (
	"notenledger-backend/database"
	"notenledger-backend/middlewares"
	"notenledger-backend/models"
	"notenledger-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func userRepo() models.UserRepo {
	return models.UserRepo{DB: database.DB}
}

func GetUsers(c *fiber.Ctx) error {
	users, err := userRepo().List()
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func GetUser(c *fiber.Ctx) error {
	user, err := userRepo().Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func CreateUser(c *fiber.Ctx) error {
	var in models.UserInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	user, err := userRepo().Create(middlewares.Acting(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func UpdateUser(c *fiber.Ctx) error {
	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	user, err := userRepo().Update(middlewares.Acting(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func DeleteUser(c *fiber.Ctx) error {
	if err := userRepo().Remove(middlewares.Acting(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
