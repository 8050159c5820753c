package handler

import (
	"go-bengkel-api/internal/model"
	"go-bengkel-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CustomerHandler struct {
	service service.CustomerService
	log     logrus.FieldLogger
}

func NewCustomerHandler(s service.CustomerService, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{service: s, log: log}
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&customer); err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(customer)
}

func (h *CustomerHandler) GetAll(c *fiber.Ctx) error {
	customers, err := h.service.GetAll()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &customer)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": updated})
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted", "data": deleted})
}
