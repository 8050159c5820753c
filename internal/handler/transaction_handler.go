package handler

import (
	"go-bengkel-api/internal/model"
	"go-bengkel-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TransactionHandler struct {
	service service.TransactionService
	log     logrus.FieldLogger
}

func NewTransactionHandler(s service.TransactionService, log logrus.FieldLogger) *TransactionHandler {
	return &TransactionHandler{service: s, log: log}
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req model.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	trx, err := h.service.Create(&req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(201).JSON(trx)
}

func (h *TransactionHandler) GetAll(c *fiber.Ctx) error {
	transactions, err := h.service.GetAll()
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	view, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(view)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	deleted, err := h.service.Delete(id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted and stock restored", "data": deleted})
}
