package handler

import (
	"go-bengkel-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CodeHandler serves the next sequential business code for the entry forms.
// Advisory only; creation still enforces uniqueness.
type CodeHandler struct {
	customers    service.CustomerService
	items        service.ItemService
	transactions service.TransactionService
	log          logrus.FieldLogger
}

func NewCodeHandler(
	customers service.CustomerService,
	items service.ItemService,
	transactions service.TransactionService,
	log logrus.FieldLogger,
) *CodeHandler {
	return &CodeHandler{customers: customers, items: items, transactions: transactions, log: log}
}

func (h *CodeHandler) Next(c *fiber.Ctx) error {
	kind := c.Query("type")

	var (
		code string
		err  error
	)
	switch kind {
	case "customer":
		code, err = h.customers.NextCode()
	case "item":
		code, err = h.items.NextCode()
	case "transaction":
		code, err = h.transactions.NextCode()
	default:
		return c.Status(400).JSON(fiber.Map{"error": "type must be one of customer, item, transaction"})
	}
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"type": kind, "code": code})
}
