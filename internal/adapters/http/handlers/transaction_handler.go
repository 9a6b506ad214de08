package handlers

import (
	"strconv"

	"libralend/internal/adapters/persistence/models"
	"libralend/internal/core/services"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles lending endpoints
type TransactionHandler struct {
	lendingService *services.LendingService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(lendingService *services.LendingService) *TransactionHandler {
	return &TransactionHandler{lendingService: lendingService}
}

// IssueRequest represents issue book request
type IssueRequest struct {
	BookID   uint `json:"book_id"`
	MemberID uint `json:"member_id"`
}

// Issue issues a book to a member
// @Summary Issue book
// @Description Lend one copy of a book to a member
// @Tags Transactions
// @Accept json
// @Produce json
// @Param body body IssueRequest true "Issue data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /transactions/issue [post]
func (h *TransactionHandler) Issue(c *fiber.Ctx) error {
	var req IssueRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.BookID == 0 {
		return response.BadRequest(c, "Book ID is required")
	}
	if req.MemberID == 0 {
		return response.BadRequest(c, "Member ID is required")
	}

	result, err := h.lendingService.IssueBook(c.Context(), req.BookID, req.MemberID)
	if err != nil {
		return mapDomainError(c, err)
	}

	message := "Book issued successfully"
	if result.DebtWarning {
		message = "Book issued successfully (member is approaching the debt limit)"
	}

	return response.Created(c, message, fiber.Map{
		"transaction":  result.Transaction.ToResponse(),
		"debt_warning": result.DebtWarning,
	})
}

// Return returns a borrowed book
// @Summary Return book
// @Description Close a transaction and charge the rent fee
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /transactions/return/{id} [put]
func (h *TransactionHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	result, err := h.lendingService.ReturnBook(c.Context(), uint(id))
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"transaction": result.Transaction.ToResponse(),
		"fee":         result.Fee,
		"total_debt":  result.TotalDebt,
	})
}

// ListActive lists all open loans
// @Summary List active transactions
// @Description All loans not yet returned, with book and member snapshots
// @Tags Transactions
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /transactions/active [get]
func (h *TransactionHandler) ListActive(c *fiber.Ctx) error {
	txs, err := h.lendingService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list active transactions")
	}

	resp := make([]*models.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		resp = append(resp, t.ToResponse())
	}

	return response.Success(c, "Active transactions retrieved successfully", fiber.Map{
		"transactions": resp,
	})
}

// GetByID gets a transaction by ID
// @Summary Get transaction by ID
// @Description Get a single ledger entry
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	tx, err := h.lendingService.GetTransaction(c.Context(), uint(id))
	if err != nil {
		return mapDomainError(c, err)
	}

	return response.Success(c, "Transaction retrieved successfully", fiber.Map{
		"transaction": tx.ToResponse(),
	})
}
