package handlers

import (
	"errors"

	"libralend/internal/core/domain"
	"libralend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// mapDomainError translates a domain error into the right HTTP response:
// validation failures 400, unknown ids 404, conflicts 409, business-rule
// refusals 422 (with current stock/debt context in the message), anything
// unexpected 500.
func mapDomainError(c *fiber.Ctx, err error) error {
	var (
		outOfStock        *domain.OutOfStockError
		debtLimit         *domain.DebtLimitError
		outstanding       *domain.OutstandingDebtError
		activeLoans       *domain.ActiveLoansError
		memberActiveLoans *domain.MemberActiveLoansError
	)

	switch {
	case errors.Is(err, domain.ErrInvalidISBN),
		errors.Is(err, domain.ErrMissingTitle),
		errors.Is(err, domain.ErrMissingAuthor),
		errors.Is(err, domain.ErrMissingName),
		errors.Is(err, domain.ErrMissingEmail),
		errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, err.Error())

	case errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, domain.ErrDuplicateISBN),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyReturned):
		return response.Conflict(c, err.Error())

	case errors.As(err, &outOfStock),
		errors.As(err, &debtLimit),
		errors.As(err, &outstanding),
		errors.As(err, &activeLoans),
		errors.As(err, &memberActiveLoans):
		return response.UnprocessableEntity(c, err.Error())

	default:
		return response.InternalServerError(c, "internal server error")
	}
}
