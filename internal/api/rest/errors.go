package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-nft-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(details))
}

// respondInternalError responds with an internal server error and logs the cause
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, append(fields, zap.String("message", message))...)
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondError maps ledger and API errors to their HTTP responses.
// Anything unrecognized is logged and answered with 500.
func respondError(c *gin.Context, err error, message string) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode() >= http.StatusInternalServerError {
			logger.ErrorCtx(c.Request.Context(), err, zap.String("message", message))
		}
		c.JSON(apiErr.StatusCode(), apiErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNonexistentToken):
		c.JSON(http.StatusNotFound, apierrors.NewNotFoundError("Token not found", err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Caller is not allowed to perform this operation", err.Error()))
	case errors.Is(err, domain.ErrAlreadyMinted):
		c.JSON(http.StatusConflict, apierrors.NewAlreadyMintedError("Token already minted", err.Error()))
	case errors.Is(err, domain.ErrSupplyExceeded):
		c.JSON(http.StatusConflict, apierrors.NewSupplyExceededError("Max supply reached", err.Error()))
	case errors.Is(err, domain.ErrInvalidAddress):
		respondBadRequest(c, "Invalid address", err.Error())
	case errors.Is(err, domain.ErrInvalidTokenID):
		respondBadRequest(c, "Invalid token ID", err.Error())
	default:
		respondInternalError(c, err, message)
	}
}
