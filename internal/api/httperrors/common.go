package httperrors

import (
	"net/http"

	"github/chapool/go-disperse/internal/types"
)

var (
	ErrBadRequestArrayLengthMismatch = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeARRAYLENGTHMISMATCH, "Recipients and amounts must be non-empty and of equal length.")
	ErrBadRequestInvalidValue        = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDVALUE, "Every amount must be greater than zero.")
	ErrBadRequestInvalidRecipient    = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDRECIPIENT, "The zero address is not a valid recipient.")
	ErrBadRequestInsufficientValue   = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINSUFFICIENTVALUE, "Supplied value does not cover the requested total.")

	ErrConflictInsufficientAllowance = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeINSUFFICIENTALLOWANCE, "Sender allowance cannot fund the requested total.")
	ErrConflictInsufficientBalance   = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeINSUFFICIENTBALANCE, "Sender balance cannot fund the requested total.")
	ErrConflictTransferFailure       = NewHTTPError(http.StatusConflict, types.PublicHTTPErrorTypeTRANSFERFAILURE, "The ledger refused one of the transfers; no funds were moved.")
)
