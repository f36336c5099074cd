package disburse

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github/chapool/go-disperse/internal/api/httperrors"
	disbursesvc "github/chapool/go-disperse/internal/disburse"
	"github/chapool/go-disperse/internal/ledger"
	"github/chapool/go-disperse/internal/types"
	"github/chapool/go-disperse/internal/util"
)

func newFieldValidationError(field string, reason string) *httperrors.HTTPValidationError {
	return httperrors.NewHTTPValidationError(
		http.StatusBadRequest,
		types.PublicHTTPErrorTypeGeneric,
		http.StatusText(http.StatusBadRequest),
		[]*types.HTTPValidationErrorDetail{
			{
				Key:   swag.String(field),
				In:    swag.String("body"),
				Error: swag.String(reason),
			},
		},
	)
}

func parseAddress(field string, value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, newFieldValidationError(field, "must be a hex address")
	}

	return common.HexToAddress(value), nil
}

func parseAmount(field string, value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, newFieldValidationError(field, "must be a base 10 integer")
	}

	return amount, nil
}

// parseRequest converts the wire representation into a disbursement request.
// Only the encoding is checked here; the batch rules (length match, zero
// amounts, zero addresses) belong to the disbursement service.
func parseRequest(recipients []string, amounts []string) (*disbursesvc.Request, error) {
	req := &disbursesvc.Request{
		Recipients: make([]common.Address, 0, len(recipients)),
		Amounts:    make([]*big.Int, 0, len(amounts)),
	}

	for i, recipient := range recipients {
		addr, err := parseAddress("recipients."+swag.FormatInt64(int64(i)), recipient)
		if err != nil {
			return nil, err
		}
		req.Recipients = append(req.Recipients, addr)
	}

	for i, amount := range amounts {
		value, err := parseAmount("amounts."+swag.FormatInt64(int64(i)), amount)
		if err != nil {
			return nil, err
		}
		req.Amounts = append(req.Amounts, value)
	}

	return req, nil
}

// mapDisburseError translates the service error taxonomy into public HTTP
// errors: request defects map to 400, funding and transfer failures to 409.
func mapDisburseError(c echo.Context, err error) error {
	log := util.LogFromContext(c.Request().Context())

	switch {
	case errors.Is(err, disbursesvc.ErrArrayLengthMismatch):
		return httperrors.ErrBadRequestArrayLengthMismatch
	case errors.Is(err, disbursesvc.ErrInvalidValue):
		return httperrors.ErrBadRequestInvalidValue
	case errors.Is(err, disbursesvc.ErrInvalidRecipient):
		return httperrors.ErrBadRequestInvalidRecipient
	case errors.Is(err, disbursesvc.ErrInsufficientValue):
		return httperrors.ErrBadRequestInsufficientValue
	case errors.Is(err, ledger.ErrInsufficientAllowance):
		return httperrors.ErrConflictInsufficientAllowance
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return httperrors.ErrConflictInsufficientBalance
	case errors.Is(err, ledger.ErrTransferRejected), errors.Is(err, ledger.ErrInvalidAmount):
		return httperrors.ErrConflictTransferFailure
	default:
		log.Error().Err(err).Msg("Failed to process disbursement")
		return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Failed to process disbursement")
	}
}

func disbursementResponse(receipt *disbursesvc.Receipt) *types.DisbursementResponse {
	return &types.DisbursementResponse{
		Total:      swag.String(receipt.Total.String()),
		Refund:     swag.String(receipt.Refund.String()),
		Recipients: swag.Int64(int64(receipt.Recipients)),
	}
}
