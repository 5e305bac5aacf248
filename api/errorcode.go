package api

import "github.com/punjabfloodrelief/relief-api/store"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1200: store.ErrLocationRequired.Error(),
		1201: store.ErrInvalidContactNumber.Error(),
		1202: store.ErrTypeOfHelpRequired.Error(),
		1203: store.ErrUnknownHelpType.Error(),

		1300: store.ErrRequestNotExist.Error(),

		1400: "unknown district",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorLocationRequired     = errorJSON(1200)
	errorInvalidContactNumber = errorJSON(1201)
	errorTypeOfHelpRequired   = errorJSON(1202)
	errorUnknownHelpType      = errorJSON(1203)

	errorRequestNotExist = errorJSON(1300)

	errorUnknownDistrict = errorJSON(1400)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
