package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

// locale returns the negotiated locale stored by the locale middleware
func locale(c *gin.Context) string {
	if l := c.GetString(constants.GinKeyLocale); l != "" {
		return l
	}
	return constants.DefaultLocale
}

// userKey returns the authenticated subject set by the auth middleware
func userKey(c *gin.Context) string {
	return c.GetString(constants.GinKeyUserKey)
}

// respondError writes the error envelope for err
func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	code := apperrors.GetErrorCode(err)
	message := apperrors.GetErrorMessage(err)
	if status >= http.StatusInternalServerError {
		message = constants.MsgInternalError
		if code == apperrors.CodeServiceUnavailable {
			message = constants.MsgServiceUnavailable
		}
		logger.ErrorWithContext(c.Request.Context(), "Request failed").
			Method(c.Request.Method).
			Path(c.FullPath()).
			StatusCode(status).
			Err(err).
			Log()
	}
	c.AbortWithStatusJSON(status, constants.BuildErrorResponse(code, message, nil))
}

func respondValidation(c *gin.Context, v *validation.Validator, fields validation.FieldErrors) {
	c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(
		apperrors.CodeInvalidInput,
		v.Message(locale(c), validation.MsgValidationFailed),
		fields,
	))
}

// parseID reads the :id path parameter as a positive integer
func parseID(c *gin.Context, v *validation.Validator) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		logger.WarnWithContext(c.Request.Context(), "Invalid id parameter").String("raw_id", c.Param("id")).Log()
		c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(
			apperrors.CodeInvalidInput,
			v.Message(locale(c), validation.MsgInvalidID),
			nil,
		))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into req and validates it in the request locale
func bindJSON(c *gin.Context, v *validation.Validator, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.WarnWithContext(c.Request.Context(), "Invalid request body").Err(err).Log()
		c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(
			apperrors.CodeInvalidInput,
			v.Message(locale(c), validation.MsgInvalidBody),
			nil,
		))
		return false
	}
	return validate(c, v, req)
}

// bindQuery decodes query filters into req and validates them
func bindQuery(c *gin.Context, v *validation.Validator, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(
			apperrors.CodeInvalidInput,
			v.Message(locale(c), validation.MsgValidationFailed),
			err.Error(),
		))
		return false
	}
	return validate(c, v, req)
}

func validate(c *gin.Context, v *validation.Validator, req any) bool {
	err := v.Struct(req, locale(c))
	if err == nil {
		return true
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		logger.InfoWithContext(c.Request.Context(), "Request failed validation").Int("fields", len(verr.Fields)).Log()
		respondValidation(c, v, verr.Fields)
		return false
	}
	respondError(c, apperrors.WrapError(apperrors.ErrInternal, err))
	return false
}
