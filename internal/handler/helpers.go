package handler

import (
	"net/http"
	"strconv"

	"github.com/mgfuentes-ct/OTech-respaldo/internal/apierror"
	"github.com/mgfuentes-ct/OTech-respaldo/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindFormAndValidate is the form-encoded variant (login posts a classic form).
func bindFormAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Formulario invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error to its HTTP status. DataAccess causes are
// logged with the request id and never serialized.
func respondError(c *gin.Context, err error) {
	apiErr := apierror.From(err)
	if apiErr.Kind == apierror.KindDataAccess {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(apiErr.Err).
			Msg("data access failure")
	}
	c.JSON(apiErr.Status(), apierror.New(apiErr.Detail))
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

// actingUserID returns the request-supplied user id, falling back to the
// authenticated user's id when the field was omitted.
func actingUserID(c *gin.Context, requested uint) uint {
	if requested != 0 {
		return requested
	}
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.UserID
	}
	return requested
}
