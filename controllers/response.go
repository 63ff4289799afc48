package controllers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var registerOnce sync.Once

func init() {
	RegisterValidators()
}

// RegisterValidators adds the custom binding rules and makes validation
// errors report json field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		_ = v.RegisterValidation("ministry", func(fl validator.FieldLevel) bool {
			return models.IsMinistryMembership(fl.Field().String())
		})
	})
}

// bindJSON binds the request body and writes a 400 when it does not validate.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = validationMessage(fe)
			}
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Validation failed", "details": details})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body", "details": err.Error()})
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "ministry":
		return "must be one of: " + strings.Join(models.MinistryMemberships, ", ")
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	}
	return "failed on " + fe.Tag()
}

// respondError writes the status belonging to the error kind. Unknown errors
// are logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		initializers.Log.Errorw("request failed", "route", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"msg": "Something went wrong, please try again later"})
		return
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

// currentUser returns the account CheckAuth put on the context.
func currentUser(c *gin.Context) models.User {
	user, _ := c.Get("currentUser")
	u, _ := user.(models.User)
	return u
}
