package validator

import (
	"encoding/json"
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"kalasangam_backend/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// registerCustomRules регистрирует все кастомные функции валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-role-type", validateRoleType)
	mustRegister("is-date", validateDate)
	mustRegister("username", validateUsername)
	mustRegister("json-object", validateJSONObject)
}

// --- Функции валидации ---
// Пустые значения пропускаем, для этого есть 'required'.

func validateRoleType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.RoleType(value).Valid()
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return usernamePattern.MatchString(value)
}

// validateJSONObject для полей json.RawMessage
func validateJSONObject(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(json.RawMessage)
	if !ok || len(raw) == 0 {
		return true
	}
	var obj map[string]interface{}
	return json.Unmarshal(raw, &obj) == nil
}
