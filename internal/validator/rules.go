package validator

import (
	"log"

	"argent_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Правило не зарегистрировалось - приложение сконфигурировано
			// неверно и стартовать не должно.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("account-gender", validateGender)
	mustRegister("job-type", validateJobType)
	mustRegister("job-level", validateJobLevel)
	mustRegister("job-workplace", validateWorkPlace)
}

// --- Функции валидации ---

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения ловит 'required'
	}
	switch models.Gender(value) {
	case models.GenderMale, models.GenderFemale:
		return true
	default:
		return false
	}
}

func validateJobType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "full-time", "part-time", "internship", "contract":
		return true
	default:
		return false
	}
}

func validateJobLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "entry", "intermediate", "expert":
		return true
	default:
		return false
	}
}

func validateWorkPlace(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "remote", "onsite", "hybrid":
		return true
	default:
		return false
	}
}
