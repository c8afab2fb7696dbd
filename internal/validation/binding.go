package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/recyhub/recy-backend/internal/domain/valueobject"
)

// RegisterBindings регистрирует дополнительные теги в валидаторе gin.
// Вызывается один раз при старте до обработки запросов.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("валидатор gin не является validator.Validate")
	}
	return Register(v)
}

// Register добавляет теги resource_type, decision, delivery и email_loose.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"resource_type": func(fl validator.FieldLevel) bool {
			return ValidResourceType(fl.Field().String())
		},
		"decision": func(fl validator.FieldLevel) bool {
			return valueobject.RequestStatus(fl.Field().String()).IsValid()
		},
		"delivery": func(fl validator.FieldLevel) bool {
			return valueobject.DeliveryStatus(fl.Field().String()).IsValid()
		},
		"email_loose": func(fl validator.FieldLevel) bool {
			return ValidateEmail(fl.Field().String()) == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("регистрация тега %s: %w", tag, err)
		}
	}
	return nil
}

// Describe превращает ошибки валидатора в короткое сообщение для клиента.
func Describe(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return "некорректные данные запроса"
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), describeTag(fe)))
	}
	return strings.Join(parts, "; ")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "email_loose":
		return "некорректный email"
	case "resource_type":
		return "тип ресурса должен быть коротким словом латиницей"
	case "decision":
		return "статус должен быть pending, accepted или rejected"
	case "delivery":
		return "статус должен быть sending, sent, delivered или read"
	case "latitude", "longitude":
		return "некорректная координата"
	case "max":
		return "слишком длинное значение (максимум " + fe.Param() + ")"
	case "min", "gte":
		return "значение меньше допустимого (" + fe.Param() + ")"
	}
	return "не прошло проверку " + fe.Tag()
}
