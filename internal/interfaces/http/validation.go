package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores usan el nombre JSON del campo (el que conoce el frontend).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// bindJSON parsea el cuerpo y valida los tags `validate`. Si falla responde 400 y
// devuelve ok=false; el handler debe retornar err tal cual.
func bindJSON(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return true, nil
}

// validationMessage resume los errores del validador en una línea legible.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, fmt.Sprintf("%s es requerido", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s debe tener al menos %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s no puede superar %s", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("%s debe ser un UUID válido", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s no cumple %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
