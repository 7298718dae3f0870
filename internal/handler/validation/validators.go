package validation

import (
	"errors"

	"telescope-scheduler/internal/domain/appointment"
	"telescope-scheduler/internal/domain/user"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errUnexpectedEngine = errors.New("gin binding engine is not go-playground/validator")

// Register adds the scheduler's enum tags to gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errUnexpectedEngine
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"priority":         isPriority,
		"appointment_type": isAppointmentType,
		"category":         isCategory,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isPriority(fl validator.FieldLevel) bool {
	return appointment.Priority(fl.Field().String()).IsValid()
}

func isAppointmentType(fl validator.FieldLevel) bool {
	return appointment.Type(fl.Field().String()).IsValid()
}

func isCategory(fl validator.FieldLevel) bool {
	return user.Role(fl.Field().String()).IsCategoryOfService()
}

// Details flattens binding errors into field -> failed rule.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
