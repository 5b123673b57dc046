package request

import (
	"reflect"
	"strings"
	"sync"

	"court-reservations/internal/domain/reservation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidations installs the operating-window tags on gin's validator.
// Safe to call more than once.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(wireName)
		_ = v.RegisterValidation("starttime", timeOfDayIn(reservation.IsValidStartTime))
		_ = v.RegisterValidation("endtime", timeOfDayIn(reservation.IsValidEndTime))
	})
}

func timeOfDayIn(allowed func(reservation.TimeOfDay) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		t, err := reservation.ParseTimeOfDay(fl.Field().String())
		return err == nil && allowed(t)
	}
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}
