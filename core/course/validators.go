package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studyflow/core"
)

var (
	endAfterStartTag  = "end_after_start"
	endAfterStartText = "end time must be after start time"
)

// register custom validators
func init() {
	core.Validate.RegisterStructValidation(scheduleSlotStructValidation, ScheduleSlot{})
	core.RegisterCustomTranslation(core.Validate, core.Translator, endAfterStartTag, endAfterStartText)
}

// scheduleSlotStructValidation does ScheduleSlot's struct level validation.
// "HH:MM" strings compare in chronological order.
func scheduleSlotStructValidation(sl validator.StructLevel) {
	if slot, ok := sl.Current().Interface().(ScheduleSlot); ok {
		if core.IsClock(slot.StartTime) && core.IsClock(slot.EndTime) && slot.EndTime <= slot.StartTime {
			sl.ReportError(slot.EndTime, "end_time", "EndTime", endAfterStartTag, "")
		}
	}
}
