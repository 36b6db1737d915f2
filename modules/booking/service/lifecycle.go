package service

import (
	"tutorhub-api/modules/booking/entity"
)

// Lifecycle events. Confirm and complete are distinct tutor actions:
// confirming acknowledges a pending request, completing marks the session
// held. A tutor may complete a booking without confirming it first.
type lifecycleEvent string

const (
	eventConfirm  lifecycleEvent = "confirm"
	eventCancel   lifecycleEvent = "cancel"
	eventComplete lifecycleEvent = "complete"
	eventNoShow   lifecycleEvent = "no_show"
)

// transitionSources maps each event to the states it may fire from.
// Terminal states appear nowhere, so any attempt out of them fails.
var transitionSources = map[lifecycleEvent][]entity.BookingStatus{
	eventConfirm:  {entity.StatusPending},
	eventComplete: {entity.StatusPending, entity.StatusConfirmed},
	eventCancel:   {entity.StatusPending, entity.StatusConfirmed},
	eventNoShow:   {entity.StatusPending, entity.StatusConfirmed},
}

func canFire(event lifecycleEvent, from entity.BookingStatus) bool {
	for _, s := range transitionSources[event] {
		if s == from {
			return true
		}
	}
	return false
}
