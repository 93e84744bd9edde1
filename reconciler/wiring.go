package reconciler

import (
	"context"
	"encoding/json"

	"homecall/models"
	"homecall/realtime"
	"homecall/utils"

	"go.uber.org/zap"
)

// BindOwnerEvents subscribes the list to the owner channel's payload-bearing
// events. The list is the channel's sole consumer; every event becomes one
// mapping mutation.
func BindOwnerEvents(ch *realtime.Channel, list *List) {
	logger := utils.GetLogger()

	ch.On(realtime.EventNewBooking, func(data json.RawMessage) {
		var b models.Booking
		if err := json.Unmarshal(data, &b); err != nil || b.ID == "" {
			logger.Warn("Dropping malformed newBooking event", zap.Error(err))
			return
		}
		list.ApplyCreated(b)
	})

	ch.On(realtime.EventBookingUpdated, func(data json.RawMessage) {
		var b models.Booking
		if err := json.Unmarshal(data, &b); err != nil || b.ID == "" {
			logger.Warn("Dropping malformed bookingUpdated event", zap.Error(err))
			return
		}
		list.ApplyUpdated(b)
	})

	ch.On(realtime.EventBookingDeleted, func(data json.RawMessage) {
		id := deletedID(data)
		if id == "" {
			logger.Warn("Dropping bookingDeleted event without id")
			return
		}
		list.ApplyDeleted(id)
	})
}

// BindProviderEvents subscribes the list to the provider channel's coarse
// change signals. The signals carry no payload, so each one triggers a full
// re-seed; the generation guard in Refresh makes overlapping re-seeds safe.
func BindProviderEvents(ch *realtime.Channel, list *List) {
	logger := utils.GetLogger()
	refresh := func(json.RawMessage) {
		go func() {
			if err := list.Refresh(context.Background()); err != nil {
				logger.Warn("Push-triggered refresh failed", zap.Error(err))
			}
		}()
	}
	for _, event := range realtime.ProviderEvents {
		ch.On(event, refresh)
	}
}

// deletedID extracts the booking id from a bookingDeleted payload, which is
// either a bare string or an object carrying _id.
func deletedID(data json.RawMessage) string {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.ID
	}
	return ""
}
