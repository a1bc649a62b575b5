package metrics

// BookingRecorder адаптер Metrics под события бронирований.
// С nil Metrics (метрики выключены) вызовы ничего не делают.
type BookingRecorder struct {
	m       *Metrics
	service string
}

func NewBookingRecorder(m *Metrics, service string) *BookingRecorder {
	return &BookingRecorder{m: m, service: service}
}

func (r *BookingRecorder) BookingCreated() {
	if r.m == nil {
		return
	}
	r.m.BookingsCreatedTotal.WithLabelValues(r.service).Inc()
}

func (r *BookingRecorder) BookingConflict(operation string) {
	if r.m == nil {
		return
	}
	r.m.BookingConflictsTotal.WithLabelValues(r.service, operation).Inc()
}

func (r *BookingRecorder) StatusChanged(from, to string) {
	if r.m == nil {
		return
	}
	r.m.StatusTransitionsTotal.WithLabelValues(r.service, from, to).Inc()
}
