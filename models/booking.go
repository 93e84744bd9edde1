package models

// Provider-side booking statuses.
const (
	StatusRequest    = "request"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusRejected   = "rejected"
)

// Owner-side rental booking statuses.
const (
	StatusPending      = "pending"
	StatusOwnerConfirm = "owner_confirm"
)

// Payment states.
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// ContactInfo is the counterparty contact block attached to a booking.
// It is withheld from every rendered projection until the booking is paid.
type ContactInfo struct {
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Email    string `json:"email,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// PropertyRef is the denormalized property reference on a rental booking.
type PropertyRef struct {
	ID    string `json:"_id,omitempty"`
	Title string `json:"title,omitempty"`
}

// Booking is one booking as the server projects it for either role.
// Rental (owner) bookings carry a date range, a renter contact block and a
// string payment status; service (provider) bookings carry a single date,
// flat customer fields and a boolean paid flag.
type Booking struct {
	ID            string       `json:"_id"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"paymentStatus,omitempty"`
	Paid          bool         `json:"paid,omitempty"`
	RenterContact *ContactInfo `json:"renterContact,omitempty"`
	CustomerName  string       `json:"customerName,omitempty"`
	CustomerPhone string       `json:"customerPhone,omitempty"`
	Address       string       `json:"address,omitempty"`
	Date          string       `json:"date,omitempty"`
	StartDate     string       `json:"startDate,omitempty"`
	EndDate       string       `json:"endDate,omitempty"`
	TotalPrice    float64      `json:"totalPrice,omitempty"`
	Property      *PropertyRef `json:"propertyId,omitempty"`
}

// IsPaid reports whether payment has been confirmed, across both wire shapes.
func (b Booking) IsPaid() bool {
	return b.Paid || b.PaymentStatus == PaymentPaid
}

// Contact unifies the two wire shapes into one contact block.
func (b Booking) Contact() ContactInfo {
	if b.RenterContact != nil {
		return *b.RenterContact
	}
	return ContactInfo{
		FullName: b.CustomerName,
		Phone:    b.CustomerPhone,
		Address:  b.Address,
	}
}

// Redacted returns a copy safe to render: when the booking is unpaid, every
// contact field is zeroed. The reconciler keeps the full record; this is a
// read-time projection applied at the presentation boundary.
func (b Booking) Redacted() Booking {
	if b.IsPaid() {
		return b
	}
	out := b
	out.RenterContact = nil
	out.CustomerName = ""
	out.CustomerPhone = ""
	out.Address = ""
	return out
}
