package dto

import (
	"strings"

	"github.com/google/uuid"

	"schooldesk_backend/internals/features/finance/fees/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

type CreateFeeRequest struct {
	StudentID     uuid.UUID   `json:"studentId" validate:"required"`
	Amount        float64     `json:"amount" validate:"required,gt=0"`
	DueDate       dbtime.Date `json:"dueDate"`
	FeeType       string      `json:"feeType" validate:"required,oneof=TUITION EXAMINATION TRANSPORT LIBRARY LABORATORY MISCELLANEOUS"`
	Status        string      `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE PARTIAL"`
	PaymentMethod *string     `json:"paymentMethod"`
	ReceiptNumber *string     `json:"receiptNumber"`
}

func (r CreateFeeRequest) ToModel() *model.FeeModel {
	status := r.Status
	if status == "" {
		status = model.StatusPending
	}
	return &model.FeeModel{
		StudentID:     r.StudentID,
		Amount:        r.Amount,
		DueDate:       r.DueDate,
		FeeType:       r.FeeType,
		Status:        status,
		PaymentMethod: trimPtr(r.PaymentMethod),
		ReceiptNumber: trimPtr(r.ReceiptNumber),
	}
}

type UpdateFeeRequest struct {
	Amount        *float64     `json:"amount" validate:"omitempty,gt=0"`
	DueDate       *dbtime.Date `json:"dueDate"`
	FeeType       *string      `json:"feeType" validate:"omitempty,oneof=TUITION EXAMINATION TRANSPORT LIBRARY LABORATORY MISCELLANEOUS"`
	Status        *string      `json:"status" validate:"omitempty,oneof=PENDING PAID OVERDUE PARTIAL"`
	PaymentMethod *string      `json:"paymentMethod"`
	ReceiptNumber *string      `json:"receiptNumber"`
}

func (r UpdateFeeRequest) ApplyToModel(m *model.FeeModel) {
	if r.Amount != nil {
		m.Amount = *r.Amount
	}
	if r.DueDate != nil && !r.DueDate.IsZero() {
		m.DueDate = *r.DueDate
	}
	if r.FeeType != nil {
		m.FeeType = *r.FeeType
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.PaymentMethod != nil {
		m.PaymentMethod = trimPtr(r.PaymentMethod)
	}
	if r.ReceiptNumber != nil {
		m.ReceiptNumber = trimPtr(r.ReceiptNumber)
	}
}

// FeeFilter: Year+Month (1..12) membatasi due_date ke satu bulan kalender.
type FeeFilter struct {
	ClassID   *uuid.UUID
	StudentID *uuid.UUID
	Status    string
	Year      int
	Month     int
}

type PayResponse struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// Notification: payload HTTP notification Midtrans (snake_case dari gateway).
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
