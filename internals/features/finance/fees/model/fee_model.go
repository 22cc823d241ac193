package model

import (
	"time"

	"github.com/google/uuid"

	"schooldesk_backend/internals/constants"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	"schooldesk_backend/internals/helpers/dbtime"
)

const (
	TypeTuition       = "TUITION"
	TypeExamination   = "EXAMINATION"
	TypeTransport     = "TRANSPORT"
	TypeLibrary       = "LIBRARY"
	TypeLaboratory    = "LABORATORY"
	TypeMiscellaneous = "MISCELLANEOUS"

	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusOverdue = "OVERDUE"
	StatusPartial = "PARTIAL"
)

type FeeModel struct {
	ID             uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID      uuid.UUID   `gorm:"column:student_id;type:uuid;not null;index" json:"studentId"`
	FeeType        string      `gorm:"column:fee_type;size:20;not null" json:"feeType"`
	Amount         float64     `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	DueDate        dbtime.Date `gorm:"column:due_date;type:date;not null;index" json:"dueDate"`
	Status         string      `gorm:"column:status;size:10;not null;default:PENDING;index" json:"status"`
	PaymentDate    *time.Time  `gorm:"column:payment_date" json:"paymentDate,omitempty"`
	PaymentMethod  *string     `gorm:"column:payment_method;size:50" json:"paymentMethod,omitempty"`
	ReceiptNumber  *string     `gorm:"column:receipt_number;size:50" json:"receiptNumber,omitempty"`
	PaymentOrderID *string     `gorm:"column:payment_order_id;size:100;uniqueIndex" json:"paymentOrderId,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Student *studentModel.StudentModel `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
}

func (FeeModel) TableName() string {
	return constants.Table(constants.FeeTable)
}

// Receipt: kuitansi cetak (jumlah + terbilang).
type Receipt struct {
	FeeID           uuid.UUID  `json:"feeId"`
	ReceiptNumber   string     `json:"receiptNumber"`
	StudentName     string     `json:"studentName"`
	AdmissionNumber string     `json:"admissionNumber"`
	ClassName       string     `json:"className"`
	FeeType         string     `json:"feeType"`
	Amount          float64    `json:"amount"`
	AmountInWords   string     `json:"amountInWords"`
	Status          string     `json:"status"`
	DueDate         string     `json:"dueDate"`
	PaymentDate     *time.Time `json:"paymentDate,omitempty"`
	PaymentMethod   string     `json:"paymentMethod,omitempty"`
}
