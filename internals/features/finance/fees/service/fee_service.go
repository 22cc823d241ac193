package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/divan/num2words"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/features/finance/fees/dto"
	"schooldesk_backend/internals/features/finance/fees/model"
	"schooldesk_backend/internals/features/finance/fees/repository"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
	classRepo "schooldesk_backend/internals/features/school/classes/main/repository"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
	helperXLSX "schooldesk_backend/internals/helpers/xlsx"
)

type FeeService struct {
	Repo     repository.FeeRepository
	Students studentRepo.StudentRepository
	Classes  classRepo.ClassRepository

	Gateway   PaymentGateway // nil -> Pay 503
	ServerKey string         // kosong -> signature notifikasi tidak dicek

	nowFunc func() time.Time
}

func NewFeeService(repo repository.FeeRepository, students studentRepo.StudentRepository, classes classRepo.ClassRepository) *FeeService {
	return &FeeService{Repo: repo, Students: students, Classes: classes, nowFunc: time.Now}
}

func (s *FeeService) WithGateway(g PaymentGateway, serverKey string) *FeeService {
	s.Gateway = g
	s.ServerKey = serverKey
	return s
}

func (s *FeeService) WithClock(now func() time.Time) *FeeService {
	s.nowFunc = now
	return s
}

func (s *FeeService) Create(ctx context.Context, req dto.CreateFeeRequest) (*model.FeeModel, error) {
	m := req.ToModel()
	if m.DueDate.IsZero() {
		m.DueDate = dbtime.NewDate(s.nowFunc())
	}
	if m.Status == model.StatusPaid {
		s.markPaid(m, m.PaymentMethod)
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FeeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateFeeRequest) (*model.FeeModel, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasPaid := m.Status == model.StatusPaid
	req.ApplyToModel(m)
	if !wasPaid && m.Status == model.StatusPaid {
		s.markPaid(m, m.PaymentMethod)
	}
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *FeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.Delete(ctx, id)
}

func (s *FeeService) GetFeeDetails(ctx context.Context, id uuid.UUID) (*model.FeeModel, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *FeeService) GetByStudent(ctx context.Context, studentID uuid.UUID) ([]model.FeeModel, error) {
	return s.Repo.List(ctx, dto.FeeFilter{StudentID: &studentID})
}

// GetMyFees: tagihan anak dari parent (email akun login = parentEmail siswa).
func (s *FeeService) GetMyFees(ctx context.Context, email string) ([]model.FeeModel, error) {
	st, err := s.Students.FindByParentEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.GetByStudent(ctx, st.ID)
}

func (s *FeeService) GetByFilter(ctx context.Context, f dto.FeeFilter) ([]model.FeeModel, error) {
	if f.Month != 0 && (f.Month < 1 || f.Month > 12) {
		return nil, fmt.Errorf("%w: month harus 1..12", helper.ErrInvalid)
	}
	return s.Repo.List(ctx, f)
}

func (s *FeeService) GetClasses(ctx context.Context) ([]classModel.ClassModel, error) {
	return s.Classes.FindMany(ctx, nil)
}

// Pay membuat transaksi Snap; order id disimpan agar notifikasi bisa dicocokkan.
func (s *FeeService) Pay(ctx context.Context, id uuid.UUID) (*dto.PayResponse, error) {
	if s.Gateway == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Pembayaran online belum dikonfigurasi")
	}
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status == model.StatusPaid {
		return nil, fmt.Errorf("%w: tagihan sudah lunas", helper.ErrConflict)
	}

	orderID := OrderID(m.ID, s.nowFunc())
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(math.Round(m.Amount)),
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    m.ID.String(),
			Name:  m.FeeType + " fee",
			Price: int64(math.Round(m.Amount)),
			Qty:   1,
		}},
	}
	if m.Student != nil {
		cust := &midtrans.CustomerDetails{FName: m.Student.Name}
		if m.Student.ParentEmail != nil {
			cust.Email = *m.Student.ParentEmail
		}
		req.CustomerDetail = cust
	}

	token, redirect, err := s.Gateway.CreateTransaction(req)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("[FEES] snap create transaction gagal")
		return nil, fiber.NewError(fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
	}

	m.PaymentOrderID = &orderID
	if err := s.Repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return &dto.PayResponse{OrderID: orderID, Token: token, RedirectURL: redirect}, nil
}

// OrderID: FEE-<uuid tanpa strip>-<unix> (47 karakter). Midtrans membatasi
// transaction_details.order_id maksimal 50 karakter.
func OrderID(id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("FEE-%s-%d", strings.ReplaceAll(id.String(), "-", ""), at.Unix())
}

// HandleNotification: settlement / capture (fraud accept) -> PAID + nomor kuitansi.
// Notifikasi ulang untuk tagihan yang sudah PAID diabaikan.
func (s *FeeService) HandleNotification(ctx context.Context, n dto.Notification) error {
	if strings.TrimSpace(n.OrderID) == "" || strings.TrimSpace(n.TransactionStatus) == "" {
		return fmt.Errorf("%w: payload notifikasi tidak lengkap", helper.ErrInvalid)
	}
	// tanpa server key notifikasi tidak bisa diverifikasi, jadi ditolak
	if s.ServerKey == "" {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Notifikasi pembayaran belum dikonfigurasi")
	}
	want := NotificationSignature(n.OrderID, n.StatusCode, n.GrossAmount, s.ServerKey)
	if !validSignature(want, n.SignatureKey) {
		return fmt.Errorf("%w: signature tidak valid", helper.ErrForbidden)
	}

	m, err := s.Repo.FindByOrderID(ctx, n.OrderID)
	if err != nil {
		return err
	}
	if m.Status == model.StatusPaid {
		return nil
	}

	switch n.TransactionStatus {
	case "settlement":
	case "capture":
		if n.FraudStatus != "" && n.FraudStatus != "accept" {
			log.Warn().Str("order_id", n.OrderID).Str("fraud_status", n.FraudStatus).Msg("[FEES] capture ditahan")
			return nil
		}
	default:
		log.Info().Str("order_id", n.OrderID).Str("status", n.TransactionStatus).Msg("[FEES] status tidak diproses")
		return nil
	}

	method := strings.TrimSpace(n.PaymentType)
	if method == "" {
		method = "midtrans"
	}
	s.markPaid(m, &method)
	return s.Repo.Save(ctx, m)
}

func (s *FeeService) markPaid(m *model.FeeModel, method *string) {
	now := s.nowFunc()
	m.Status = model.StatusPaid
	if m.PaymentDate == nil {
		m.PaymentDate = &now
	}
	if method != nil {
		m.PaymentMethod = method
	}
	if m.ReceiptNumber == nil {
		rn := ReceiptNumber(m.ID, now)
		m.ReceiptNumber = &rn
	}
}

// ReceiptNumber: "RCPT-20240301-1A2B3C4D" (8 hex pertama id).
func ReceiptNumber(id uuid.UUID, at time.Time) string {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return fmt.Sprintf("RCPT-%s-%s", at.Format("20060102"), strings.ToUpper(id.String()[:8]))
}

// AmountInWords: 1520.5 -> "one thousand five hundred twenty rupees and fifty paise only".
func AmountInWords(amount float64) string {
	whole := int(amount)
	fraction := int(math.Round((amount - float64(whole)) * 100))
	if fraction == 100 {
		whole++
		fraction = 0
	}
	words := num2words.Convert(whole) + " rupees"
	if fraction > 0 {
		words += " and " + num2words.Convert(fraction) + " paise"
	}
	return words + " only"
}

func (s *FeeService) Receipt(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := &model.Receipt{
		FeeID:         m.ID,
		FeeType:       m.FeeType,
		Amount:        m.Amount,
		AmountInWords: AmountInWords(m.Amount),
		Status:        m.Status,
		DueDate:       m.DueDate.String(),
		PaymentDate:   m.PaymentDate,
	}
	if m.ReceiptNumber != nil {
		r.ReceiptNumber = *m.ReceiptNumber
	}
	if m.PaymentMethod != nil {
		r.PaymentMethod = *m.PaymentMethod
	}
	if st := m.Student; st != nil {
		r.StudentName = st.Name
		if st.AdmissionNumber != nil {
			r.AdmissionNumber = *st.AdmissionNumber
		}
		if st.Class != nil {
			r.ClassName = strings.TrimSpace(st.Class.Name + " " + st.Class.Section)
		}
	}
	return r, nil
}

var exportHeaders = []string{"Receipt No", "Student", "Admission No", "Class", "Fee Type", "Amount", "Due Date", "Status", "Payment Date", "Payment Method"}

// Export: workbook satu sheet "Fees" sesuai filter.
func (s *FeeService) Export(ctx context.Context, f dto.FeeFilter) ([]byte, error) {
	fees, err := s.GetByFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(fees))
	for _, m := range fees {
		var student, adm, class, receipt, paidAt, method string
		if m.Student != nil {
			student = m.Student.Name
			if m.Student.AdmissionNumber != nil {
				adm = *m.Student.AdmissionNumber
			}
			if m.Student.Class != nil {
				class = strings.TrimSpace(m.Student.Class.Name + " " + m.Student.Class.Section)
			}
		}
		if m.ReceiptNumber != nil {
			receipt = *m.ReceiptNumber
		}
		if m.PaymentDate != nil {
			paidAt = dbtime.ISODate(*m.PaymentDate)
		}
		if m.PaymentMethod != nil {
			method = *m.PaymentMethod
		}
		rows = append(rows, []any{receipt, student, adm, class, m.FeeType, m.Amount, m.DueDate.String(), m.Status, paidAt, method})
	}
	return helperXLSX.Build("Fees", exportHeaders, rows)
}

// SweepOverdue: dipanggil cron; PENDING yang lewat jatuh tempo -> OVERDUE.
func (s *FeeService) SweepOverdue(ctx context.Context) (int64, error) {
	return s.Repo.MarkOverdue(ctx, dbtime.NewDate(s.nowFunc()))
}
