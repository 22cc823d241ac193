package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schooldesk_backend/internals/features/finance/fees/dto"
	"schooldesk_backend/internals/features/finance/fees/model"
	"schooldesk_backend/internals/features/finance/fees/repository"
	classModel "schooldesk_backend/internals/features/school/classes/main/model"
	classRepo "schooldesk_backend/internals/features/school/classes/main/repository"
	studentModel "schooldesk_backend/internals/features/school/students/model"
	studentRepo "schooldesk_backend/internals/features/school/students/repository"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/dbtime"
)

type fakeGateway struct {
	last *snap.Request
	err  error
}

func (g *fakeGateway) CreateTransaction(req *snap.Request) (string, string, error) {
	g.last = req
	if g.err != nil {
		return "", "", g.err
	}
	return "tok-123", "https://app.sandbox.midtrans.com/snap/v2/vtweb/tok-123", nil
}

type fixture struct {
	svc     *FeeService
	repo    *repository.MemoryFeeRepository
	gw      *fakeGateway
	ana     studentModel.StudentModel
	budi    studentModel.StudentModel
	classA  uuid.UUID
	fixedAt time.Time
}

func strp(s string) *string { return &s }

const testServerKey = "server-key"

// signed melengkapi notifikasi dengan signature_key yang valid.
func signed(n dto.Notification) dto.Notification {
	if n.StatusCode == "" {
		n.StatusCode = "200"
	}
	if n.GrossAmount == "" {
		n.GrossAmount = "100.00"
	}
	n.SignatureKey = NotificationSignature(n.OrderID, n.StatusCode, n.GrossAmount, testServerKey)
	return n
}

func newFixture() *fixture {
	classA := uuid.New()
	classB := uuid.New()
	ana := studentModel.StudentModel{
		ID: uuid.New(), Name: "Ana", AdmissionNumber: strp("ADM-1"), ClassID: &classA,
		ParentEmail: strp("parent@example.com"),
		Class:       &classModel.ClassModel{ID: classA, Name: "Grade 5", Section: "A"},
	}
	budi := studentModel.StudentModel{ID: uuid.New(), Name: "Budi", ClassID: &classB}

	repo := repository.NewMemoryFeeRepository(ana, budi)
	gw := &fakeGateway{}
	fixedAt := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := NewFeeService(
		repo,
		studentRepo.NewMemoryStudentRepository(ana, budi),
		classRepo.NewMemoryClassRepository(*ana.Class, classModel.ClassModel{ID: classB, Name: "Grade 1"}),
	).WithGateway(gw, testServerKey).WithClock(func() time.Time { return fixedAt })
	return &fixture{svc: svc, repo: repo, gw: gw, ana: ana, budi: budi, classA: classA, fixedAt: fixedAt}
}

func (f *fixture) fee(t *testing.T, student uuid.UUID, due string, amount float64) *model.FeeModel {
	d, err := dbtime.ParseDate(due)
	require.NoError(t, err)
	m, err := f.svc.Create(context.Background(), dto.CreateFeeRequest{
		StudentID: student, Amount: amount, DueDate: d, FeeType: model.TypeTuition,
	})
	require.NoError(t, err)
	return m
}

func TestCreateDefaultsToPending(t *testing.T) {
	f := newFixture()
	m := f.fee(t, f.ana.ID, "2024-04-01", 1500)
	assert.Equal(t, model.StatusPending, m.Status)
	assert.Nil(t, m.ReceiptNumber)
}

func TestManualPaidGetsReceipt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := f.fee(t, f.ana.ID, "2024-04-01", 1500)

	paid := model.StatusPaid
	upd, err := f.svc.Update(ctx, m.ID, dto.UpdateFeeRequest{Status: &paid, PaymentMethod: strp(" cash ")})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, upd.Status)
	require.NotNil(t, upd.ReceiptNumber)
	assert.True(t, strings.HasPrefix(*upd.ReceiptNumber, "RCPT-20240310-"))
	assert.Equal(t, "cash", *upd.PaymentMethod)
	require.NotNil(t, upd.PaymentDate)
}

func TestGetByFilterMonthWindowAndClass(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.fee(t, f.ana.ID, "2024-01-31", 100)
	f.fee(t, f.ana.ID, "2024-02-01", 200)
	f.fee(t, f.ana.ID, "2024-02-29", 300)
	f.fee(t, f.budi.ID, "2024-02-10", 400)

	rows, err := f.svc.GetByFilter(ctx, dto.FeeFilter{Year: 2024, Month: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "2024-02-29", rows[0].DueDate.String())

	rows, err = f.svc.GetByFilter(ctx, dto.FeeFilter{Year: 2024, Month: 2, ClassID: &f.classA})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = f.svc.GetByFilter(ctx, dto.FeeFilter{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, helper.ErrInvalid)
}

func TestGetMyFeesByParentEmail(t *testing.T) {
	f := newFixture()
	f.fee(t, f.ana.ID, "2024-04-01", 100)
	f.fee(t, f.budi.ID, "2024-04-01", 100)

	rows, err := f.svc.GetMyFees(context.Background(), "Parent@Example.com")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.ana.ID, rows[0].StudentID)

	_, err = f.svc.GetMyFees(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestPayAndNotificationFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := f.fee(t, f.ana.ID, "2024-04-01", 1520.4)

	resp, err := f.svc.Pay(ctx, m.ID)
	require.NoError(t, err)
	wantOrder := "FEE-" + strings.ReplaceAll(m.ID.String(), "-", "") + "-1710061200"
	assert.Equal(t, wantOrder, resp.OrderID)
	assert.Equal(t, wantOrder, f.gw.last.TransactionDetails.OrderID)
	assert.Equal(t, "tok-123", resp.Token)
	require.NotNil(t, f.gw.last)
	assert.EqualValues(t, 1520, f.gw.last.TransactionDetails.GrossAmt)
	assert.Equal(t, "parent@example.com", f.gw.last.CustomerDetail.Email)

	// status lain tidak mengubah apa pun
	require.NoError(t, f.svc.HandleNotification(ctx, signed(dto.Notification{OrderID: wantOrder, TransactionStatus: "pending"})))
	got, _ := f.svc.GetFeeDetails(ctx, m.ID)
	assert.Equal(t, model.StatusPending, got.Status)

	require.NoError(t, f.svc.HandleNotification(ctx, signed(dto.Notification{
		OrderID: wantOrder, TransactionStatus: "settlement", PaymentType: "bank_transfer",
	})))
	got, _ = f.svc.GetFeeDetails(ctx, m.ID)
	assert.Equal(t, model.StatusPaid, got.Status)
	assert.Equal(t, "bank_transfer", *got.PaymentMethod)
	first := *got.ReceiptNumber

	// idempotent
	require.NoError(t, f.svc.HandleNotification(ctx, signed(dto.Notification{OrderID: wantOrder, TransactionStatus: "settlement"})))
	got, _ = f.svc.GetFeeDetails(ctx, m.ID)
	assert.Equal(t, first, *got.ReceiptNumber)

	_, err = f.svc.Pay(ctx, m.ID)
	assert.ErrorIs(t, err, helper.ErrConflict)
}

func TestCaptureNeedsAcceptedFraudStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := f.fee(t, f.ana.ID, "2024-04-01", 100)
	resp, err := f.svc.Pay(ctx, m.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.HandleNotification(ctx, signed(dto.Notification{OrderID: resp.OrderID, TransactionStatus: "capture", FraudStatus: "challenge"})))
	got, _ := f.svc.GetFeeDetails(ctx, m.ID)
	assert.Equal(t, model.StatusPending, got.Status)

	require.NoError(t, f.svc.HandleNotification(ctx, signed(dto.Notification{OrderID: resp.OrderID, TransactionStatus: "capture", FraudStatus: "accept"})))
	got, _ = f.svc.GetFeeDetails(ctx, m.ID)
	assert.Equal(t, model.StatusPaid, got.Status)
}

func TestNotificationSignature(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := f.fee(t, f.ana.ID, "2024-04-01", 100)
	resp, err := f.svc.Pay(ctx, m.ID)
	require.NoError(t, err)

	bad := dto.Notification{OrderID: resp.OrderID, StatusCode: "200", GrossAmount: "100.00", TransactionStatus: "settlement", SignatureKey: "nope"}
	assert.ErrorIs(t, f.svc.HandleNotification(ctx, bad), helper.ErrForbidden)

	good := bad
	good.SignatureKey = NotificationSignature(resp.OrderID, "200", "100.00", testServerKey)
	require.NoError(t, f.svc.HandleNotification(ctx, good))

	assert.ErrorIs(t, f.svc.HandleNotification(ctx, dto.Notification{OrderID: "x"}), helper.ErrInvalid)
}

func TestNotificationRejectedWithoutServerKey(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := f.fee(t, f.ana.ID, "2024-04-01", 100)
	resp, err := f.svc.Pay(ctx, m.ID)
	require.NoError(t, err)

	f.svc.ServerKey = ""
	err = f.svc.HandleNotification(ctx, dto.Notification{OrderID: resp.OrderID, TransactionStatus: "settlement"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusServiceUnavailable, fe.Code)

	got, _ := f.svc.GetFeeDetails(ctx, m.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestOrderIDFitsMidtransLimit(t *testing.T) {
	f := newFixture()
	m := f.fee(t, f.ana.ID, "2024-04-01", 100)
	resp, err := f.svc.Pay(context.Background(), m.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(f.gw.last.TransactionDetails.OrderID), 50)
	assert.Equal(t, resp.OrderID, f.gw.last.TransactionDetails.OrderID)

	far := time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.LessOrEqual(t, len(OrderID(uuid.New(), far)), 50)
}

func TestPayWithoutGatewayOrFailingGateway(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := f.fee(t, f.ana.ID, "2024-04-01", 100)

	f.gw.err = errors.New("boom")
	_, err := f.svc.Pay(ctx, m.ID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadGateway, fe.Code)

	f.svc.Gateway = nil
	_, err = f.svc.Pay(ctx, m.ID)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusServiceUnavailable, fe.Code)
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "one thousand five hundred twenty rupees only", AmountInWords(1520))
	assert.Equal(t, "ten rupees and fifty paise only", AmountInWords(10.5))
}

func TestReceipt(t *testing.T) {
	f := newFixture()
	m := f.fee(t, f.ana.ID, "2024-04-01", 1520)
	r, err := f.svc.Receipt(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", r.StudentName)
	assert.Equal(t, "ADM-1", r.AdmissionNumber)
	assert.Equal(t, "Grade 5 A", r.ClassName)
	assert.Equal(t, "one thousand five hundred twenty rupees only", r.AmountInWords)
}

func TestExport(t *testing.T) {
	f := newFixture()
	f.fee(t, f.ana.ID, "2024-04-01", 1520)
	data, err := f.svc.Export(context.Background(), dto.FeeFilter{})
	require.NoError(t, err)

	x, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	rows, err := x.GetRows("Fees")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Student", rows[0][1])
	assert.Equal(t, "Ana", rows[1][1])
}

func TestSweepOverdue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	past := f.fee(t, f.ana.ID, "2024-03-09", 100)
	today := f.fee(t, f.ana.ID, "2024-03-10", 100)

	n, err := f.svc.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, _ := f.svc.GetFeeDetails(ctx, past.ID)
	assert.Equal(t, model.StatusOverdue, got.Status)
	got, _ = f.svc.GetFeeDetails(ctx, today.ID)
	assert.Equal(t, model.StatusPending, got.Status)
}
