package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"schooldesk_backend/internals/features/school/admissions/dto"
	"schooldesk_backend/internals/features/school/admissions/model"
	"schooldesk_backend/internals/features/school/admissions/repository"
	helper "schooldesk_backend/internals/helpers"
	helperOSS "schooldesk_backend/internals/helpers/oss"
)

const (
	uploadDir       = "admissions"
	maxDocumentSize = int64(5 * 1024 * 1024)
)

// dokumen pendaftaran: jpg/png/pdf
var allowedDocumentExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}

var commTypes = map[string]string{
	"email":     model.CommEmail,
	"phone":     model.CommPhone,
	"in_person": model.CommMeeting,
}

type AdmissionService struct {
	Repo repository.AdmissionRepository
	Blob helperOSS.BlobService // nil = upload dokumen dimatikan
	Now  func() time.Time
}

func NewAdmissionService(repo repository.AdmissionRepository, blob helperOSS.BlobService) *AdmissionService {
	return &AdmissionService{Repo: repo, Blob: blob, Now: time.Now}
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", helper.ErrInvalid, fmt.Sprintf(format, a...))
}

// CreateEnquiry: status NEW + admission process dengan semua dokumen MISSING.
func (s *AdmissionService) CreateEnquiry(ctx context.Context, req dto.EnquiryRequest) (*model.ProspectiveStudentModel, error) {
	now := s.Now()
	m := req.ToModel()
	m.Status = model.StatusNew
	m.AppliedDate, m.LastUpdateDate = now, now

	p := &model.AdmissionProcessModel{Documents: datatypes.NewJSONType(model.InitialDocuments())}
	if err := s.Repo.CreateEnquiry(ctx, m, p); err != nil {
		return nil, err
	}
	m.Process = p
	log.Info().Str("enquiry_id", m.ID.String()).Str("grade", m.GradeApplying).Msg("[admissions] enquiry created")
	return m, nil
}

func (s *AdmissionService) ListEnquiries(ctx context.Context, p dto.ListParams) ([]model.ProspectiveStudentModel, int64, error) {
	for _, st := range p.Statuses {
		if !model.IsValidStatus(st) {
			return nil, 0, invalid("status %q tidak dikenal", st)
		}
	}
	return s.Repo.ListEnquiries(ctx, p)
}

func (s *AdmissionService) GetEnquiry(ctx context.Context, id uuid.UUID) (*model.ProspectiveStudentModel, error) {
	return s.Repo.GetEnquiry(ctx, id)
}

func (s *AdmissionService) UpdateEnquiry(ctx context.Context, id uuid.UUID, req dto.UpdateEnquiryRequest) (*model.ProspectiveStudentModel, error) {
	m, err := s.Repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(m)
	m.LastUpdateDate = s.Now()
	if err := s.Repo.SaveEnquiry(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *AdmissionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.ProspectiveStudentModel, error) {
	if !model.IsValidStatus(status) {
		return nil, invalid("status %q tidak dikenal", status)
	}
	m, err := s.Repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Status = status
	m.LastUpdateDate = s.Now()
	if err := s.Repo.SaveEnquiry(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

/*
BuildProgress menyusun timeline dari Track. Step sebelum status sekarang
selesai, step sekarang current, NextStep = step berikutnya ("" di akhir).
REJECTED di luar track: tidak ada step current/selesai.
*/
func BuildProgress(status string, p *model.AdmissionProcessModel) dto.Progress {
	idx := -1
	for i, st := range model.Track {
		if st == status {
			idx = i
		}
	}
	out := dto.Progress{
		CurrentStatus:  status,
		CurrentStep:    idx + 1,
		CompletedSteps: []string{},
		Timeline:       make([]dto.TimelineStep, 0, len(model.Track)),
		Documents:      model.InitialDocuments(),
	}
	for i, st := range model.Track {
		step := dto.TimelineStep{Step: i + 1, Status: st, Completed: idx > i, Current: idx == i}
		if step.Completed {
			out.CompletedSteps = append(out.CompletedSteps, st)
		}
		out.Timeline = append(out.Timeline, step)
	}
	if idx >= 0 && idx+1 < len(model.Track) {
		out.NextStep = model.Track[idx+1]
	}
	if p != nil {
		if docs := p.Documents.Data(); docs != nil {
			out.Documents = docs
		}
		out.InterviewDate = p.InterviewDate
		out.AssignedClassID = p.AssignedClassID
	}
	return out
}

func (s *AdmissionService) Progress(ctx context.Context, id uuid.UUID) (*dto.Progress, error) {
	m, err := s.Repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	out := BuildProgress(m.Status, m.Process)
	return &out, nil
}

// UpdateProgress: jadwal interview, kelas, nomor induk, status dan note dalam satu transaksi.
func (s *AdmissionService) UpdateProgress(ctx context.Context, id uuid.UUID, req dto.ProgressUpdateRequest, actor *uuid.UUID) (*dto.Progress, error) {
	if req.Status != nil && !model.IsValidStatus(*req.Status) {
		return nil, invalid("status %q tidak dikenal", *req.Status)
	}
	m, err := s.Repo.GetEnquiry(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.GetProcess(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.InterviewDate != nil {
		t := req.InterviewDate.UTC()
		p.InterviewDate = &t
	}
	if req.InterviewNotes != nil {
		p.InterviewNotes = req.InterviewNotes
	}
	if req.AssignedClassID != nil {
		p.AssignedClassID = req.AssignedClassID
	}
	if req.AdmissionNumber != nil {
		p.AdmissionNumber = req.AdmissionNumber
	}
	if req.Status != nil {
		m.Status = *req.Status
		if m.Status == model.StatusApproved {
			p.ApprovedBy = actor
		}
	}
	m.LastUpdateDate = s.Now()

	var note *model.AdmissionNoteModel
	if c := strings.TrimSpace(req.Notes); c != "" {
		note = &model.AdmissionNoteModel{ProspectiveStudentID: id, Content: c, CreatedBy: actor}
	}
	if err := s.Repo.UpdateProgress(ctx, m, p, note); err != nil {
		return nil, err
	}
	out := BuildProgress(m.Status, p)
	return &out, nil
}

func validateDocument(docType string, fh *multipart.FileHeader) error {
	if !model.IsRequiredDocument(docType) {
		return invalid("jenis dokumen %q tidak dikenal", docType)
	}
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if !allowedDocumentExt[strings.ToLower(filepath.Ext(fh.Filename))] {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Dokumen harus JPG, PNG, atau PDF")
	}
	if fh.Size > maxDocumentSize {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran dokumen maksimal 5MB")
	}
	return nil
}

// UploadDocument: file masuk ke submitted, status dokumen kembali PENDING.
func (s *AdmissionService) UploadDocument(ctx context.Context, id uuid.UUID, docType string, fh *multipart.FileHeader) (*model.DocumentState, error) {
	docType = strings.ToUpper(strings.TrimSpace(docType))
	if err := validateDocument(docType, fh); err != nil {
		return nil, err
	}
	if s.Blob == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "File storage belum dikonfigurasi")
	}
	p, err := s.Repo.GetProcess(ctx, id)
	if err != nil {
		return nil, err
	}

	dir := fmt.Sprintf("%s/%s/%s", uploadDir, id, strings.ToLower(docType))
	url, contentType, err := s.Blob.UploadFile(ctx, dir, fh)
	if err != nil {
		return nil, err
	}

	docs := p.Documents.Data().Clone()
	if docs == nil {
		docs = model.InitialDocuments()
	}
	st := docs[docType]
	st.Submitted = append(st.Submitted, model.SubmittedDocument{
		URL:         url,
		FileName:    fh.Filename,
		ContentType: contentType,
		UploadedAt:  s.Now().UTC(),
	})
	st.Status = model.DocPending
	st.RejectionReason = ""
	docs[docType] = st
	p.Documents = datatypes.NewJSONType(docs)

	if err := s.Repo.SaveProcess(ctx, p); err != nil {
		if derr := s.Blob.DeleteByPublicURL(ctx, url); derr != nil {
			log.Warn().Err(derr).Str("url", url).Msg("[admissions] rollback upload failed")
		}
		return nil, err
	}
	return &st, nil
}

// VerifyDocument: VERIFIED/REJECTED; dokumen yang belum diupload tidak bisa diverifikasi.
func (s *AdmissionService) VerifyDocument(ctx context.Context, id uuid.UUID, docType string, req dto.VerifyDocumentRequest) (*model.DocumentState, error) {
	docType = strings.ToUpper(strings.TrimSpace(docType))
	if !model.IsRequiredDocument(docType) {
		return nil, invalid("jenis dokumen %q tidak dikenal", docType)
	}
	if req.Status != model.DocVerified && req.Status != model.DocRejected {
		return nil, invalid("status verifikasi harus VERIFIED atau REJECTED")
	}
	p, err := s.Repo.GetProcess(ctx, id)
	if err != nil {
		return nil, err
	}
	docs := p.Documents.Data().Clone()
	st := docs[docType]
	if len(st.Submitted) == 0 {
		return nil, invalid("dokumen %s belum diupload", docType)
	}
	st.Status = req.Status
	st.RejectionReason = ""
	if req.Status == model.DocRejected {
		st.RejectionReason = strings.TrimSpace(req.Remarks)
	}
	docs[docType] = st
	p.Documents = datatypes.NewJSONType(docs)
	if err := s.Repo.SaveProcess(ctx, p); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *AdmissionService) Documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error) {
	p, err := s.Repo.GetProcess(ctx, id)
	if err != nil {
		return nil, err
	}
	if docs := p.Documents.Data(); docs != nil {
		return docs, nil
	}
	return model.InitialDocuments(), nil
}

func (s *AdmissionService) Notes(ctx context.Context, id uuid.UUID) ([]model.AdmissionNoteModel, error) {
	if _, err := s.Repo.GetEnquiry(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.ListNotes(ctx, id)
}

func (s *AdmissionService) AddNote(ctx context.Context, id uuid.UUID, content string, actor *uuid.UUID) (*model.AdmissionNoteModel, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("catatan kosong")
	}
	n := &model.AdmissionNoteModel{ProspectiveStudentID: id, Content: content, CreatedBy: actor}
	if err := s.Repo.AddNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *AdmissionService) Communications(ctx context.Context, id uuid.UUID) ([]model.AdmissionCommunicationModel, error) {
	if _, err := s.Repo.GetEnquiry(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.ListCommunications(ctx, id)
}

// AddCommunication: in_person dicatat sebagai MEETING, arah default OUTGOING.
func (s *AdmissionService) AddCommunication(ctx context.Context, id uuid.UUID, req dto.CommunicationRequest, staff *uuid.UUID) (*model.AdmissionCommunicationModel, error) {
	ct, ok := commTypes[req.Type]
	if !ok {
		return nil, invalid("tipe komunikasi %q tidak dikenal", req.Type)
	}
	direction := model.DirectionOutgoing
	if strings.EqualFold(req.Direction, model.DirectionIncoming) {
		direction = model.DirectionIncoming
	}
	notes := strings.TrimSpace(req.Message)
	if extra := strings.TrimSpace(req.Notes); extra != "" {
		notes += "\n\nAdditional Notes: " + extra
	}
	c := &model.AdmissionCommunicationModel{
		ProspectiveStudentID: id,
		CommunicationType:    ct,
		Direction:            direction,
		Notes:                notes,
		StaffID:              staff,
		CommunicationDate:    s.Now().UTC(),
	}
	if err := s.Repo.AddCommunication(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *AdmissionService) Stats(ctx context.Context) (dto.Stats, error) {
	counts, err := s.Repo.CountByStatus(ctx)
	if err != nil {
		return dto.Stats{}, err
	}
	return dto.StatsFromCounts(counts), nil
}
