package constants

// Schema diisi dari DB_SCHEMA saat startup (lihat databases.ConnectDB).
var Schema = "school"

const (
	ProfileTable               = "profiles"
	TokenBlacklistTable        = "token_blacklist"
	StudentTable               = "students"
	ClassTable                 = "classes"
	AssignmentTable            = "assignments"
	AssignmentFileTable        = "assignment_files"
	InteractiveAssignmentTable = "interactive_assignments"
	InteractiveQuestionTable   = "interactive_questions"
	InteractiveSubmissionTable = "interactive_submissions"
	InteractiveResponseTable   = "interactive_responses"
	AttendanceTable            = "attendance"
	FeeTable                   = "fees"
	FeedbackTable              = "feedback"
	FeedbackReplyTable         = "feedback_replies"
	SlipFieldTable             = "slip_fields"
	SlipTemplateTable          = "slip_templates"
	SlipTemplateFieldTable     = "slip_template_fields"
	SlipDataTable              = "slip_data"
	IDCardTable                = "id_cards"
	SportsEnrollmentTable      = "sports_enrollments"

	ProspectiveStudentTable      = "prospective_students"
	AdmissionProcessTable        = "admission_processes"
	AdmissionNoteTable           = "admission_notes"
	AdmissionCommunicationTable  = "admission_communications"
	ClassworkTable               = "classwork"
	ClassworkFileTable           = "classwork_files"
	ParentFeedbackTable          = "parent_feedback"
	FeedbackCertificateTable     = "feedback_certificates"
	ParentSubmittedFeedbackTable = "parent_submitted_feedback"
)

// Table mengembalikan nama tabel schema-qualified, mis. "school.students".
func Table(name string) string {
	if Schema == "" {
		return name
	}
	return Schema + "." + name
}
