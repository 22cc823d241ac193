package policies

import "schooldesk_backend/internals/constants"

const isSelf = "auth.uid() = id"

func role(r string) string {
	return "auth.jwt() ->> 'role' = '" + r + "'"
}

// Default: deskriptor bawaan untuk tabel inti. Subquery ke students
// di-qualify dengan schema yang sama.
func Default(schema string) Set {
	ownStudents := "(SELECT id FROM " + qualified(schema, constants.StudentTable) + " WHERE user_id = auth.uid())"
	ownClasses := "(SELECT class_id FROM " + qualified(schema, constants.StudentTable) + " WHERE user_id = auth.uid())"

	return Set{
		constants.ProfileTable: {
			{Name: "Users can read their own data", Operation: OpSelect, Expression: isSelf},
			{Name: "Users can update their own data", Operation: OpUpdate, Expression: isSelf},
		},
		constants.StudentTable: {
			{Name: "Teachers can view all students", Operation: OpSelect, Expression: role(constants.RoleTeacher)},
			{Name: "Students can only view their own data", Operation: OpSelect, Expression: "auth.uid() = user_id"},
		},
		constants.AssignmentTable: {
			{Name: "Teachers can create homework", Operation: OpInsert, Expression: role(constants.RoleTeacher)},
			{Name: "Teachers can view all homework", Operation: OpSelect, Expression: role(constants.RoleTeacher)},
			{Name: "Students can view their class homework", Operation: OpSelect, Expression: "class_id IN " + ownClasses},
		},
		constants.ClassworkTable: {
			{Name: "Teachers can manage classwork", Operation: OpAll, Expression: role(constants.RoleTeacher)},
			{Name: "Students can view their class classwork", Operation: OpSelect, Expression: "class_id IN " + ownClasses},
		},
		constants.ProspectiveStudentTable: {
			{Name: "Admin can manage admissions", Operation: OpAll, Expression: role(constants.RoleAdmin)},
		},
		constants.FeeTable: {
			{Name: "Admin can manage fees", Operation: OpAll, Expression: role(constants.RoleAdmin)},
			{Name: "Students can view their fees", Operation: OpSelect, Expression: "student_id IN " + ownStudents},
		},
	}
}
