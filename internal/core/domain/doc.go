// Package domain defines the exam platform's resource models.
//
// Models are plain values decoded from the API; they carry no IO.
//
//   - Exam, ExamFilter: the practice exam catalogue and its search
//   - Statistics: score breakdowns and the high-score table
//   - Credentials: login and registration input
//   - Errors: coded domain errors
package domain
