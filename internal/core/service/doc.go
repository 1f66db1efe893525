// Package service orchestrates the exam platform use cases on top of the
// API client.
//
//   - AuthService: validates credentials, logs in or registers, and owns
//     persisting the returned session
//   - ExamService: lists (with client-side filtering) and fetches exams
//   - StatisticsService: fetches the performance summary
//
// Services depend on small interfaces so tests can substitute the client.
package service
