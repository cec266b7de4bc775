// Package exporter writes and reads final grade reports.
//
// Three encodings are supported:
//
//	text  "Student ID, Student Name, Course Code, Final Grade" lines joined with ", "
//	csv   RFC 4180 with a plain "," separator
//	xlsx  a single "Final Grades" worksheet
//
// WriteFile places a report on disk through files.Manager, atomically by
// default. ReadReport and ReadReportFile load a written report back into a
// Table for display.
package exporter
