// Package files owns report file placement on disk.
//
// Manager resolves report paths against a base directory and writes them
// either atomically (temp file, sync, rename) or in place. Discovery lists
// report files in a directory so the viewer can offer previously written
// reports.
//
//	m := files.NewManager("/srv/grades", logger)
//	err := m.WriteAtomic("FinalGrades.txt", func(w io.Writer) error {
//		return exporter.TextWriter{}.Write(w, rows)
//	})
package files
