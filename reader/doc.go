// Package reader provides reading and writing of Apache Parquet files.
//
// Rows are represented as maps keyed by column name, so callers can work
// with files of any schema. Reading loads the whole file into memory; the
// tool layer bounds result sizes at the query level, not here.
//
// # Reading
//
//	r, err := reader.NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	rows, err := r.ReadAll()
//
// # Writing
//
// WriteFile infers a parquet schema from the supplied rows and writes them
// in column order:
//
//	n, err := reader.WriteFile("out.parquet",
//	    []string{"id", "name"},
//	    []map[string]interface{}{{"id": int64(1), "name": "alice"}})
package reader
