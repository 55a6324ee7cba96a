// types.go
package main

import "time"

// Article is the normalized form of one source document. Immutable once
// assembled; consumed exactly once by the writer.
type Article struct {
	Title       string
	Date        time.Time
	Tags        []string
	Category    string
	Description string
	Content     string
	SourceFile  string
}

// ConvertStatus represents the outcome status of converting one document
type ConvertStatus string

const (
	StatusConverted ConvertStatus = "converted"
	StatusSkipped   ConvertStatus = "skipped"
	StatusFailed    ConvertStatus = "failed"
)

// ConvertOutcome is the tagged result of running one document through the
// pipeline. Article is set when converted, Reason when skipped, Err when
// failed.
type ConvertOutcome struct {
	Status  ConvertStatus
	Article *Article
	Reason  string
	Err     error
}

// ConversionResult aggregates one batch run. FailedFiles always equals
// len(Errors); skipped files are not failures.
type ConversionResult struct {
	TotalFiles     int
	ConvertedFiles int
	SkippedFiles   int
	FailedFiles    int
	Articles       []*Article
	Errors         []string
}
