// Package types provides type definitions for structured data used throughout the talent-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ErrorKind classifies failures across the extraction, matching and interview subsystems
type ErrorKind string

const (
	// ErrorUnreadableDocument means no text at all could be extracted (fatal)
	ErrorUnreadableDocument ErrorKind = "UnreadableDocument"
	// ErrorStageExtraction means a stage's primary strategy failed and was recovered locally
	ErrorStageExtraction ErrorKind = "StageExtractionFailure"
	// ErrorOracleUnavailable means the oracle is unreachable or not configured
	ErrorOracleUnavailable ErrorKind = "OracleUnavailable"
	// ErrorParseFailure means the oracle returned non-conforming output
	ErrorParseFailure ErrorKind = "ParseFailure"
	// ErrorEvaluationFailure means interview scoring failed after the session became active
	ErrorEvaluationFailure ErrorKind = "EvaluationFailure"
)
