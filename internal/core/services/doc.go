// Package services contains the core business logic for clause-timeline
// analysis.
//
// Services implement the driving ports using driven ports for
// infrastructure. The analysis service orchestrates the document
// pipeline; the RAG service answers grounded questions; the timeline
// functions assemble the final artefact. Services hold no
// infrastructure concerns of their own.
package services
