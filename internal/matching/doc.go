// Package matching ranks candidates against one employer's requirements.
//
// Every candidate goes through the same steps: candidate-authored exclusions
// first, employer-authored eliminations second and category scoring last.
// Candidates that survive are ranked by descending score. All functions are
// pure and safe to call concurrently.
package matching
