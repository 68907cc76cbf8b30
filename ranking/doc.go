// Package ranking scores corpus vectors against a query vector and selects
// the best matches.
//
// A Strategy receives the query vector, the embedding matrix (one row per
// corpus record, in corpus order), the corpus itself, the number of results
// wanted and a minimum score. Every strategy in this package follows the
// same selection rules:
//   - keep rows whose score is strictly greater than the threshold
//   - order by score, highest first
//   - break ties by corpus position, earlier first
//   - return at most topK results
//
// Cosine is the default. DotProduct is equivalent for unit-length vectors
// and skips the magnitude computation.
package ranking
