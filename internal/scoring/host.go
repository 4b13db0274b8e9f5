package scoring

import "encoding/json"

// nullResult is returned by ScoreReportJSON when the result cannot be
// serialized.
var nullResult = []byte("null")

// ScoreReportJSON scores text with DefaultConfig and returns the result as
// JSON. Embedding hosts get the literal null instead of an error.
func ScoreReportJSON(text string) []byte {
	out, err := json.Marshal(Evaluate(text, DefaultConfig()))
	if err != nil {
		return nullResult
	}
	return out
}
