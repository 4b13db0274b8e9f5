package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one scoring batch.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one scored report.
type JUnitTestCase struct {
	XMLName    xml.Name        `xml:"testcase"`
	Name       string          `xml:"name,attr"`
	Classname  string          `xml:"classname,attr"`
	Time       float64         `xml:"time,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	Failure    *JUnitFailure   `xml:"failure,omitempty"`
	Error      *JUnitError     `xml:"error,omitempty"`
}

// JUnitFailure represents a report that must be repaired.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitError represents a report that could not be read.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a scoring batch to JUnit XML format: one test case
// per report, failing when the report must be repaired.
func ConvertToJUnit(b *Batch) *JUnitTestSuites {
	sum := Summarize(b, DefaultConfidenceLevel)
	durationSec := b.Duration.Seconds()

	name := b.Name
	if name == "" {
		name = "grounds"
	}

	suite := JUnitTestSuite{
		Name:      name,
		Tests:     sum.Total,
		Failures:  sum.MustRepair,
		Errors:    sum.Errors,
		Time:      durationSec,
		Timestamp: b.Timestamp.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "run_id", Value: b.RunID},
			{Name: "mean_score", Value: fmt.Sprintf("%.2f", sum.MeanScore)},
		},
		TestCases: make([]JUnitTestCase, 0, len(b.Reports)),
	}

	for _, r := range b.Reports {
		suite.TestCases = append(suite.TestCases, convertReport(name, r))
	}

	return &JUnitTestSuites{
		Tests:      sum.Total,
		Failures:   sum.MustRepair,
		Errors:     sum.Errors,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertReport(classname string, r ScoredReport) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      r.Name,
		Classname: classname,
		Time:      r.Duration.Seconds(),
	}

	if r.Result == nil {
		msg := r.Error
		if msg == "" {
			msg = "report could not be read"
		}
		tc.Error = &JUnitError{Message: msg, Type: "ReadError"}
		return tc
	}

	tc.Properties = []JUnitProperty{
		{Name: "score", Value: fmt.Sprintf("%d", r.Result.Score)},
		{Name: "finish_reason", Value: r.Result.FinishReason.String()},
	}
	if r.Result.MustRepair {
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s: score=%d %s", r.Name, r.Result.Score, r.Result.FinishReason),
			Type:    "MustRepair",
			Body:    failureDetails(r.Result.MissingHeaders, r.Result.EmptySections, r.Result.Notes),
		}
	}
	return tc
}

func failureDetails(missing, empty, notes []string) string {
	var b strings.Builder
	for _, h := range missing {
		fmt.Fprintf(&b, "[MISSING] %s\n", h)
	}
	for _, h := range empty {
		fmt.Fprintf(&b, "[EMPTY] %s\n", h)
	}
	for _, n := range notes {
		fmt.Fprintf(&b, "[NOTE] %s\n", n)
	}
	return b.String()
}

// MarshalJUnit renders b as an indented JUnit XML document.
func MarshalJUnit(b *Batch) ([]byte, error) {
	data, err := xml.MarshalIndent(ConvertToJUnit(b), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(b *Batch, path string) error {
	output, err := MarshalJUnit(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, output, 0644)
}
