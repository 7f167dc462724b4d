package matchers

import (
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

// HaveContents succeeds when actual is the path of a readable file whose
// contents, as a string, satisfy expected. A non-matcher expected value is
// compared with Equal.
func HaveContents(expected interface{}) *FileContentsMatcher {
	matcher, ok := expected.(types.GomegaMatcher)
	if !ok {
		matcher = gomega.Equal(expected)
	}
	return &FileContentsMatcher{Contents: matcher}
}
