package matchers

import (
	"fmt"
	"os"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

type FileContentsMatcher struct {
	Contents types.GomegaMatcher

	contents string
}

func (matcher *FileContentsMatcher) Match(actual interface{}) (bool, error) {
	path, ok := actual.(string)
	if !ok {
		return false, fmt.Errorf("HaveContents expects a file path. Got:\n%s", format.Object(actual, 1))
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	matcher.contents = string(bytes)
	return matcher.Contents.Match(matcher.contents)
}

func (matcher *FileContentsMatcher) FailureMessage(actual interface{}) string {
	return fmt.Sprintf("File %s:\n%s", actual, matcher.Contents.FailureMessage(matcher.contents))
}

func (matcher *FileContentsMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("File %s:\n%s", actual, matcher.Contents.NegatedFailureMessage(matcher.contents))
}
