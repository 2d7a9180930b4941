package logx

import (
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	// JSON fields.
	regexp.MustCompile(`("[Pp]assword":\s?")[^"]+(")`),
	regexp.MustCompile(`("apiHash":\s?")[^"]+(")`),
	regexp.MustCompile(`("botToken":\s?")[^"]+(")`),
	regexp.MustCompile(`(?s)("phone":\s?"\+?\d{2}).+?(\d{2}")`),
}

type SensitiveDataMasker struct{}

func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}
