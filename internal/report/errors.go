package report

import "errors"

// ErrUnsupportedLanguage is returned by ParseLanguage for malformed tags.
var ErrUnsupportedLanguage = errors.New("unsupported report language")
