package importer

import "fmt"

// RowShapeError reports a row whose field count does not match any
// accepted statement layout. It is a structural defect in the upstream
// column splitting, so callers abort on it.
type RowShapeError struct {
	Line   int
	Fields []string
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("cannot parse row on line %d: unexpected field count %d: %q",
		e.Line, len(e.Fields), e.Fields)
}

// UnknownCardError reports a statement header card number with no
// configured account. The whole statement is unusable without it.
type UnknownCardError struct {
	Number string
}

func (e *UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card number %q", e.Number)
}

// UnresolvedCurrencyError reports a currency name missing from the
// currency table. The transaction is still synthesized, with an empty
// currency on the known posting; the caller decides whether that is
// fatal.
type UnresolvedCurrencyError struct {
	Name string
	Line int
}

func (e *UnresolvedCurrencyError) Error() string {
	return fmt.Sprintf("unrecognized currency name %q on line %d", e.Name, e.Line)
}
