package decoder

import "github.com/rs/zerolog"

// Reporter lets a caller plug observability into a decode without the
// decoder package depending on any particular metrics stack (spec 6.6:
// the "feature-gated external decoder-trait integration" collaborator,
// reduced to its interface). ReportDecode is called once per completed
// Decode, after normalization, with the syndrome length, the matching
// weight, and the final predicted observable bytes.
type Reporter interface {
	ReportDecode(syndromeLen int, weight int64, predicted []byte)
}

type noopReporter struct{}

func (noopReporter) ReportDecode(int, int64, []byte) {}

// Option configures a Matching at construction time, using the usual
// WithX functional-option convention.
type Option func(*Matching)

// WithLogger attaches a zerolog.Logger to a Matching. The zero value
// (zerolog.Nop()) is used when no logger is supplied, matching zerolog's
// own "silent by default" idiom.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Matching) { m.logger = l }
}

// WithReporter attaches a Reporter a Matching notifies after every
// completed Decode.
func WithReporter(r Reporter) Option {
	return func(m *Matching) {
		if r != nil {
			m.reporter = r
		}
	}
}
