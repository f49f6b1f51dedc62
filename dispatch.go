// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aeon

// FailureReporter is the executor's failure sink: the destination for
// errors that cannot be delivered to any callback — a double-completion,
// a finalizer error, or a race/zipPar loser's error surfacing after the
// winner already answered.
type FailureReporter interface {
	ReportFailure(err error)
}

// FailureReporterFunc adapts a plain function to FailureReporter.
type FailureReporterFunc func(err error)

// ReportFailure implements FailureReporter.
func (f FailureReporterFunc) ReportFailure(err error) { f(err) }

// NopReporter discards every failure. Useful in tests that assert on
// callback behaviour and do not care about the report_failure sink.
var NopReporter FailureReporter = FailureReporterFunc(func(error) {})
