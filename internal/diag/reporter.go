package diag

import "sync"

// Reporter is the minimal contract for receiving diagnostics from phases.
type Reporter interface {
	Report(code Code, sev Severity, subject, msg string, notes []Note)
}

// BagReporter writes into a Bag. It is safe for concurrent use.
type BagReporter struct {
	mu  sync.Mutex
	Bag *Bag
}

func (r *BagReporter) Report(code Code, sev Severity, subject, msg string, notes []Note) {
	if r == nil || r.Bag == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Subject:  subject,
		Message:  msg,
		Notes:    notes,
	})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, string, string, []Note) {}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevWarning, subject, msg, nil)
	}
}

// ReportInfo is a shortcut for SevInfo diagnostics.
func ReportInfo(r Reporter, code Code, subject, msg string) {
	if r != nil {
		r.Report(code, SevInfo, subject, msg, nil)
	}
}

// ReportErr forwards a configuration error.
func ReportErr(r Reporter, err *Error) {
	if r == nil || err == nil {
		return
	}
	d := err.Diag
	r.Report(d.Code, d.Severity, d.Subject, d.Message, d.Notes)
}
