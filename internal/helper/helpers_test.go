package helper

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (rr *recordingReporter) ReportServerError(r *http.Request, err error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.errs = append(rr.errs, err)
}

func TestBackgroundTask_ReportsErrorsAndPanics(t *testing.T) {
	var wg sync.WaitGroup
	reporter := &recordingReporter{}
	h := New("http://localhost", &wg, reporter)

	h.BackgroundTask(nil, func() error { return nil })
	h.BackgroundTask(nil, func() error { return errors.New("mail bounced") })
	h.BackgroundTask(nil, func() error { panic("nil map write") })

	wg.Wait()

	assert.Len(t, reporter.errs, 2)
	assert.ElementsMatch(t, []string{"mail bounced", "nil map write"}, []string{reporter.errs[0].Error(), reporter.errs[1].Error()})
}

func TestNewEmailData(t *testing.T) {
	var wg sync.WaitGroup
	h := New("https://safetrain.example", &wg, nil)

	assert.Equal(t, "https://safetrain.example", h.NewEmailData()["BaseURL"])
}
