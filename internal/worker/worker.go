package worker

import (
	"context"
	"log/slog"

	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/smtp"
	"github.com/cradoe/safetrain/internal/stream"
)

const (
	// kycSubmittedGroupID is used for workers that act on KYC documents once they are committed
	kycSubmittedGroupID = "kyc-submitted-group"

	pollTimeoutMs = 100
)

// Archiver copies KYC documents to long-term file storage.
type Archiver interface {
	Enabled() bool
	UploadBytes(ctx context.Context, publicID string, data []byte) (string, error)
}

// Our workers typically needs access to database and kafka event stream
// worker-specific dependency can be passed as argument to the worker
type Worker struct {
	KafkaStream *stream.KafkaStream
	DB          repository.Database
	Mailer      smtp.MailerInterface
	Archiver    Archiver
	Helper      *helper.HelperRepository
	Logger      *slog.Logger
}

func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		DB:          wk.DB,
		Mailer:      wk.Mailer,
		Archiver:    wk.Archiver,
		Helper:      wk.Helper,
		Logger:      wk.Logger,
	}
}
