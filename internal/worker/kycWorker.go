package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/safetrain/internal/stream"
)

// KycSubmittedWorker consumes kyc.submitted events until ctx is cancelled.
func (wk *Worker) KycSubmittedWorker(ctx context.Context) error {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: kycSubmittedGroupID,
		Topic:   stream.KycSubmittedTopic,
	})
	if err != nil {
		return fmt.Errorf("create kyc consumer: %w", err)
	}
	defer consumer.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		event := consumer.Poll(pollTimeoutMs)
		switch e := event.(type) {
		case *kafka.Message:
			if err := wk.handleKycSubmitted(ctx, e.Value); err != nil {
				wk.Logger.Error("kyc submitted event failed", "partition", e.TopicPartition.String(), "error", err)
			}
		case kafka.Error:
			wk.Logger.Error("kyc consumer error", "error", e)
		}
	}
}

// handleKycSubmitted archives the submitted documents when an archive is configured
// and tells the account holder their documents are under review.
func (wk *Worker) handleKycSubmitted(ctx context.Context, payload []byte) error {
	var event stream.KycSubmitted
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	kyc, found, err := wk.DB.KYC().GetByAccountID(ctx, event.AccountID)
	if err != nil {
		return err
	}
	if !found {
		wk.Logger.Warn("kyc record missing for submitted event", "account_id", event.AccountID)
		return nil
	}

	user, found, err := wk.DB.User().GetOne(ctx, event.AccountID)
	if err != nil {
		return err
	}
	if !found {
		wk.Logger.Warn("account missing for submitted event", "account_id", event.AccountID)
		return nil
	}

	archived := []string{}

	if wk.Archiver != nil && wk.Archiver.Enabled() {
		documents := []struct {
			name string
			data []byte
		}{
			{"id-photo", kyc.IDPhoto},
			{"proof-of-address", kyc.ProofOfAddress},
		}

		for _, doc := range documents {
			publicID := fmt.Sprintf("account-%d-%s", kyc.AccountID, doc.name)

			url, err := wk.Archiver.UploadBytes(ctx, publicID, doc.data)
			if err != nil {
				return fmt.Errorf("archive %s: %w", doc.name, err)
			}

			archived = append(archived, url)
		}
	}

	emailData := wk.Helper.NewEmailData()
	emailData["Name"] = user.Name
	emailData["IDType"] = kyc.IDType
	emailData["Archived"] = archived

	return wk.Mailer.Send(user.Email, emailData, "kyc-received.tmpl")
}
