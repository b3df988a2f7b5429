package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/metrics"
	"github.com/cradoe/safetrain/internal/models"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/request"
	"github.com/cradoe/safetrain/internal/response"
	"github.com/cradoe/safetrain/internal/stream"
	"github.com/cradoe/safetrain/internal/validator"
)

type kycResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type KycHandler struct {
	KycRepo      repository.KycRepository
	ActivityRepo repository.ActivityRepository
	Helper       *helper.HelperRepository
	Publisher    stream.Publisher
	ErrHandler   *errHandler.ErrorHandler
}

func NewKycHandler(handler *KycHandler) *KycHandler {
	return &KycHandler{
		KycRepo:      handler.KycRepo,
		ActivityRepo: handler.ActivityRepo,
		Helper:       handler.Helper,
		Publisher:    handler.Publisher,
		ErrHandler:   handler.ErrHandler,
	}
}

// HandleKycVerification stores the account's KYC documents and sets the account to pending review.
// Both writes commit together or not at all.
func (h *KycHandler) HandleKycVerification(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AccountID      int64               `json:"account_id"`
		IDNumber       string              `json:"id_number"`
		IDPhoto        string              `json:"id_photo"`
		IDType         string              `json:"id_type"`
		Address        string              `json:"address"`
		ProofOfAddress string              `json:"proof_of_address"`
		Questions      string              `json:"questions"`
		Answers        string              `json:"answers"`
		Validator      validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		metrics.KycSubmitted(metrics.KycOutcomeRejected)
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.Positive(input.AccountID), "Account ID is required")
	input.Validator.Check(validator.NotBlank(input.IDNumber), "ID number is required")
	input.Validator.Check(validator.NotBlank(input.IDPhoto), "ID photo is required")
	input.Validator.Check(validator.NotBlank(input.IDType), "ID type is required")
	input.Validator.Check(validator.NotBlank(input.Address), "Address is required")
	input.Validator.Check(validator.NotBlank(input.ProofOfAddress), "Proof of address is required")
	input.Validator.Check(validator.NotBlank(input.Questions), "Security question is required")
	input.Validator.Check(validator.NotBlank(input.Answers), "Security answer is required")

	idPhoto, err := decodeDocument(input.IDPhoto)
	if validator.NotBlank(input.IDPhoto) {
		input.Validator.Check(err == nil, "ID photo must be base64 encoded")
	}

	proofOfAddress, err := decodeDocument(input.ProofOfAddress)
	if validator.NotBlank(input.ProofOfAddress) {
		input.Validator.Check(err == nil, "Proof of address must be base64 encoded")
	}

	if input.Validator.HasErrors() {
		metrics.KycSubmitted(metrics.KycOutcomeRejected)
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	kyc := &models.KYC{
		AccountID:        input.AccountID,
		IDNumber:         input.IDNumber,
		IDPhoto:          idPhoto,
		IDType:           input.IDType,
		Address:          input.Address,
		ProofOfAddress:   proofOfAddress,
		SecurityQuestion: input.Questions,
		SecurityAnswer:   input.Answers,
	}

	err = h.KycRepo.Submit(r.Context(), kyc)
	if err != nil {
		metrics.KycSubmitted(metrics.KycOutcomeFailed)
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	metrics.KycSubmitted(metrics.KycOutcomeAccepted)

	recordActivity(h.Helper, h.ActivityRepo, r, kyc.AccountID, repository.ActivityLogKycEntity, KycActivityLogSubmissionDescription)

	publishEvent(h.Helper, h.Publisher, r, stream.KycSubmittedTopic, kyc.AccountID, stream.KycSubmitted{
		AccountID:   kyc.AccountID,
		IDType:      kyc.IDType,
		SubmittedAt: time.Now().UTC(),
	})

	err = response.JSONOk(w, kycResponse{
		Success: true,
		Message: "KYC updated and customer status set to pending",
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

var errEmptyDocument = errors.New("empty document")

// decodeDocument accepts standard base64 with or without a data URL prefix.
func decodeDocument(value string) ([]byte, error) {
	if strings.HasPrefix(value, "data:") {
		if _, payload, ok := strings.Cut(value, ";base64,"); ok {
			value = payload
		}
	}

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errEmptyDocument
	}

	return data, nil
}
