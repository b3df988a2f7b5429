package handler

import (
	"net/http"

	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/request"
	"github.com/cradoe/safetrain/internal/response"
	"github.com/cradoe/safetrain/internal/validator"
)

type UserHandler struct {
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	Helper       *helper.HelperRepository
	ErrHandler   *errHandler.ErrorHandler
}

func NewUserHandler(handler *UserHandler) *UserHandler {
	return &UserHandler{
		UserRepo:     handler.UserRepo,
		ActivityRepo: handler.ActivityRepo,
		Helper:       handler.Helper,
		ErrHandler:   handler.ErrHandler,
	}
}

// HandleUIUpdate returns the full account row the dashboard renders, without the password hash.
func (h *UserHandler) HandleUIUpdate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AccountID int64 `json:"account_id"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	user, found, err := h.UserRepo.GetOne(r.Context(), input.AccountID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFoundWithMessage(w, r, "User not found")
		return
	}

	data := UserAccountResponse{
		UserProfileResponse: newUserProfileResponse(user),
		Status:              user.Status,
		CreatedAt:           user.CreatedAt,
	}

	err = response.JSONOk(w, data)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.PathValue("id"))
	if !ok {
		h.ErrHandler.NotFoundWithMessage(w, r, "User not found")
		return
	}

	user, found, err := h.UserRepo.GetOne(r.Context(), userID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFoundWithMessage(w, r, "User not found")
		return
	}

	err = response.JSONOk(w, newUserProfileResponse(user))
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleCompleteTraining marks the user's training as completed. An unknown user changes nothing.
func (h *UserHandler) HandleCompleteTraining(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID    *int64              `json:"userId"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.NotNil(input.UserID) && validator.Positive(*input.UserID), "Missing user ID")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	userID := *input.UserID

	updated, err := h.UserRepo.CompleteTraining(r.Context(), userID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !updated {
		h.ErrHandler.NotFoundWithMessage(w, r, "User not found")
		return
	}

	recordActivity(h.Helper, h.ActivityRepo, r, userID, repository.ActivityLogUserEntity, CourseActivityLogCompletedDescription)

	err = response.JSONOkMessage(w, "Training status updated successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
