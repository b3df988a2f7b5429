package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/models"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/stream"
)

// Activity log descriptions
const (
	UserActivityLogRegistrationDescription   = "Registered a new account"
	UserActivityLogLoginDescription          = "Logged in"
	UserActivityLogFailedLoginDescription    = "Failed login attempt"
	UserActivityLogLogoutDescription         = "Logged out"
	UserActivityLogPasswordUpdateDescription = "Updated password"
	KycActivityLogSubmissionDescription      = "Submitted KYC documents"
	CourseActivityLogCompletedDescription    = "Completed training"
)

type UserProfileResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	CurrentLevel      int    `json:"current_level"`
	TrainingCompleted bool   `json:"training_completed"`
}

type UserAccountResponse struct {
	UserProfileResponse
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserProfileResponse(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		CurrentLevel:      user.CurrentLevel,
		TrainingCompleted: user.TrainingCompleted,
	}
}

// parseID reads a positive integer id. Anything else is reported as not ok.
func parseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}

	return id, true
}

// backgroundContext keeps request values but outlives the request, for work started by BackgroundTask.
func backgroundContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func recordActivity(h *helper.HelperRepository, repo repository.ActivityRepository, r *http.Request, userID int64, entity, description string) {
	ctx := backgroundContext(r)

	h.BackgroundTask(r, func() error {
		_, err := repo.Insert(ctx, &models.ActivityLog{
			UserID:      userID,
			Entity:      entity,
			EntityId:    strconv.FormatInt(userID, 10),
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("record activity %q: %w", description, err)
		}

		return nil
	})
}

func publishEvent(h *helper.HelperRepository, publisher stream.Publisher, r *http.Request, topic string, key int64, payload any) {
	ctx := backgroundContext(r)

	h.BackgroundTask(r, func() error {
		return publisher.Publish(ctx, topic, strconv.FormatInt(key, 10), payload)
	})
}

// validationMessages turns the password checker's findings into plain messages for the response.
func validationMessages(errs any) []string {
	switch v := errs.(type) {
	case []string:
		return v
	case []error:
		messages := make([]string, len(v))
		for i, err := range v {
			messages[i] = err.Error()
		}
		return messages
	case error:
		return []string{v.Error()}
	default:
		return []string{fmt.Sprint(v)}
	}
}
