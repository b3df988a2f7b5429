package handler

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cradoe/safetrain/internal/config"
	"github.com/cradoe/safetrain/internal/context"
	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/helper"
	"github.com/cradoe/safetrain/internal/models"
	"github.com/cradoe/safetrain/internal/password"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/request"
	"github.com/cradoe/safetrain/internal/response"
	"github.com/cradoe/safetrain/internal/session"
	"github.com/cradoe/safetrain/internal/smtp"
	"github.com/cradoe/safetrain/internal/stream"
	"github.com/cradoe/safetrain/internal/validator"

	"github.com/cradoe/gopass"
)

type AuthHandler struct {
	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	Helper       *helper.HelperRepository
	Mailer       smtp.MailerInterface
	Publisher    stream.Publisher
	Sessions     *session.Manager
	Hasher       *password.Hasher
	Config       *config.Config
	Logger       *slog.Logger
	ErrHandler   *errHandler.ErrorHandler
}

func NewAuthHandler(handler *AuthHandler) *AuthHandler {
	return &AuthHandler{
		UserRepo:     handler.UserRepo,
		ActivityRepo: handler.ActivityRepo,
		Helper:       handler.Helper,
		Mailer:       handler.Mailer,
		Publisher:    handler.Publisher,
		Sessions:     handler.Sessions,
		Hasher:       handler.Hasher,
		Config:       handler.Config,
		Logger:       handler.Logger,
		ErrHandler:   handler.ErrHandler,
	}
}

type credentialsInput struct {
	Email     string              `json:"email"`
	Password  string              `json:"password"`
	Validator validator.Validator `json:"-"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    session.User `json:"user"`
}

type checkAuthResponse struct {
	IsLoggedIn bool          `json:"isLoggedIn"`
	User       *session.User `json:"user,omitempty"`
}

// New user registration checks the fields, makes sure the email is not taken and stores a bcrypt hash.
// A signup racing another one for the same email is caught by the unique index and reported the same way.
func (h *AuthHandler) HandleAuthSignup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string              `json:"name"`
		Email     string              `json:"email"`
		Password  string              `json:"password"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Name), "Name is required")
	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.NotBlank(input.Password), "Password is required")

	if validator.NotBlank(input.Email) {
		input.Validator.Check(validator.IsEmail(input.Email), "Must be a valid email address")
	}

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	// It's important that users have a strong password
	if _, errs := gopass.Validate(input.Password); errs != nil {
		h.ErrHandler.FailedValidation(w, r, validationMessages(errs))
		return
	}

	exists, err := h.UserRepo.EmailExists(r.Context(), input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if exists {
		h.ErrHandler.Conflict(w, r, "Email already registered")
		return
	}

	hashedPassword, err := h.Hasher.Hash(input.Password)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	createdUser := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		HashedPassword: hashedPassword,
	}

	userID, err := h.UserRepo.Insert(r.Context(), createdUser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			h.ErrHandler.Conflict(w, r, "Email already registered")
			return
		}

		h.ErrHandler.ServerError(w, r, err)
		return
	}

	recordActivity(h.Helper, h.ActivityRepo, r, userID, repository.ActivityLogUserEntity, UserActivityLogRegistrationDescription)

	h.Helper.BackgroundTask(r, func() error {
		emailData := h.Helper.NewEmailData()
		emailData["Name"] = createdUser.Name

		return h.Mailer.Send(createdUser.Email, emailData, "welcome.tmpl")
	})

	publishEvent(h.Helper, h.Publisher, r, stream.UserRegisteredTopic, userID, stream.UserRegistered{
		UserID:       userID,
		Email:        createdUser.Email,
		Name:         createdUser.Name,
		RegisteredAt: time.Now().UTC(),
	})

	err = response.JSONOkMessage(w, "User registered successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleAuthLogin answers unknown emails and wrong passwords with the same 401.
func (h *AuthHandler) HandleAuthLogin(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if !h.validCredentialsInput(w, r, &input) {
		return
	}

	user, found, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.InvalidCredentials(w, r)
		return
	}

	if !h.passwordMatches(user, input.Password, false) {
		recordActivity(h.Helper, h.ActivityRepo, r, user.ID, repository.ActivityLogUserEntity, UserActivityLogFailedLoginDescription)
		h.ErrHandler.InvalidCredentials(w, r)
		return
	}

	h.startSession(w, r, user)
}

// HandleAuthSignin is the older login endpoint. Unlike /user/login it reports unknown emails as 404.
func (h *AuthHandler) HandleAuthSignin(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if !h.validCredentialsInput(w, r, &input) {
		return
	}

	user, found, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !found {
		h.ErrHandler.NotFoundWithMessage(w, r, "User not found")
		return
	}

	if !h.passwordMatches(user, input.Password, h.Config.Auth.LegacyPlaintextSignin) {
		recordActivity(h.Helper, h.ActivityRepo, r, user.ID, repository.ActivityLogUserEntity, UserActivityLogFailedLoginDescription)
		h.ErrHandler.InvalidCredentials(w, r)
		return
	}

	h.startSession(w, r, user)
}

func (h *AuthHandler) HandleCheckAuth(w http.ResponseWriter, r *http.Request) {
	data := checkAuthResponse{}

	if sess := context.ContextGetSession(r); sess != nil {
		data.IsLoggedIn = true
		data.User = &sess.User
	}

	err := response.JSONOk(w, data)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleLogout destroys the server-side session named by the cookie and expires the cookie.
// Logging out without a session still succeeds.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.Sessions.CookieName())
	if err == nil && cookie.Value != "" {
		if err := h.Sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.ErrHandler.ServerError(w, r, err)
			return
		}
	}

	if sess := context.ContextGetSession(r); sess != nil {
		recordActivity(h.Helper, h.ActivityRepo, r, sess.User.ID, repository.ActivityLogUserEntity, UserActivityLogLogoutDescription)
	}

	http.SetCookie(w, h.Sessions.ExpiredCookie())

	err = response.JSONOkMessage(w, "Logged out successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AuthHandler) HandlePasswordUpdate(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	if !h.validCredentialsInput(w, r, &input) {
		return
	}

	hashedPassword, err := h.Hasher.Hash(input.Password)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	updated, err := h.UserRepo.UpdatePasswordByEmail(r.Context(), input.Email, hashedPassword)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if !updated {
		h.ErrHandler.NotFoundWithMessage(w, r, "User not found")
		return
	}

	ctx := backgroundContext(r)

	h.Helper.BackgroundTask(r, func() error {
		user, found, err := h.UserRepo.GetByEmail(ctx, input.Email)
		if err != nil || !found {
			return err
		}

		_, err = h.ActivityRepo.Insert(ctx, &models.ActivityLog{
			UserID:      user.ID,
			Entity:      repository.ActivityLogUserEntity,
			EntityId:    strconv.FormatInt(user.ID, 10),
			Description: UserActivityLogPasswordUpdateDescription,
		})
		return err
	})

	err = response.JSONOkMessage(w, "Password updated successfully")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *AuthHandler) validCredentialsInput(w http.ResponseWriter, r *http.Request, input *credentialsInput) bool {
	input.Validator.Check(validator.NotBlank(input.Email), "Email is required")
	input.Validator.Check(validator.NotBlank(input.Password), "Password is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return false
	}

	return true
}

// passwordMatches compares against the stored bcrypt hash. When allowPlaintext is set, a stored value
// that is not a bcrypt hash is compared as plaintext, and every such match is logged.
func (h *AuthHandler) passwordMatches(user *models.User, plaintext string, allowPlaintext bool) bool {
	matches, err := h.Hasher.Matches(plaintext, user.HashedPassword)
	if err == nil {
		return matches
	}

	if allowPlaintext && subtle.ConstantTimeCompare([]byte(plaintext), []byte(user.HashedPassword)) == 1 {
		h.Logger.Warn("plaintext password accepted on legacy signin", "user_id", user.ID)
		return true
	}

	h.Logger.Warn("stored password is not a bcrypt hash", "user_id", user.ID, "error", err)
	return false
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	sess, token, err := h.Sessions.Create(r.Context(), session.User{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		CurrentLevel: user.CurrentLevel,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	http.SetCookie(w, h.Sessions.Cookie(token, sess.ExpiresAt))

	recordActivity(h.Helper, h.ActivityRepo, r, user.ID, repository.ActivityLogUserEntity, UserActivityLogLoginDescription)

	err = response.JSONOk(w, loginResponse{
		Message: "Login successful",
		User:    sess.User,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
