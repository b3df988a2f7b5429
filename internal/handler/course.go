package handler

import (
	"fmt"
	"net/http"
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

	"golang.org/x/sync/errgroup"
)

const defaultQuestionQueryConcurrency = 8

type QuestionResponseData struct {
	ID            int64  `json:"id"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	CorrectOption string `json:"correct_option"`
}

type CourseResponseData struct {
	ID        int64                  `json:"id"`
	Title     string                 `json:"title"`
	VideoID   string                 `json:"video_id"`
	Level     int                    `json:"level"`
	Questions []QuestionResponseData `json:"questions"`
}

type ProgressResponseData struct {
	CourseID    int64 `json:"course_id"`
	IsCompleted bool  `json:"is_completed"`
}

type quizResponse struct {
	Message string `json:"message"`
	Passed  bool   `json:"passed"`
}

type CourseHandler struct {
	CourseRepo   repository.CourseRepository
	ProgressRepo repository.ProgressRepository
	UserRepo     repository.UserRepository
	Helper       *helper.HelperRepository
	Publisher    stream.Publisher
	ErrHandler   *errHandler.ErrorHandler

	// MaxConcurrency bounds the question queries running at once for one request.
	MaxConcurrency int
}

func NewCourseHandler(handler *CourseHandler) *CourseHandler {
	maxConcurrency := handler.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = defaultQuestionQueryConcurrency
	}

	return &CourseHandler{
		CourseRepo:     handler.CourseRepo,
		ProgressRepo:   handler.ProgressRepo,
		UserRepo:       handler.UserRepo,
		Helper:         handler.Helper,
		Publisher:      handler.Publisher,
		ErrHandler:     handler.ErrHandler,
		MaxConcurrency: maxConcurrency,
	}
}

// HandleCourses lists every course with its questions.
// The question queries run concurrently; each result goes to its course's slot so the order stays level, then id.
// The first failed query cancels the rest and the request fails as a whole.
func (h *CourseHandler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.CourseRepo.GetAll(r.Context())
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if len(courses) == 0 {
		err = response.JSONOk(w, []CourseResponseData{})
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	data := make([]CourseResponseData, len(courses))

	g, gctx := errgroup.WithContext(r.Context())
	g.SetLimit(h.MaxConcurrency)

	for i, course := range courses {
		g.Go(func() error {
			questions, err := h.CourseRepo.GetQuestions(gctx, course.ID)
			if err != nil {
				return fmt.Errorf("questions for course %d: %w", course.ID, err)
			}

			data[i] = newCourseResponseData(course, questions)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = response.JSONOk(w, data)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CourseHandler) HandleUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(r.PathValue("userId"))
	if !ok {
		h.ErrHandler.FailedValidation(w, r, []string{"User ID must be a positive integer"})
		return
	}

	progress, err := h.ProgressRepo.GetByUser(r.Context(), userID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := make([]ProgressResponseData, len(progress))
	for i, p := range progress {
		data[i] = ProgressResponseData{
			CourseID:    p.CourseID,
			IsCompleted: p.IsCompleted,
		}
	}

	err = response.JSONOk(w, data)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleSubmitQuiz records the quiz result for (user, course). Submitting again overwrites the same row.
// A passed quiz moves the user to the next level in the background; that update never fails the request.
func (h *CourseHandler) HandleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID    *int64              `json:"userId"`
		CourseID  *int64              `json:"courseId"`
		Passed    *bool               `json:"passed"`
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.NotNil(input.UserID) && validator.Positive(*input.UserID), "User ID is required")
	input.Validator.Check(validator.NotNil(input.CourseID) && validator.Positive(*input.CourseID), "Course ID is required")
	input.Validator.Check(validator.NotNil(input.Passed), "Passed is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	progress := &models.UserProgress{
		UserID:      *input.UserID,
		CourseID:    *input.CourseID,
		IsCompleted: *input.Passed,
	}

	inserted, err := h.ProgressRepo.Upsert(r.Context(), progress)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if progress.IsCompleted {
		h.advanceLevel(r, progress.UserID, progress.CourseID)
	}

	message := "Progress updated successfully"
	if inserted {
		message = "Progress saved successfully"
	}

	err = response.JSONOk(w, quizResponse{
		Message: message,
		Passed:  progress.IsCompleted,
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *CourseHandler) advanceLevel(r *http.Request, userID, courseID int64) {
	ctx := backgroundContext(r)

	h.Helper.BackgroundTask(r, func() error {
		err := h.UserRepo.AdvanceLevel(ctx, userID, courseID)
		if err != nil {
			metrics.LevelAdvanceFailed()
			return fmt.Errorf("advance level for user %d after course %d: %w", userID, courseID, err)
		}

		return nil
	})

	publishEvent(h.Helper, h.Publisher, r, stream.CoursePassedTopic, userID, stream.CoursePassed{
		UserID:   userID,
		CourseID: courseID,
		PassedAt: time.Now().UTC(),
	})
}

func newCourseResponseData(course models.Course, questions []models.Question) CourseResponseData {
	data := CourseResponseData{
		ID:        course.ID,
		Title:     course.Title,
		VideoID:   course.VideoID,
		Level:     course.Level,
		Questions: make([]QuestionResponseData, len(questions)),
	}

	for i, q := range questions {
		data.Questions[i] = QuestionResponseData{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			CorrectOption: q.CorrectOption,
		}
	}

	return data
}
