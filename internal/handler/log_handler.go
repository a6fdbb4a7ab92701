package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitlog/internal/errors"
	"fitlog/internal/model"
	"fitlog/internal/service"
)

// LogHandler handles exercise log endpoints.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new exercise log handler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// DurationValue carries the duration field as text whether the client sent a
// JSON number, a JSON string, or a form value. Integer validation stays in
// the handler.
type DurationValue string

func (d *DurationValue) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*d = DurationValue(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = DurationValue(s)
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query binding.
func (d *DurationValue) UnmarshalParam(param string) error {
	*d = DurationValue(param)
	return nil
}

// AddExerciseRequest represents an exercise creation request. Duration must
// parse as an integer.
type AddExerciseRequest struct {
	Description string        `json:"description" form:"description" validate:"required"`
	Duration    DurationValue `json:"duration" form:"duration" validate:"required"`
	Date        string        `json:"date" form:"date" validate:"omitempty,datetime=2006-01-02"`
}

// ExerciseResponse represents a newly logged exercise. ID echoes the owning
// user's identifier, not the entry's.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// LogEntry is one exercise inside a log view.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse represents a user's filtered exercise log.
type LogResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	From     string     `json:"from"`
	To       string     `json:"to"`
	Count    int        `json:"count"`
	Log      []LogEntry `json:"log"`
}

func parseUserID(c echo.Context) (primitive.ObjectID, *echo.HTTPError) {
	id, err := primitive.ObjectIDFromHex(c.Param("_id"))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_ID",
		})
	}
	return id, nil
}

// AddExercise godoc
// @Summary Log an exercise for a user
// @Tags exercises
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param _id path string true "User ID"
// @Param request body AddExerciseRequest true "Exercise data"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{_id}/exercises [post]
func (h *LogHandler) AddExercise(c echo.Context) error {
	userID, httpErr := parseUserID(c)
	if httpErr != nil {
		return httpErr
	}

	var req AddExerciseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	duration, err := strconv.Atoi(string(req.Duration))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "duration must be an integer",
			Code:  "INVALID_DURATION",
		})
	}

	exercise, err := h.logService.Add(c.Request().Context(), userID, req.Description, duration, req.Date)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, ExerciseResponse{
		Username:    exercise.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        model.HumanDate(exercise.Date),
		ID:          exercise.UserID,
	})
}

// GetLog godoc
// @Summary Get a user's exercise log
// @Tags exercises
// @Produce json
// @Param _id path string true "User ID"
// @Param from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of entries (0 = unlimited)"
// @Success 200 {object} LogResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{_id}/logs [get]
func (h *LogHandler) GetLog(c echo.Context) error {
	userID, httpErr := parseUserID(c)
	if httpErr != nil {
		return httpErr
	}

	from := c.QueryParam("from")
	to := c.QueryParam("to")
	for _, bound := range []string{from, to} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse(model.DateLayout, bound); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "dates must be in YYYY-MM-DD form",
				Code:  "INVALID_DATE",
			})
		}
	}

	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "limit must be a non-negative integer",
				Code:  "INVALID_LIMIT",
			})
		}
		limit = parsed
	}

	log, err := h.logService.Get(c.Request().Context(), userID, from, to, limit)
	if err != nil {
		mapped := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
	}

	entries := make([]LogEntry, 0, len(log.Entries))
	for _, e := range log.Entries {
		entries = append(entries, LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        model.HumanDate(e.Date),
		})
	}

	return c.JSON(http.StatusOK, LogResponse{
		ID:       log.User.ID.Hex(),
		Username: log.User.Username,
		From:     log.From,
		To:       log.To,
		Count:    len(entries),
		Log:      entries,
	})
}
