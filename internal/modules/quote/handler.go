package quote

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotelinker/internal/pkg/response"
)

// successPath is where the frontend routes the user after a submitted quote.
const successPath = "/appointment-success"

type Handler struct {
	service *Service
	store   *Store
}

func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", h.SubmitQuote)
	rg.POST("/quote/sessions", h.CreateSession)
	rg.GET("/quote/sessions/:id", h.GetSession)
	rg.POST("/quote/sessions/:id/next", h.NextStep)
	rg.POST("/quote/sessions/:id/back", h.PrevStep)
}

// SubmitQuote handles the single-shot submit used by clients that run the
// step flow themselves. The whole record is validated with the same rules the
// step endpoints apply.
func (h *Handler) SubmitQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"lead_id":       result.LeadID,
		"notifications": result.Notifications,
		"next":          successPath,
	})
}

// CreateSession opens a server-side form session at step 0.
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.store.Create()
	response.Success(c, http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"step":       sess.Step(),
		"state":      sess.State(),
		"steps":      Steps,
	})
}

// GetSession reports the session's current step and state.
func (h *Handler) GetSession(c *gin.Context) {
	sess := h.store.Get(c.Param("id"))
	if sess == nil {
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
		return
	}

	data := gin.H{
		"session_id": sess.ID,
		"step":       sess.Step(),
		"state":      sess.State(),
	}
	if sess.State() == SessionDone {
		data["lead_id"] = sess.LeadID()
		data["next"] = successPath
	}
	response.Success(c, http.StatusOK, data)
}

// NextStep merges the posted fields into the current step and advances. On
// the last step it hands the accumulated record to the submission
// coordinator instead.
func (h *Handler) NextStep(c *gin.Context) {
	sess := h.store.Get(c.Param("id"))
	if sess == nil {
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
		return
	}

	var patch QuoteRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	fieldErrs, ready, err := sess.ApplyNext(patch)
	if err != nil {
		response.Error(c, http.StatusConflict, "SESSION_CLOSED", "Session has already been submitted")
		return
	}
	if fieldErrs != nil {
		// invalid step: the index does not move and nothing goes out
		response.ValidationError(c, http.StatusUnprocessableEntity, fieldErrs)
		return
	}
	if !ready {
		response.Success(c, http.StatusOK, gin.H{
			"session_id": sess.ID,
			"step":       sess.Step(),
			"state":      sess.State(),
		})
		return
	}

	sess.MarkSubmitting()
	record := sess.Snapshot()
	result, err := h.service.Submit(c.Request.Context(), &record, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		sess.MarkFailed()
		h.writeSubmitError(c, err)
		return
	}
	sess.MarkDone(result.LeadID)

	response.Success(c, http.StatusCreated, gin.H{
		"session_id":    sess.ID,
		"state":         sess.State(),
		"lead_id":       result.LeadID,
		"notifications": result.Notifications,
		"next":          successPath,
	})
}

// PrevStep moves the session one step back; step 0 has no backward move.
func (h *Handler) PrevStep(c *gin.Context) {
	sess := h.store.Get(c.Param("id"))
	if sess == nil {
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Session not found or expired")
		return
	}

	if !sess.Back() {
		response.Error(c, http.StatusConflict, "CANNOT_GO_BACK", "No previous step")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"session_id": sess.ID,
		"step":       sess.Step(),
		"state":      sess.State(),
	})
}

func (h *Handler) writeSubmitError(c *gin.Context, err error) {
	var fieldErrs FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, http.StatusUnprocessableEntity, fieldErrs)
	case errors.Is(err, ErrPersistence):
		response.Error(c, http.StatusBadGateway, "PERSISTENCE_FAILURE",
			"We could not save your quote request. Please try again.")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit quote request")
	}
}
