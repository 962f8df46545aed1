package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"salesnav/models"
	"salesnav/services/discovery"
	"salesnav/utils"
)

// DiscoveryHandler drives the wizard and package selection.
type DiscoveryHandler struct {
	Service discovery.DiscoveryService
}

func NewDiscoveryHandler(ds discovery.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{Service: ds}
}

type answerInput struct {
	QuestionID string        `json:"questionId" binding:"required"`
	Value      models.Answer `json:"value"`
}

type selectionInput struct {
	ServiceIDs []string `json:"serviceIds"`
}

func (h *DiscoveryHandler) view(c *gin.Context, status int, sess *models.DiscoverySession, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, discovery.View(sess))
}

func (h *DiscoveryHandler) CreateSessionHandler(c *gin.Context) {
	sess, err := h.Service.Create(c.Request.Context())
	h.view(c, http.StatusCreated, sess, err)
}

func (h *DiscoveryHandler) GetSessionHandler(c *gin.Context) {
	sess, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	h.view(c, http.StatusOK, sess, err)
}

func (h *DiscoveryHandler) AnswerHandler(c *gin.Context) {
	var in answerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sess, err := h.Service.Answer(c.Request.Context(), c.Param("id"), in.QuestionID, in.Value)
	h.view(c, http.StatusOK, sess, err)
}

func (h *DiscoveryHandler) NextHandler(c *gin.Context) {
	sess, err := h.Service.Next(c.Request.Context(), c.Param("id"))
	h.view(c, http.StatusOK, sess, err)
}

func (h *DiscoveryHandler) BackHandler(c *gin.Context) {
	sess, err := h.Service.Back(c.Request.Context(), c.Param("id"))
	h.view(c, http.StatusOK, sess, err)
}

func (h *DiscoveryHandler) TestModeHandler(c *gin.Context) {
	sess, err := h.Service.TestMode(c.Request.Context(), c.Param("id"))
	h.view(c, http.StatusOK, sess, err)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ExportHandler downloads the full answer set as JSON.
func (h *DiscoveryHandler) ExportHandler(c *gin.Context) {
	sess, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	name := sess.Answers.Text("businessName")
	if name == "" {
		name = "export"
	}
	name = unsafeFilename.ReplaceAllString(name, "-")
	c.Header("Content-Disposition", `attachment; filename="client-data-`+name+`.json"`)
	c.JSON(http.StatusOK, sess.Answers)
}

func (h *DiscoveryHandler) PackageHandler(c *gin.Context) {
	view, err := h.Service.Package(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DiscoveryHandler) SelectServicesHandler(c *gin.Context) {
	var in selectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	view, err := h.Service.SelectServices(c.Request.Context(), c.Param("id"), in.ServiceIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DiscoveryHandler) RemovalWarningHandler(c *gin.Context) {
	msg, err := h.Service.RemovalWarning(c.Request.Context(), c.Param("id"), c.Param("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warning": msg})
}
