package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salesnav/models"
	"salesnav/services/onboarding"
	"salesnav/utils"
)

// OnboardingHandler serves the TOM and asset checklists.
type OnboardingHandler struct {
	Service onboarding.OnboardingService
}

func NewOnboardingHandler(svc onboarding.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: svc}
}

type assetInput struct {
	Provided bool `json:"provided"`
}

func (h *OnboardingHandler) GetTOMHandler(c *gin.Context) {
	list, err := h.Service.Checklist(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OnboardingHandler) UpdateTOMStepHandler(c *gin.Context) {
	stepID, err := strconv.Atoi(c.Param("stepId"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "stepId must be a number")
		return
	}
	var in models.StepStatus
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	list, err := h.Service.UpdateStep(c.Request.Context(), c.Param("id"), stepID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OnboardingHandler) GetAssetsHandler(c *gin.Context) {
	list, err := h.Service.Assets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OnboardingHandler) UpdateAssetHandler(c *gin.Context) {
	var in assetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	list, err := h.Service.UpdateAsset(c.Request.Context(), c.Param("id"), c.Param("assetId"), in.Provided)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
