package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	guidesvc "github.com/careerpilot/backend/internal/app/service/guide"
	"github.com/careerpilot/backend/pkg/logctx"
	"github.com/careerpilot/backend/pkg/response"
	"github.com/careerpilot/backend/pkg/types"
)

type BuildGuideRequest struct {
	Answers types.QuestionnaireAnswers `json:"answers" binding:"required"`
}

// @Summary      Build Career Guide
// @Description  Generates a personalized career guide from questionnaire answers. Returns an HTML document or a base64-encoded PDF depending on server configuration.
// @Tags         Guide
// @Accept       json
// @Produce      json
// @Param        request body BuildGuideRequest true "Questionnaire answers"
// @Success      200  {object}  handlers.RespGuideArtifact
// @Router       /api/v1/guide [post]
func ApiBuildGuide(svc *guidesvc.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BuildGuideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		userID := c.GetString("user_id")
		artifact, err := svc.BuildGuide(c.Request.Context(), userID, req.Answers)
		if err != nil {
			switch {
			case errors.Is(err, guidesvc.ErrUnauthorized):
				c.JSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "unauthorized"))
			case errors.Is(err, guidesvc.ErrGenerationTimeout):
				logctx.FromGin(c, log).Warnw("guide generation timed out")
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, "guide generation took too long, please try again"))
			default:
				// Raw model errors stay in the logs; the client gets a
				// friendly retryable message.
				logctx.FromGin(c, log).Errorw("guide generation failed", "error", err.Error())
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, "failed to generate your guide, please try again"))
			}
			return
		}

		c.JSON(http.StatusOK, response.OKT(artifact))
	}
}

func RegisterGuideRoutes(r gin.IRouter, svc *guidesvc.Service, log *zap.SugaredLogger) {
	r.POST("/guide", ApiBuildGuide(svc, log))
}
