package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	groupdomain "github.com/smallbiznis/usergroups/internal/group/domain"
)

type inviteByEmailRequest struct {
	Emails string `json:"emails"`
}

func (s *Server) CreateEmailInvitations(c *gin.Context) {
	userID, ok := s.userIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req inviteByEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.groupSvc.InviteByEmail(c.Request.Context(), userID, c.Param("group_id"), groupdomain.InviteByEmailRequest{
		Emails: req.Emails,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListInvitations(c *gin.Context) {
	userID, ok := s.userIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	invitations, err := s.groupSvc.ListInvitations(c.Request.Context(), userID, c.Param("group_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}

func (s *Server) RedeemInvitation(c *gin.Context) {
	userID, ok := s.userIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.groupSvc.RedeemInvitation(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
