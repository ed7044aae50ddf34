package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	groupdomain "github.com/smallbiznis/usergroups/internal/group/domain"
)

type createGroupRequest struct {
	Name    string `json:"name"`
	Info    string `json:"info"`
	Website string `json:"website"`
}

type updateGroupRequest struct {
	Name    *string `json:"name"`
	Info    *string `json:"info"`
	Website *string `json:"website"`
}

func (s *Server) CreateGroup(c *gin.Context) {
	userID, ok := s.userIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.groupSvc.Create(c.Request.Context(), userID, groupdomain.CreateGroupRequest{
		Name:    req.Name,
		Info:    req.Info,
		Website: req.Website,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListGroups(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	groups, err := s.groupSvc.List(c.Request.Context(), groupdomain.ListGroupsRequest{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) GetGroup(c *gin.Context) {
	// Viewer identity is optional here; it only shapes the membership
	// flags on the detail payload.
	userID, _ := s.userIDFromRequest(c)

	resp, err := s.groupSvc.Get(c.Request.Context(), userID, c.Param("group_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateGroup(c *gin.Context) {
	userID, ok := s.userIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req updateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.groupSvc.Update(c.Request.Context(), userID, c.Param("group_id"), groupdomain.UpdateGroupRequest{
		Name:    req.Name,
		Info:    req.Info,
		Website: req.Website,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteGroup(c *gin.Context) {
	userID, ok := s.userIDFromRequest(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	resp, err := s.groupSvc.Delete(c.Request.Context(), userID, c.Param("group_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
