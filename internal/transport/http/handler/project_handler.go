package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"construction-pm/internal/domain"
	resp "construction-pm/internal/transport/http/response"
)

const msgProjectNotFound = "Project not found"

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) (int64, error)
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.ProjectRef, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type ProjectHandler struct{ svc ProjectService }

func NewProjectHandler(svc ProjectService) *ProjectHandler { return &ProjectHandler{svc: svc} }

type projectReq struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description" binding:"required"`
	OwnerID     numericString `json:"owner_id" binding:"required,numeric"`
	StartDate   string        `json:"start_date" binding:"required,ymd"`
	EndDate     string        `json:"end_date" binding:"required,ymd"`
	Status      string        `json:"status" binding:"required,oneof=Pending Ongoing Completed"`
}

func (r *projectReq) toProject() (*domain.Project, error) {
	owner, err := strconv.ParseInt(string(r.OwnerID), 10, 64)
	if err != nil {
		return nil, domain.Invalid(domain.MsgInvalidOwnerID)
	}
	return &domain.Project{
		Name:        r.Name,
		Description: r.Description,
		OwnerID:     owner,
		StartDate:   domain.Date(r.StartDate),
		EndDate:     domain.Date(r.EndDate),
		Status:      domain.ProjectStatus(r.Status),
	}, nil
}

func (h *ProjectHandler) bindProject(c *gin.Context) (*domain.Project, bool) {
	var req projectReq
	if !bind(c, &req) {
		return nil, false
	}
	p, err := req.toProject()
	if err != nil {
		writeError(c, err, "")
		return nil, false
	}
	return p, true
}

func (h *ProjectHandler) List(c *gin.Context) {
	ps, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	p, ok := h.bindProject(c)
	if !ok {
		return
	}
	id, err := h.svc.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, resp.ProjectCreated{Message: "Project created successfully", ProjectID: id})
}

// Get answers 200 with an empty body when the project does not exist.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "")
		return
	}
	if p == nil {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) ListByOwner(c *gin.Context) {
	owner, ok := pathID(c, "owner_id")
	if !ok {
		return
	}
	refs, err := h.svc.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, refs)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := h.bindProject(c)
	if !ok {
		return
	}
	p.ID = id
	updated, err := h.svc.Update(c.Request.Context(), p)
	if err != nil {
		writeError(c, err, msgProjectNotFound)
		return
	}
	c.JSON(http.StatusOK, resp.ProjectUpdated{Message: "Project updated successfully", UpdatedProject: updated})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, msgProjectNotFound)
		return
	}
	c.JSON(http.StatusOK, resp.Message("Project deleted successfully"))
}
