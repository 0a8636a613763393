package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

func (s *Server) registerViewerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createViewer",
		Method:        http.MethodPost,
		Path:          "/api/v1/viewers",
		Summary:       "Issue viewer id",
		Description:   "Issues a pseudonymous viewer id for the client to keep in local storage and send with ratings. It is not an account.",
		Tags:          []string{"Ratings"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateViewer)
}

// ViewerOutput carries a new viewer id.
type ViewerOutput struct {
	Body struct {
		UserID string `json:"user_id" doc:"Pseudonymous viewer id"`
	}
}

func (s *Server) handleCreateViewer(_ context.Context, _ *struct{}) (*ViewerOutput, error) {
	out := &ViewerOutput{}
	out.Body.UserID = uuid.NewString()
	return out, nil
}
