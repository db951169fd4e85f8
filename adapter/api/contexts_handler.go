package api

import (
	"net/http"
	"time"

	activityCommands "github.com/manumorante/whats-next/internal/activities/application/commands"
)

type createContextRequest struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Days      []string `json:"days"`
	TimeStart string   `json:"time_start"`
	TimeEnd   string   `json:"time_end"`
}

type updateContextRequest struct {
	Name      activityCommands.Patch[string]   `json:"name"`
	Label     activityCommands.Patch[string]   `json:"label"`
	Days      activityCommands.Patch[[]string] `json:"days"`
	TimeStart activityCommands.Patch[string]   `json:"time_start"`
	TimeEnd   activityCommands.Patch[string]   `json:"time_end"`
}

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type updateCategoryRequest struct {
	Name  activityCommands.Patch[string] `json:"name"`
	Color activityCommands.Patch[string] `json:"color"`
	Icon  activityCommands.Patch[string] `json:"icon"`
}

// listContexts handles GET /api/contexts. With active=true only the contexts
// active right now are returned.
func (s *Server) listContexts(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r, "active")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if active != nil && *active {
		contexts, err := s.handlers.GetActiveContexts.Handle(r.Context(), time.Time{})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, contexts)
		return
	}

	contexts, err := s.handlers.ListContexts.Handle(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contexts)
}

func (s *Server) createContext(w http.ResponseWriter, r *http.Request) {
	var req createContextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.handlers.Contexts.Create(r.Context(), activityCommands.CreateContextCommand{
		Name:      req.Name,
		Label:     req.Label,
		Days:      req.Days,
		TimeStart: req.TimeStart,
		TimeEnd:   req.TimeEnd,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateContext(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updateContextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.handlers.Contexts.Update(r.Context(), activityCommands.UpdateContextCommand{
		ID:        id,
		Name:      req.Name,
		Label:     req.Label,
		Days:      req.Days,
		TimeStart: req.TimeStart,
		TimeEnd:   req.TimeEnd,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteContext(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.handlers.Contexts.Delete(r.Context(), activityCommands.DeleteContextCommand{ID: id}); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.handlers.ListCategories.Handle(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.handlers.Categories.Create(r.Context(), activityCommands.CreateCategoryCommand{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	c, err := s.handlers.Categories.Update(r.Context(), activityCommands.UpdateCategoryCommand{
		ID:    id,
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.handlers.Categories.Delete(r.Context(), activityCommands.DeleteCategoryCommand{ID: id}); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
